package app

import (
	"context"
	"errors"
	"fmt"

	"jobconnect/pkg/domain"
	"jobconnect/pkg/store"
	"jobconnect/pkg/validation"
)

func (a *App) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	skills, err := a.store.ListSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return skills, nil
}

// CreateSkill adds an entry to the shared skill catalog.
func (a *App) CreateSkill(ctx context.Context, in validation.SkillInput) (domain.Skill, error) {
	in, err := validation.Skill(in)
	if err != nil {
		return domain.Skill{}, asValidation(err)
	}
	skill := domain.Skill{
		ID:          store.NewID(),
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		CreatedAt:   a.now(),
	}
	if err := a.store.CreateSkill(ctx, skill); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return domain.Skill{}, conflict("Skill already exists")
		}
		return domain.Skill{}, fmt.Errorf("create skill: %w", err)
	}
	return skill, nil
}

func (a *App) ListUserSkills(ctx context.Context, actor Actor) ([]domain.UserSkillWithSkill, error) {
	skills, err := a.store.ListUserSkills(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list user skills: %w", err)
	}
	return skills, nil
}

// AddUserSkill attaches a catalog skill to the caller. Adding it again is a
// no-op.
func (a *App) AddUserSkill(ctx context.Context, actor Actor, in validation.UserSkillInput) error {
	in, err := validation.UserSkill(in)
	if err != nil {
		return asValidation(err)
	}
	if _, ok, err := a.store.GetSkill(ctx, in.SkillID); err != nil {
		return fmt.Errorf("load skill: %w", err)
	} else if !ok {
		return notFound("Skill")
	}
	us := domain.UserSkill{
		ID:               store.NewID(),
		UserID:           actor.UserID,
		SkillID:          in.SkillID,
		ProficiencyLevel: in.ProficiencyLevel,
		YearsExperience:  in.YearsExperience,
		CreatedAt:        a.now(),
	}
	if err := a.store.AddUserSkill(ctx, us); err != nil {
		return fmt.Errorf("add user skill: %w", err)
	}
	return nil
}
