package app

import (
	"context"
	"errors"
	"fmt"

	"jobconnect/pkg/domain"
	"jobconnect/pkg/store"
	"jobconnect/pkg/validation"
)

// Apply submits the calling job seeker's application to an active job.
func (a *App) Apply(ctx context.Context, actor Actor, in validation.ApplicationInput) (domain.Application, error) {
	in, err := validation.Application(in)
	if err != nil {
		return domain.Application{}, asValidation(err)
	}
	seeker, err := a.jobSeekerFor(ctx, actor)
	if err != nil {
		return domain.Application{}, err
	}
	job, ok, err := a.store.GetJob(ctx, in.JobID)
	if err != nil {
		return domain.Application{}, fmt.Errorf("load job: %w", err)
	}
	if !ok || job.Status != domain.JobActive {
		return domain.Application{}, notFound("Job")
	}
	now := a.now()
	app := domain.Application{
		ID:             store.NewID(),
		JobID:          job.ID,
		JobSeekerID:    seeker.ID,
		Status:         domain.ApplicationPending,
		CoverLetter:    in.CoverLetter,
		CustomResume:   in.CustomResume,
		ExpectedSalary: in.ExpectedSalary,
		Availability:   in.Availability,
		AppliedAt:      now,
		UpdatedAt:      now,
	}
	if err := a.store.CreateApplication(ctx, app); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return domain.Application{}, conflict("You have already applied to this job")
		}
		return domain.Application{}, fmt.Errorf("create application: %w", err)
	}
	return app, nil
}

// ListSeekerApplications returns the caller's applications, newest first.
func (a *App) ListSeekerApplications(ctx context.Context, actor Actor) ([]domain.ApplicationWithJob, error) {
	seeker, err := a.jobSeekerFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	apps, err := a.store.ListApplicationsByJobSeeker(ctx, seeker.ID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// ListEmployerApplications returns applications across all of the caller's
// jobs, newest first.
func (a *App) ListEmployerApplications(ctx context.Context, actor Actor) ([]domain.ApplicationWithJobSeeker, error) {
	employer, err := a.employerFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	apps, err := a.store.ListApplicationsByEmployer(ctx, employer.ID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// UpdateApplicationStatus moves an application received by one of the
// caller's jobs to a new status.
func (a *App) UpdateApplicationStatus(ctx context.Context, actor Actor, id string, in validation.ApplicationStatusInput) (domain.Application, error) {
	in, err := validation.ApplicationStatus(in)
	if err != nil {
		return domain.Application{}, asValidation(err)
	}
	current, err := a.ownedApplication(ctx, actor, id)
	if err != nil {
		return domain.Application{}, err
	}
	app := current.Application
	app.Status = in.Status
	setString(&app.Notes, in.Notes)
	app.UpdatedAt = a.now()
	if err := a.store.UpdateApplication(ctx, app); err != nil {
		return domain.Application{}, fmt.Errorf("update application: %w", err)
	}
	return app, nil
}

// ownedApplication loads an application whose job belongs to the caller.
func (a *App) ownedApplication(ctx context.Context, actor Actor, id string) (domain.ApplicationWithJobSeeker, error) {
	employer, err := a.employerFor(ctx, actor)
	if err != nil {
		return domain.ApplicationWithJobSeeker{}, err
	}
	app, ok, err := a.store.GetApplication(ctx, id)
	if err != nil {
		return domain.ApplicationWithJobSeeker{}, fmt.Errorf("load application: %w", err)
	}
	if !ok || app.Job.EmployerID != employer.ID {
		return domain.ApplicationWithJobSeeker{}, notFound("Application")
	}
	return app, nil
}
