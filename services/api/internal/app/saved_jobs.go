package app

import (
	"context"
	"fmt"

	"jobconnect/pkg/domain"
	"jobconnect/pkg/store"
	"jobconnect/pkg/validation"
)

// SaveJob bookmarks an active job for the calling job seeker. Saving twice
// is a no-op.
func (a *App) SaveJob(ctx context.Context, actor Actor, in validation.SavedJobInput) error {
	in, err := validation.SavedJob(in)
	if err != nil {
		return asValidation(err)
	}
	seeker, err := a.jobSeekerFor(ctx, actor)
	if err != nil {
		return err
	}
	job, ok, err := a.store.GetJob(ctx, in.JobID)
	if err != nil {
		return fmt.Errorf("load job: %w", err)
	}
	if !ok || job.Status != domain.JobActive {
		return notFound("Job")
	}
	saved := domain.SavedJob{
		ID:          store.NewID(),
		JobSeekerID: seeker.ID,
		JobID:       in.JobID,
		Notes:       in.Notes,
		CreatedAt:   a.now(),
	}
	if err := a.store.SaveJob(ctx, saved); err != nil {
		return fmt.Errorf("save job: %w", err)
	}
	return nil
}

// UnsaveJob removes a bookmark. Removing a missing bookmark is a no-op.
func (a *App) UnsaveJob(ctx context.Context, actor Actor, jobID string) error {
	seeker, err := a.jobSeekerFor(ctx, actor)
	if err != nil {
		return err
	}
	if err := a.store.UnsaveJob(ctx, seeker.ID, jobID); err != nil {
		return fmt.Errorf("unsave job: %w", err)
	}
	return nil
}

func (a *App) ListSavedJobs(ctx context.Context, actor Actor) ([]domain.SavedJobWithJob, error) {
	seeker, err := a.jobSeekerFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	saved, err := a.store.ListSavedJobs(ctx, seeker.ID)
	if err != nil {
		return nil, fmt.Errorf("list saved jobs: %w", err)
	}
	return saved, nil
}

// ListJobMatches returns stored recommendations for the caller, best score
// first. Dismissed matches are left out.
func (a *App) ListJobMatches(ctx context.Context, actor Actor) ([]domain.JobMatchWithJob, error) {
	seeker, err := a.jobSeekerFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	matches, err := a.store.ListJobMatches(ctx, seeker.ID)
	if err != nil {
		return nil, fmt.Errorf("list job matches: %w", err)
	}
	return matches, nil
}
