package app

import (
	"context"
	"fmt"

	"jobconnect/pkg/domain"
	"jobconnect/pkg/store"
	"jobconnect/pkg/validation"
)

// ScheduleInterview books an interview for an application received by one
// of the caller's jobs. Applications still in screening move to the
// interview stage.
func (a *App) ScheduleInterview(ctx context.Context, actor Actor, in validation.InterviewInput) (domain.Interview, error) {
	in, err := validation.InterviewScheduling(in)
	if err != nil {
		return domain.Interview{}, asValidation(err)
	}
	app, err := a.ownedApplication(ctx, actor, in.ApplicationID)
	if err != nil {
		return domain.Interview{}, err
	}
	now := a.now()
	interview := domain.Interview{
		ID:            store.NewID(),
		ApplicationID: app.ID,
		EmployerID:    app.Job.EmployerID,
		JobSeekerID:   app.JobSeekerID,
		Title:         in.Title,
		Description:   in.Description,
		ScheduledAt:   in.ScheduledAt.UTC(),
		Duration:      in.Duration,
		Type:          in.Type,
		Location:      in.Location,
		Status:        domain.InterviewScheduled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := a.store.CreateInterview(ctx, interview); err != nil {
		return domain.Interview{}, fmt.Errorf("create interview: %w", err)
	}
	switch app.Status {
	case domain.ApplicationPending, domain.ApplicationReviewed, domain.ApplicationShortlisted:
		updated := app.Application
		updated.Status = domain.ApplicationInterview
		updated.UpdatedAt = now
		if err := a.store.UpdateApplication(ctx, updated); err != nil {
			return domain.Interview{}, fmt.Errorf("advance application: %w", err)
		}
	}
	return interview, nil
}

// UpdateInterview edits an interview owned by the calling employer. Moving
// scheduledAt without an explicit status marks the interview rescheduled;
// completed and cancelled interviews only accept same-status edits.
func (a *App) UpdateInterview(ctx context.Context, actor Actor, id string, in validation.InterviewUpdateInput) (domain.Interview, error) {
	in, err := validation.InterviewUpdate(in)
	if err != nil {
		return domain.Interview{}, asValidation(err)
	}
	employer, err := a.employerFor(ctx, actor)
	if err != nil {
		return domain.Interview{}, err
	}
	interview, ok, err := a.store.GetInterview(ctx, id)
	if err != nil {
		return domain.Interview{}, fmt.Errorf("load interview: %w", err)
	}
	if !ok || interview.EmployerID != employer.ID {
		return domain.Interview{}, notFound("Interview")
	}

	next := interview.Status
	switch {
	case in.Status != nil:
		next = *in.Status
	case in.ScheduledAt != nil:
		next = domain.InterviewRescheduled
	}
	if !interview.Status.CanTransitionTo(next) {
		return domain.Interview{}, conflict(fmt.Sprintf("Cannot change interview from %s to %s", interview.Status, next))
	}
	interview.Status = next
	if in.ScheduledAt != nil {
		interview.ScheduledAt = in.ScheduledAt.UTC()
	}
	if in.Duration != nil {
		interview.Duration = *in.Duration
	}
	setString(&interview.Location, in.Location)
	setString(&interview.Feedback, in.Feedback)
	setString(&interview.InterviewerNotes, in.InterviewerNotes)
	setString(&interview.CandidateNotes, in.CandidateNotes)
	setInt(&interview.Rating, in.Rating)
	interview.UpdatedAt = a.now()
	if err := a.store.UpdateInterview(ctx, interview); err != nil {
		return domain.Interview{}, fmt.Errorf("update interview: %w", err)
	}
	return interview, nil
}

// ListSeekerInterviews returns the caller's interviews by scheduled time.
func (a *App) ListSeekerInterviews(ctx context.Context, actor Actor) ([]domain.InterviewWithDetails, error) {
	seeker, err := a.jobSeekerFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	interviews, err := a.store.ListInterviewsByJobSeeker(ctx, seeker.ID)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	return interviews, nil
}

// ListEmployerInterviews returns the caller's interviews by scheduled time.
func (a *App) ListEmployerInterviews(ctx context.Context, actor Actor) ([]domain.InterviewWithDetails, error) {
	employer, err := a.employerFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	interviews, err := a.store.ListInterviewsByEmployer(ctx, employer.ID)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	return interviews, nil
}
