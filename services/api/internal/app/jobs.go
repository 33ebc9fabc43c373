package app

import (
	"context"
	"fmt"

	"jobconnect/pkg/domain"
	"jobconnect/pkg/store"
	"jobconnect/pkg/validation"
)

// ListJobs returns active jobs matching the filter, newest first.
func (a *App) ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.JobWithEmployer, error) {
	jobs, err := a.store.ListJobs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// GetJob returns one job. Jobs that are not active are only visible to the
// employer that posted them. actor may be nil for anonymous callers.
func (a *App) GetJob(ctx context.Context, actor *Actor, id string) (domain.JobWithEmployer, error) {
	job, ok, err := a.store.GetJob(ctx, id)
	if err != nil {
		return domain.JobWithEmployer{}, fmt.Errorf("load job: %w", err)
	}
	if !ok {
		return domain.JobWithEmployer{}, notFound("Job")
	}
	if job.Status != domain.JobActive && (actor == nil || job.Employer.UserID != actor.UserID) {
		return domain.JobWithEmployer{}, notFound("Job")
	}
	return job, nil
}

// ListMyJobs returns every job posted by the calling employer.
func (a *App) ListMyJobs(ctx context.Context, actor Actor) ([]domain.JobWithEmployer, error) {
	employer, err := a.employerFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	jobs, err := a.store.ListJobsByEmployer(ctx, employer.ID)
	if err != nil {
		return nil, fmt.Errorf("list employer jobs: %w", err)
	}
	return jobs, nil
}

// CreateJob posts a job for the calling employer.
func (a *App) CreateJob(ctx context.Context, actor Actor, in validation.JobPostingInput) (domain.Job, error) {
	in, err := validation.JobPosting(in)
	if err != nil {
		return domain.Job{}, asValidation(err)
	}
	employer, err := a.employerFor(ctx, actor)
	if err != nil {
		return domain.Job{}, err
	}
	now := a.now()
	job := domain.Job{
		ID:                  store.NewID(),
		EmployerID:          employer.ID,
		Title:               in.Title,
		Description:         in.Description,
		Department:          in.Department,
		EmploymentType:      in.EmploymentType,
		ExperienceLevel:     in.ExperienceLevel,
		WorkLocation:        in.WorkLocation,
		SalaryMin:           in.SalaryMin,
		SalaryMax:           in.SalaryMax,
		SalaryType:          in.SalaryType,
		Currency:            in.Currency,
		RequiredSkills:      orEmpty(in.RequiredSkills),
		PreferredSkills:     orEmpty(in.PreferredSkills),
		Responsibilities:    orEmpty(in.Responsibilities),
		Requirements:        orEmpty(in.Requirements),
		Benefits:            orEmpty(in.Benefits),
		Location:            in.Location,
		ApplicationDeadline: in.ApplicationDeadline,
		StartDate:           in.StartDate,
		IsUrgent:            in.IsUrgent,
		IsFeatured:          in.IsFeatured,
		Status:              in.Status,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := a.store.CreateJob(ctx, job); err != nil {
		return domain.Job{}, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

// UpdateJob applies a partial edit to a job owned by the caller.
func (a *App) UpdateJob(ctx context.Context, actor Actor, id string, in validation.JobUpdateInput) (domain.Job, error) {
	in, err := validation.JobUpdate(in)
	if err != nil {
		return domain.Job{}, asValidation(err)
	}
	current, err := a.ownedJob(ctx, actor, id)
	if err != nil {
		return domain.Job{}, err
	}
	job := current.Job
	setString(&job.Title, in.Title)
	setString(&job.Description, in.Description)
	setString(&job.Department, in.Department)
	setString(&job.Currency, in.Currency)
	setString(&job.Location, in.Location)
	setInt(&job.SalaryMin, in.SalaryMin)
	setInt(&job.SalaryMax, in.SalaryMax)
	setBool(&job.IsUrgent, in.IsUrgent)
	setBool(&job.IsFeatured, in.IsFeatured)
	if in.EmploymentType != nil {
		job.EmploymentType = *in.EmploymentType
	}
	if in.ExperienceLevel != nil {
		job.ExperienceLevel = *in.ExperienceLevel
	}
	if in.WorkLocation != nil {
		job.WorkLocation = *in.WorkLocation
	}
	if in.SalaryType != nil {
		job.SalaryType = *in.SalaryType
	}
	if in.Status != nil {
		job.Status = *in.Status
	}
	if in.ApplicationDeadline != nil {
		job.ApplicationDeadline = in.ApplicationDeadline
	}
	if in.StartDate != nil {
		job.StartDate = in.StartDate
	}
	if in.RequiredSkills != nil {
		job.RequiredSkills = in.RequiredSkills
	}
	if in.PreferredSkills != nil {
		job.PreferredSkills = in.PreferredSkills
	}
	if in.Responsibilities != nil {
		job.Responsibilities = in.Responsibilities
	}
	if in.Requirements != nil {
		job.Requirements = in.Requirements
	}
	if in.Benefits != nil {
		job.Benefits = in.Benefits
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return domain.Job{}, invalidField("salaryMax", "must be greater than or equal to salaryMin")
	}
	job.UpdatedAt = a.now()
	if err := a.store.UpdateJob(ctx, job); err != nil {
		return domain.Job{}, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

// DeleteJob removes a job owned by the caller together with its
// applications, interviews, saved entries and matches.
func (a *App) DeleteJob(ctx context.Context, actor Actor, id string) error {
	if _, err := a.ownedJob(ctx, actor, id); err != nil {
		return err
	}
	if err := a.store.DeleteJob(ctx, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

// ListJobApplications returns the applications received by one of the
// caller's jobs.
func (a *App) ListJobApplications(ctx context.Context, actor Actor, jobID string) ([]domain.ApplicationWithJobSeeker, error) {
	if _, err := a.ownedJob(ctx, actor, jobID); err != nil {
		return nil, err
	}
	apps, err := a.store.ListApplicationsByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("list job applications: %w", err)
	}
	return apps, nil
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
