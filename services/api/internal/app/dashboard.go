package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"jobconnect/pkg/domain"
)

const (
	dashboardRecent             = 5
	dashboardActiveJobs         = 10
	dashboardEmployerRecentApps = 20
)

// JobSeekerDashboard aggregates the caller's applications, bookmarks,
// matches, interviews and messages.
func (a *App) JobSeekerDashboard(ctx context.Context, actor Actor) (domain.JobSeekerDashboard, error) {
	seeker, err := a.jobSeekerFor(ctx, actor)
	if err != nil {
		return domain.JobSeekerDashboard{}, err
	}

	var (
		apps       []domain.ApplicationWithJob
		saved      []domain.SavedJobWithJob
		matches    []domain.JobMatchWithJob
		interviews []domain.InterviewWithDetails
		messages   []domain.MessageWithUsers
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		apps, err = a.store.ListApplicationsByJobSeeker(gctx, seeker.ID)
		return wrap("list applications", err)
	})
	g.Go(func() (err error) {
		saved, err = a.store.ListSavedJobs(gctx, seeker.ID)
		return wrap("list saved jobs", err)
	})
	g.Go(func() (err error) {
		matches, err = a.store.ListJobMatches(gctx, seeker.ID)
		return wrap("list job matches", err)
	})
	g.Go(func() (err error) {
		interviews, err = a.store.ListInterviewsByJobSeeker(gctx, seeker.ID)
		return wrap("list interviews", err)
	})
	g.Go(func() (err error) {
		messages, err = a.store.ListConversations(gctx, actor.UserID, dashboardRecent)
		return wrap("list messages", err)
	})
	if err := g.Wait(); err != nil {
		return domain.JobSeekerDashboard{}, err
	}

	stats := domain.JobSeekerStats{
		TotalApplications:   len(apps),
		InterviewsScheduled: countActiveInterviews(interviews),
		SavedJobsCount:      len(saved),
	}
	for _, app := range apps {
		if app.Status == domain.ApplicationPending {
			stats.PendingApplications++
		}
	}
	return domain.JobSeekerDashboard{
		Profile:            seeker,
		Stats:              stats,
		RecentApplications: head(apps, dashboardRecent),
		SavedJobs:          head(saved, dashboardRecent),
		JobMatches:         head(matches, dashboardRecent),
		UpcomingInterviews: head(upcoming(interviews, a.now()), dashboardRecent),
		Messages:           messages,
	}, nil
}

// EmployerDashboard aggregates the caller's jobs, applications, interviews,
// reviews and messages.
func (a *App) EmployerDashboard(ctx context.Context, actor Actor) (domain.EmployerDashboard, error) {
	employer, err := a.employerFor(ctx, actor)
	if err != nil {
		return domain.EmployerDashboard{}, err
	}

	var (
		jobs       []domain.JobWithEmployer
		apps       []domain.ApplicationWithJobSeeker
		interviews []domain.InterviewWithDetails
		reviews    []domain.CompanyReviewWithDetails
		messages   []domain.MessageWithUsers
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		jobs, err = a.store.ListJobsByEmployer(gctx, employer.ID)
		return wrap("list jobs", err)
	})
	g.Go(func() (err error) {
		apps, err = a.store.ListApplicationsByEmployer(gctx, employer.ID)
		return wrap("list applications", err)
	})
	g.Go(func() (err error) {
		interviews, err = a.store.ListInterviewsByEmployer(gctx, employer.ID)
		return wrap("list interviews", err)
	})
	g.Go(func() (err error) {
		reviews, err = a.store.ListReviewsByEmployer(gctx, employer.ID)
		return wrap("list reviews", err)
	})
	g.Go(func() (err error) {
		messages, err = a.store.ListConversations(gctx, actor.UserID, dashboardRecent)
		return wrap("list messages", err)
	})
	if err := g.Wait(); err != nil {
		return domain.EmployerDashboard{}, err
	}

	active := make([]domain.JobWithEmployer, 0, len(jobs))
	for _, job := range jobs {
		if job.Status == domain.JobActive {
			active = append(active, job)
		}
	}
	for i := range reviews {
		if reviews[i].IsAnonymous {
			reviews[i].JobSeekerID = ""
			reviews[i].JobSeeker = nil
		}
	}
	return domain.EmployerDashboard{
		Profile: employer,
		Stats: domain.EmployerStats{
			TotalJobs:           len(jobs),
			ActiveJobs:          len(active),
			TotalApplications:   len(apps),
			InterviewsScheduled: countActiveInterviews(interviews),
			AverageRating:       averageRating(reviews),
		},
		ActiveJobs:         head(active, dashboardActiveJobs),
		RecentApplications: head(apps, dashboardEmployerRecentApps),
		UpcomingInterviews: head(upcoming(interviews, a.now()), dashboardRecent),
		CompanyReviews:     head(reviews, dashboardRecent),
		Messages:           messages,
	}, nil
}

func wrap(op string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	if items == nil {
		return []T{}
	}
	return items
}

func isOpenInterview(s domain.InterviewStatus) bool {
	return s == domain.InterviewScheduled || s == domain.InterviewRescheduled
}

func countActiveInterviews(interviews []domain.InterviewWithDetails) int {
	n := 0
	for _, iv := range interviews {
		if isOpenInterview(iv.Status) {
			n++
		}
	}
	return n
}

// upcoming keeps open interviews that have not started yet. Input is
// already ordered by scheduled time.
func upcoming(interviews []domain.InterviewWithDetails, now time.Time) []domain.InterviewWithDetails {
	out := make([]domain.InterviewWithDetails, 0, len(interviews))
	for _, iv := range interviews {
		if isOpenInterview(iv.Status) && iv.ScheduledAt.After(now) {
			out = append(out, iv)
		}
	}
	return out
}
