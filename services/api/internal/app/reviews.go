package app

import (
	"context"
	"fmt"
	"math"

	"jobconnect/pkg/domain"
	"jobconnect/pkg/store"
	"jobconnect/pkg/validation"
)

// ListEmployerReviews returns a company's reviews, newest first. Anonymous
// reviews carry no reviewer identity.
func (a *App) ListEmployerReviews(ctx context.Context, employerID string) ([]domain.CompanyReviewWithDetails, error) {
	if _, ok, err := a.store.GetEmployer(ctx, employerID); err != nil {
		return nil, fmt.Errorf("load employer: %w", err)
	} else if !ok {
		return nil, notFound("Employer")
	}
	reviews, err := a.store.ListReviewsByEmployer(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	for i := range reviews {
		if reviews[i].IsAnonymous {
			reviews[i].JobSeekerID = ""
			reviews[i].JobSeeker = nil
		}
	}
	return reviews, nil
}

// CreateReview records the calling job seeker's review of a company.
func (a *App) CreateReview(ctx context.Context, actor Actor, in validation.ReviewInput) (domain.CompanyReview, error) {
	in, err := validation.Review(in)
	if err != nil {
		return domain.CompanyReview{}, asValidation(err)
	}
	seeker, err := a.jobSeekerFor(ctx, actor)
	if err != nil {
		return domain.CompanyReview{}, err
	}
	if _, ok, err := a.store.GetEmployer(ctx, in.EmployerID); err != nil {
		return domain.CompanyReview{}, fmt.Errorf("load employer: %w", err)
	} else if !ok {
		return domain.CompanyReview{}, notFound("Employer")
	}
	now := a.now()
	review := domain.CompanyReview{
		ID:                store.NewID(),
		EmployerID:        in.EmployerID,
		JobSeekerID:       seeker.ID,
		Rating:            in.Rating,
		Title:             in.Title,
		Pros:              in.Pros,
		Cons:              in.Cons,
		Advice:            in.Advice,
		WorkLifeBalance:   in.WorkLifeBalance,
		Compensation:      in.Compensation,
		Culture:           in.Culture,
		Management:        in.Management,
		IsCurrentEmployee: in.IsCurrentEmployee,
		JobTitle:          in.JobTitle,
		Department:        in.Department,
		IsAnonymous:       *in.IsAnonymous,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := a.store.CreateReview(ctx, review); err != nil {
		return domain.CompanyReview{}, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

// averageRating is the mean rating rounded to one decimal, 0 when empty.
func averageRating(reviews []domain.CompanyReviewWithDetails) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return math.Round(float64(sum)/float64(len(reviews))*10) / 10
}
