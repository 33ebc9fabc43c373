package store

import (
	"context"
	"errors"
	"time"

	"jobconnect/pkg/domain"
)

// ErrConflict is returned when a write violates a uniqueness rule.
var ErrConflict = errors.New("store: unique constraint violated")

// Store defines persistence operations for every JobConnect entity.
// Getters report absence with a false flag rather than an error.
type Store interface {
	// accounts
	CreateJobSeekerAccount(ctx context.Context, user domain.User, seeker domain.JobSeeker) error
	CreateEmployerAccount(ctx context.Context, user domain.User, employer domain.Employer) error
	GetUserByID(ctx context.Context, id string) (domain.User, bool, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, bool, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, bool, error)
	UpdateUser(ctx context.Context, user domain.User) error
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error

	// profiles
	GetJobSeeker(ctx context.Context, id string) (domain.JobSeekerWithUser, bool, error)
	GetJobSeekerByUserID(ctx context.Context, userID string) (domain.JobSeekerWithUser, bool, error)
	UpdateJobSeeker(ctx context.Context, seeker domain.JobSeeker) error
	GetEmployer(ctx context.Context, id string) (domain.EmployerWithUser, bool, error)
	GetEmployerByUserID(ctx context.Context, userID string) (domain.EmployerWithUser, bool, error)
	UpdateEmployer(ctx context.Context, employer domain.Employer) error

	// jobs
	CreateJob(ctx context.Context, job domain.Job) error
	GetJob(ctx context.Context, id string) (domain.JobWithEmployer, bool, error)
	ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.JobWithEmployer, error)
	ListJobsByEmployer(ctx context.Context, employerID string) ([]domain.JobWithEmployer, error)
	UpdateJob(ctx context.Context, job domain.Job) error
	DeleteJob(ctx context.Context, id string) error

	// applications
	CreateApplication(ctx context.Context, app domain.Application) error
	GetApplication(ctx context.Context, id string) (domain.ApplicationWithJobSeeker, bool, error)
	ListApplicationsByJobSeeker(ctx context.Context, jobSeekerID string) ([]domain.ApplicationWithJob, error)
	ListApplicationsByEmployer(ctx context.Context, employerID string) ([]domain.ApplicationWithJobSeeker, error)
	ListApplicationsByJob(ctx context.Context, jobID string) ([]domain.ApplicationWithJobSeeker, error)
	HasApplicationFromSeeker(ctx context.Context, employerID, jobSeekerID string) (bool, error)
	UpdateApplication(ctx context.Context, app domain.Application) error

	// interviews
	CreateInterview(ctx context.Context, interview domain.Interview) error
	GetInterview(ctx context.Context, id string) (domain.Interview, bool, error)
	UpdateInterview(ctx context.Context, interview domain.Interview) error
	ListInterviewsByJobSeeker(ctx context.Context, jobSeekerID string) ([]domain.InterviewWithDetails, error)
	ListInterviewsByEmployer(ctx context.Context, employerID string) ([]domain.InterviewWithDetails, error)

	// messages
	CreateMessage(ctx context.Context, msg domain.Message) error
	ListConversations(ctx context.Context, userID string, limit int) ([]domain.MessageWithUsers, error)
	ListThread(ctx context.Context, userID, otherID string) ([]domain.MessageWithUsers, error)
	MarkMessageRead(ctx context.Context, id, receiverID string) (bool, error)

	// reviews
	CreateReview(ctx context.Context, review domain.CompanyReview) error
	ListReviewsByEmployer(ctx context.Context, employerID string) ([]domain.CompanyReviewWithDetails, error)

	// saved jobs and matches
	SaveJob(ctx context.Context, saved domain.SavedJob) error
	UnsaveJob(ctx context.Context, jobSeekerID, jobID string) error
	ListSavedJobs(ctx context.Context, jobSeekerID string) ([]domain.SavedJobWithJob, error)
	ListJobMatches(ctx context.Context, jobSeekerID string) ([]domain.JobMatchWithJob, error)

	// skills
	ListSkills(ctx context.Context) ([]domain.Skill, error)
	GetSkill(ctx context.Context, id string) (domain.Skill, bool, error)
	CreateSkill(ctx context.Context, skill domain.Skill) error
	AddUserSkill(ctx context.Context, us domain.UserSkill) error
	ListUserSkills(ctx context.Context, userID string) ([]domain.UserSkillWithSkill, error)
}

// Session is the server-side record behind a session cookie.
type Session struct {
	UserID    string          `json:"userId"`
	Role      domain.UserRole `json:"userRole"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

// SessionStore issues and resolves opaque session tokens.
type SessionStore interface {
	NewSession(ctx context.Context, userID string, role domain.UserRole) (string, error)
	GetSession(ctx context.Context, token string) (Session, bool, error)
	DeleteSession(ctx context.Context, token string) error
}

// ConversationLimit caps the number of messages returned for the inbox view.
const ConversationLimit = 50
