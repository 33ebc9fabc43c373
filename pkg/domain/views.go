package domain

// Read shapes that join an entity with its related records. The base entity is
// embedded so its fields stay at the top level of the JSON object.

type JobSeekerWithUser struct {
	JobSeeker
	User User `json:"user"`
}

type EmployerWithUser struct {
	Employer
	User User `json:"user"`
}

type JobWithEmployer struct {
	Job
	Employer EmployerWithUser `json:"employer"`
}

// ApplicationWithJob is the job seeker's view of an application.
type ApplicationWithJob struct {
	Application
	Job JobWithEmployer `json:"job"`
}

// ApplicationWithJobSeeker is the employer's view of an application.
type ApplicationWithJobSeeker struct {
	Application
	Job       Job               `json:"job"`
	JobSeeker JobSeekerWithUser `json:"jobSeeker"`
}

// InterviewApplication nests the job (with its employer) and the applicant
// under the interview's application.
type InterviewApplication struct {
	Application
	Job       JobWithEmployer   `json:"job"`
	JobSeeker JobSeekerWithUser `json:"jobSeeker"`
}

type InterviewWithDetails struct {
	Interview
	Application InterviewApplication `json:"application"`
}

type MessageWithUsers struct {
	Message
	Sender   User `json:"sender"`
	Receiver User `json:"receiver"`
}

// CompanyReviewWithDetails leaves JobSeeker nil for anonymous reviews.
type CompanyReviewWithDetails struct {
	CompanyReview
	Employer  Employer           `json:"employer"`
	JobSeeker *JobSeekerWithUser `json:"jobSeeker,omitempty"`
}

type SavedJobWithJob struct {
	SavedJob
	Job JobWithEmployer `json:"job"`
}

type JobMatchWithJob struct {
	JobMatch
	Job JobWithEmployer `json:"job"`
}

type UserSkillWithSkill struct {
	UserSkill
	Skill Skill `json:"skill"`
}

type JobSeekerStats struct {
	TotalApplications   int `json:"totalApplications"`
	PendingApplications int `json:"pendingApplications"`
	InterviewsScheduled int `json:"interviewsScheduled"`
	SavedJobsCount      int `json:"savedJobsCount"`
}

type JobSeekerDashboard struct {
	Profile            JobSeekerWithUser      `json:"profile"`
	Stats              JobSeekerStats         `json:"stats"`
	RecentApplications []ApplicationWithJob   `json:"recentApplications"`
	SavedJobs          []SavedJobWithJob      `json:"savedJobs"`
	JobMatches         []JobMatchWithJob      `json:"jobMatches"`
	UpcomingInterviews []InterviewWithDetails `json:"upcomingInterviews"`
	Messages           []MessageWithUsers     `json:"messages"`
}

type EmployerStats struct {
	TotalJobs           int     `json:"totalJobs"`
	ActiveJobs          int     `json:"activeJobs"`
	TotalApplications   int     `json:"totalApplications"`
	InterviewsScheduled int     `json:"interviewsScheduled"`
	AverageRating       float64 `json:"averageRating"`
}

type EmployerDashboard struct {
	Profile            EmployerWithUser           `json:"profile"`
	Stats              EmployerStats              `json:"stats"`
	ActiveJobs         []JobWithEmployer          `json:"activeJobs"`
	RecentApplications []ApplicationWithJobSeeker `json:"recentApplications"`
	UpcomingInterviews []InterviewWithDetails     `json:"upcomingInterviews"`
	CompanyReviews     []CompanyReviewWithDetails `json:"companyReviews"`
	Messages           []MessageWithUsers         `json:"messages"`
}
