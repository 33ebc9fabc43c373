package domain

import (
	"encoding/json"
	"time"
)

type UserRole string

const (
	RoleJobSeeker UserRole = "job_seeker"
	RoleEmployer  UserRole = "employer"
)

func (r UserRole) Valid() bool {
	return r == RoleJobSeeker || r == RoleEmployer
}

type JobStatus string

const (
	JobActive JobStatus = "active"
	JobPaused JobStatus = "paused"
	JobClosed JobStatus = "closed"
	JobFilled JobStatus = "filled"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobActive, JobPaused, JobClosed, JobFilled:
		return true
	}
	return false
}

type EmploymentType string

const (
	FullTime   EmploymentType = "full-time"
	PartTime   EmploymentType = "part-time"
	Contract   EmploymentType = "contract"
	Internship EmploymentType = "internship"
)

func (t EmploymentType) Valid() bool {
	switch t {
	case FullTime, PartTime, Contract, Internship:
		return true
	}
	return false
}

type ExperienceLevel string

const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelExecutive ExperienceLevel = "executive"
)

func (l ExperienceLevel) Valid() bool {
	switch l {
	case LevelEntry, LevelMid, LevelSenior, LevelExecutive:
		return true
	}
	return false
}

type WorkLocation string

const (
	WorkRemote WorkLocation = "remote"
	WorkOnsite WorkLocation = "onsite"
	WorkHybrid WorkLocation = "hybrid"
)

func (l WorkLocation) Valid() bool {
	switch l {
	case WorkRemote, WorkOnsite, WorkHybrid:
		return true
	}
	return false
}

type SalaryType string

const (
	SalaryHourly  SalaryType = "hourly"
	SalaryMonthly SalaryType = "monthly"
	SalaryYearly  SalaryType = "yearly"
)

func (t SalaryType) Valid() bool {
	switch t {
	case SalaryHourly, SalaryMonthly, SalaryYearly:
		return true
	}
	return false
}

type RemotePolicy string

const (
	PolicyRemote   RemotePolicy = "remote"
	PolicyOnsite   RemotePolicy = "onsite"
	PolicyHybrid   RemotePolicy = "hybrid"
	PolicyFlexible RemotePolicy = "flexible"
)

func (p RemotePolicy) Valid() bool {
	switch p {
	case PolicyRemote, PolicyOnsite, PolicyHybrid, PolicyFlexible:
		return true
	}
	return false
}

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationReviewed    ApplicationStatus = "reviewed"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationInterview   ApplicationStatus = "interview"
	ApplicationAccepted    ApplicationStatus = "accepted"
	ApplicationRejected    ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationReviewed, ApplicationShortlisted,
		ApplicationInterview, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

type InterviewType string

const (
	InterviewPhone    InterviewType = "phone"
	InterviewVideo    InterviewType = "video"
	InterviewInPerson InterviewType = "in-person"
)

func (t InterviewType) Valid() bool {
	switch t {
	case InterviewPhone, InterviewVideo, InterviewInPerson:
		return true
	}
	return false
}

type InterviewStatus string

const (
	InterviewScheduled   InterviewStatus = "scheduled"
	InterviewCompleted   InterviewStatus = "completed"
	InterviewCancelled   InterviewStatus = "cancelled"
	InterviewRescheduled InterviewStatus = "rescheduled"
)

func (s InterviewStatus) Valid() bool {
	switch s {
	case InterviewScheduled, InterviewCompleted, InterviewCancelled, InterviewRescheduled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an interview in status s may move to next.
// Completed and cancelled interviews are terminal; staying in the same status
// is always allowed so notes and feedback can be edited.
func (s InterviewStatus) CanTransitionTo(next InterviewStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	switch s {
	case InterviewScheduled, InterviewRescheduled:
		return next == InterviewCompleted || next == InterviewCancelled || next == InterviewRescheduled
	default:
		return false
	}
}

type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Phone        string     `json:"phone,omitempty"`
	ProfileImage string     `json:"profileImage,omitempty"`
	Bio          string     `json:"bio,omitempty"`
	IsVerified   bool       `json:"isVerified"`
	IsActive     bool       `json:"isActive"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type JobSeeker struct {
	ID                string          `json:"id"`
	UserID            string          `json:"userId"`
	ProfessionalTitle string          `json:"professionalTitle"`
	YearsExperience   string          `json:"yearsExperience"`
	Skills            []string        `json:"skills"`
	Location          string          `json:"location"`
	ResumeKey         string          `json:"resumeUrl,omitempty"`
	PortfolioURL      string          `json:"portfolioUrl,omitempty"`
	LinkedinURL       string          `json:"linkedinUrl,omitempty"`
	GithubURL         string          `json:"githubUrl,omitempty"`
	WebsiteURL        string          `json:"websiteUrl,omitempty"`
	ExpectedSalaryMin *int            `json:"expectedSalaryMin,omitempty"`
	ExpectedSalaryMax *int            `json:"expectedSalaryMax,omitempty"`
	SalaryType        SalaryType      `json:"salaryType"`
	WorkPreference    WorkLocation    `json:"workPreference,omitempty"`
	Availability      string          `json:"availability,omitempty"`
	NoticePeriod      string          `json:"noticePeriod,omitempty"`
	Education         json.RawMessage `json:"education,omitempty"`
	Experience        json.RawMessage `json:"experience,omitempty"`
	Certifications    json.RawMessage `json:"certifications,omitempty"`
	Languages         []string        `json:"languages"`
	OpenToRelocate    bool            `json:"openToRelocate"`
	JobAlerts         bool            `json:"jobAlerts"`
	ProfileVisibility bool            `json:"profileVisibility"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

type Employer struct {
	ID                 string       `json:"id"`
	UserID             string       `json:"userId"`
	JobTitle           string       `json:"jobTitle"`
	CompanyName        string       `json:"companyName"`
	CompanySize        string       `json:"companySize"`
	Industry           string       `json:"industry"`
	CompanyLocation    string       `json:"companyLocation"`
	CompanyDescription string       `json:"companyDescription,omitempty"`
	CompanyLogoKey     string       `json:"companyLogo,omitempty"`
	Website            string       `json:"website,omitempty"`
	LinkedinURL        string       `json:"linkedinUrl,omitempty"`
	FoundedYear        *int         `json:"foundedYear,omitempty"`
	EmployeeCount      *int         `json:"employeeCount,omitempty"`
	Headquarters       string       `json:"headquarters,omitempty"`
	Benefits           []string     `json:"benefits"`
	CompanyValues      []string     `json:"companyValues"`
	WorkCulture        string       `json:"workCulture,omitempty"`
	RemotePolicy       RemotePolicy `json:"remotePolicy,omitempty"`
	IsVerified         bool         `json:"isVerified"`
	IsHiring           bool         `json:"isHiring"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

type Job struct {
	ID                  string          `json:"id"`
	EmployerID          string          `json:"employerId"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Department          string          `json:"department,omitempty"`
	EmploymentType      EmploymentType  `json:"employmentType"`
	ExperienceLevel     ExperienceLevel `json:"experienceLevel,omitempty"`
	WorkLocation        WorkLocation    `json:"workLocation"`
	SalaryMin           *int            `json:"salaryMin,omitempty"`
	SalaryMax           *int            `json:"salaryMax,omitempty"`
	SalaryType          SalaryType      `json:"salaryType"`
	Currency            string          `json:"currency"`
	RequiredSkills      []string        `json:"requiredSkills"`
	PreferredSkills     []string        `json:"preferredSkills"`
	Responsibilities    []string        `json:"responsibilities"`
	Requirements        []string        `json:"requirements"`
	Benefits            []string        `json:"benefits"`
	Location            string          `json:"location"`
	ApplicationDeadline *time.Time      `json:"applicationDeadline,omitempty"`
	StartDate           *time.Time      `json:"startDate,omitempty"`
	IsUrgent            bool            `json:"isUrgent"`
	IsFeatured          bool            `json:"isFeatured"`
	Views               int             `json:"views"`
	ApplicationsCount   int             `json:"applicationsCount"`
	Status              JobStatus       `json:"status"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

type Application struct {
	ID             string            `json:"id"`
	JobID          string            `json:"jobId"`
	JobSeekerID    string            `json:"jobSeekerId"`
	Status         ApplicationStatus `json:"status"`
	CoverLetter    string            `json:"coverLetter,omitempty"`
	CustomResume   string            `json:"customResume,omitempty"`
	ExpectedSalary *int              `json:"expectedSalary,omitempty"`
	Availability   string            `json:"availability,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	AppliedAt      time.Time         `json:"appliedAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

type Interview struct {
	ID               string          `json:"id"`
	ApplicationID    string          `json:"applicationId"`
	EmployerID       string          `json:"employerId"`
	JobSeekerID      string          `json:"jobSeekerId"`
	Title            string          `json:"title"`
	Description      string          `json:"description,omitempty"`
	ScheduledAt      time.Time       `json:"scheduledAt"`
	Duration         int             `json:"duration"`
	Type             InterviewType   `json:"type"`
	Location         string          `json:"location"`
	Status           InterviewStatus `json:"status"`
	InterviewerNotes string          `json:"interviewerNotes,omitempty"`
	CandidateNotes   string          `json:"candidateNotes,omitempty"`
	Rating           *int            `json:"rating,omitempty"`
	Feedback         string          `json:"feedback,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

type CompanyReview struct {
	ID                string    `json:"id"`
	EmployerID        string    `json:"employerId"`
	JobSeekerID       string    `json:"jobSeekerId"`
	Rating            int       `json:"rating"`
	Title             string    `json:"title"`
	Pros              string    `json:"pros,omitempty"`
	Cons              string    `json:"cons,omitempty"`
	Advice            string    `json:"advice,omitempty"`
	WorkLifeBalance   *int      `json:"workLifeBalance,omitempty"`
	Compensation      *int      `json:"compensation,omitempty"`
	Culture           *int      `json:"culture,omitempty"`
	Management        *int      `json:"management,omitempty"`
	IsCurrentEmployee bool      `json:"isCurrentEmployee"`
	JobTitle          string    `json:"jobTitle,omitempty"`
	Department        string    `json:"department,omitempty"`
	IsAnonymous       bool      `json:"isAnonymous"`
	IsVerified        bool      `json:"isVerified"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type SavedJob struct {
	ID          string    `json:"id"`
	JobSeekerID string    `json:"jobSeekerId"`
	JobID       string    `json:"jobId"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type JobMatch struct {
	ID           string    `json:"id"`
	JobSeekerID  string    `json:"jobSeekerId"`
	JobID        string    `json:"jobId"`
	MatchScore   float64   `json:"matchScore"`
	MatchReasons []string  `json:"matchReasons"`
	IsViewed     bool      `json:"isViewed"`
	IsDismissed  bool      `json:"isDismissed"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Message struct {
	ID            string          `json:"id"`
	SenderID      string          `json:"senderId"`
	ReceiverID    string          `json:"receiverId"`
	ApplicationID *string         `json:"applicationId,omitempty"`
	Subject       string          `json:"subject,omitempty"`
	Content       string          `json:"content"`
	IsRead        bool            `json:"isRead"`
	Attachments   json.RawMessage `json:"attachments,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type Skill struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	IsVerified  bool      `json:"isVerified"`
	CreatedAt   time.Time `json:"createdAt"`
}

type UserSkill struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	SkillID          string    `json:"skillId"`
	ProficiencyLevel string    `json:"proficiencyLevel,omitempty"`
	YearsExperience  *int      `json:"yearsExperience,omitempty"`
	IsEndorsed       bool      `json:"isEndorsed"`
	CreatedAt        time.Time `json:"createdAt"`
}

// JobFilter narrows the public job listing. Empty fields match everything.
type JobFilter struct {
	Search         string
	Location       string
	EmploymentType EmploymentType
}
