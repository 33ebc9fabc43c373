package validation

import (
	"encoding/json"
	"strings"
	"time"

	"jobconnect/pkg/domain"
)

type JobPostingInput struct {
	Title               string                 `json:"title" validate:"required,max=200"`
	Description         string                 `json:"description" validate:"required,min=10,max=20000"`
	Department          string                 `json:"department" validate:"max=100"`
	EmploymentType      domain.EmploymentType  `json:"employmentType" validate:"required,oneof=full-time part-time contract internship"`
	ExperienceLevel     domain.ExperienceLevel `json:"experienceLevel" validate:"omitempty,oneof=entry mid senior executive"`
	WorkLocation        domain.WorkLocation    `json:"workLocation" validate:"oneof=remote onsite hybrid"`
	SalaryMin           *int                   `json:"salaryMin" validate:"omitempty,gte=0"`
	SalaryMax           *int                   `json:"salaryMax" validate:"omitempty,gte=0"`
	SalaryType          domain.SalaryType      `json:"salaryType" validate:"oneof=hourly monthly yearly"`
	Currency            string                 `json:"currency" validate:"len=3,alpha"`
	RequiredSkills      []string               `json:"requiredSkills" validate:"max=50,dive,required,max=100"`
	PreferredSkills     []string               `json:"preferredSkills" validate:"max=50,dive,required,max=100"`
	Responsibilities    []string               `json:"responsibilities" validate:"max=50,dive,required,max=1000"`
	Requirements        []string               `json:"requirements" validate:"max=50,dive,required,max=1000"`
	Benefits            []string               `json:"benefits" validate:"max=50,dive,required,max=200"`
	Location            string                 `json:"location" validate:"required,max=200"`
	ApplicationDeadline *time.Time             `json:"applicationDeadline"`
	StartDate           *time.Time             `json:"startDate"`
	IsUrgent            bool                   `json:"isUrgent"`
	IsFeatured          bool                   `json:"isFeatured"`
	Status              domain.JobStatus       `json:"status" validate:"oneof=active paused closed filled"`
}

// JobPosting validates a new job. workLocation defaults to onsite, salaryType
// to monthly, currency to USD and status to active.
func JobPosting(in JobPostingInput) (JobPostingInput, error) {
	trim(&in.Title, &in.Description, &in.Department, &in.Location, &in.Currency)
	in.RequiredSkills = trimList(in.RequiredSkills)
	in.PreferredSkills = trimList(in.PreferredSkills)
	in.Responsibilities = trimList(in.Responsibilities)
	in.Requirements = trimList(in.Requirements)
	in.Benefits = trimList(in.Benefits)
	if in.WorkLocation == "" {
		in.WorkLocation = domain.WorkOnsite
	}
	if in.SalaryType == "" {
		in.SalaryType = domain.SalaryMonthly
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}
	in.Currency = strings.ToUpper(in.Currency)
	if in.Status == "" {
		in.Status = domain.JobActive
	}
	if err := check(in, salaryRange("salaryMax", in.SalaryMin, in.SalaryMax)...); err != nil {
		return in, err
	}
	return in, nil
}

// JobUpdateInput is a partial job edit; nil fields keep their current value.
type JobUpdateInput struct {
	Title               *string                 `json:"title" validate:"omitempty,min=1,max=200"`
	Description         *string                 `json:"description" validate:"omitempty,min=10,max=20000"`
	Department          *string                 `json:"department" validate:"omitempty,max=100"`
	EmploymentType      *domain.EmploymentType  `json:"employmentType" validate:"omitempty,oneof=full-time part-time contract internship"`
	ExperienceLevel     *domain.ExperienceLevel `json:"experienceLevel" validate:"omitempty,oneof=entry mid senior executive"`
	WorkLocation        *domain.WorkLocation    `json:"workLocation" validate:"omitempty,oneof=remote onsite hybrid"`
	SalaryMin           *int                    `json:"salaryMin" validate:"omitempty,gte=0"`
	SalaryMax           *int                    `json:"salaryMax" validate:"omitempty,gte=0"`
	SalaryType          *domain.SalaryType      `json:"salaryType" validate:"omitempty,oneof=hourly monthly yearly"`
	Currency            *string                 `json:"currency" validate:"omitempty,len=3,alpha"`
	RequiredSkills      []string                `json:"requiredSkills" validate:"omitempty,max=50,dive,required,max=100"`
	PreferredSkills     []string                `json:"preferredSkills" validate:"omitempty,max=50,dive,required,max=100"`
	Responsibilities    []string                `json:"responsibilities" validate:"omitempty,max=50,dive,required,max=1000"`
	Requirements        []string                `json:"requirements" validate:"omitempty,max=50,dive,required,max=1000"`
	Benefits            []string                `json:"benefits" validate:"omitempty,max=50,dive,required,max=200"`
	Location            *string                 `json:"location" validate:"omitempty,min=1,max=200"`
	ApplicationDeadline *time.Time              `json:"applicationDeadline"`
	StartDate           *time.Time              `json:"startDate"`
	IsUrgent            *bool                   `json:"isUrgent"`
	IsFeatured          *bool                   `json:"isFeatured"`
	Status              *domain.JobStatus       `json:"status" validate:"omitempty,oneof=active paused closed filled"`
}

func JobUpdate(in JobUpdateInput) (JobUpdateInput, error) {
	trim(in.Title, in.Description, in.Department, in.Currency, in.Location)
	if in.Currency != nil {
		upper := strings.ToUpper(*in.Currency)
		in.Currency = &upper
	}
	in.RequiredSkills = trimList(in.RequiredSkills)
	in.PreferredSkills = trimList(in.PreferredSkills)
	in.Responsibilities = trimList(in.Responsibilities)
	in.Requirements = trimList(in.Requirements)
	in.Benefits = trimList(in.Benefits)
	if err := check(in, salaryRange("salaryMax", in.SalaryMin, in.SalaryMax)...); err != nil {
		return in, err
	}
	return in, nil
}

type ApplicationInput struct {
	JobID          string `json:"jobId" validate:"required"`
	CoverLetter    string `json:"coverLetter" validate:"max=5000"`
	CustomResume   string `json:"customResume" validate:"max=500"`
	ExpectedSalary *int   `json:"expectedSalary" validate:"omitempty,gte=0"`
	Availability   string `json:"availability" validate:"max=100"`
}

func Application(in ApplicationInput) (ApplicationInput, error) {
	trim(&in.JobID, &in.CoverLetter, &in.CustomResume, &in.Availability)
	if err := check(in); err != nil {
		return in, err
	}
	return in, nil
}

type ApplicationStatusInput struct {
	Status domain.ApplicationStatus `json:"status" validate:"required,oneof=pending reviewed shortlisted interview accepted rejected"`
	Notes  *string                  `json:"notes" validate:"omitempty,max=5000"`
}

func ApplicationStatus(in ApplicationStatusInput) (ApplicationStatusInput, error) {
	trim(in.Notes)
	if err := check(in); err != nil {
		return in, err
	}
	return in, nil
}

type InterviewInput struct {
	ApplicationID string               `json:"applicationId" validate:"required"`
	Title         string               `json:"title" validate:"required,max=200"`
	Description   string               `json:"description" validate:"max=5000"`
	ScheduledAt   time.Time            `json:"scheduledAt" validate:"required"`
	Duration      int                  `json:"duration" validate:"gte=15,lte=480"`
	Type          domain.InterviewType `json:"type" validate:"required,oneof=phone video in-person"`
	Location      string               `json:"location" validate:"required,max=500"`
}

// InterviewScheduling validates a new interview. Duration is in minutes and
// defaults to 60.
func InterviewScheduling(in InterviewInput) (InterviewInput, error) {
	trim(&in.ApplicationID, &in.Title, &in.Description, &in.Location)
	if in.Duration == 0 {
		in.Duration = 60
	}
	if err := check(in); err != nil {
		return in, err
	}
	return in, nil
}

type InterviewUpdateInput struct {
	Status           *domain.InterviewStatus `json:"status" validate:"omitempty,oneof=scheduled completed cancelled rescheduled"`
	ScheduledAt      *time.Time              `json:"scheduledAt"`
	Duration         *int                    `json:"duration" validate:"omitempty,gte=15,lte=480"`
	Location         *string                 `json:"location" validate:"omitempty,min=1,max=500"`
	Feedback         *string                 `json:"feedback" validate:"omitempty,max=5000"`
	InterviewerNotes *string                 `json:"interviewerNotes" validate:"omitempty,max=5000"`
	CandidateNotes   *string                 `json:"candidateNotes" validate:"omitempty,max=5000"`
	Rating           *int                    `json:"rating" validate:"omitempty,min=1,max=5"`
}

func InterviewUpdate(in InterviewUpdateInput) (InterviewUpdateInput, error) {
	trim(in.Location, in.Feedback, in.InterviewerNotes, in.CandidateNotes)
	var extra []FieldError
	if in.Status == nil && in.ScheduledAt == nil && in.Duration == nil && in.Location == nil &&
		in.Feedback == nil && in.InterviewerNotes == nil && in.CandidateNotes == nil && in.Rating == nil {
		extra = append(extra, FieldError{Field: "status", Message: "status is required"})
	}
	if err := check(in, extra...); err != nil {
		return in, err
	}
	return in, nil
}

type ReviewInput struct {
	EmployerID        string `json:"employerId" validate:"required"`
	Rating            int    `json:"rating" validate:"required,min=1,max=5"`
	Title             string `json:"title" validate:"required,max=200"`
	Pros              string `json:"pros" validate:"max=5000"`
	Cons              string `json:"cons" validate:"max=5000"`
	Advice            string `json:"advice" validate:"max=5000"`
	WorkLifeBalance   *int   `json:"workLifeBalance" validate:"omitempty,min=1,max=5"`
	Compensation      *int   `json:"compensation" validate:"omitempty,min=1,max=5"`
	Culture           *int   `json:"culture" validate:"omitempty,min=1,max=5"`
	Management        *int   `json:"management" validate:"omitempty,min=1,max=5"`
	IsCurrentEmployee bool   `json:"isCurrentEmployee"`
	JobTitle          string `json:"jobTitle" validate:"max=100"`
	Department        string `json:"department" validate:"max=100"`
	IsAnonymous       *bool  `json:"isAnonymous"`
}

// Review validates a company review. Reviews are anonymous unless the caller
// says otherwise.
func Review(in ReviewInput) (ReviewInput, error) {
	trim(&in.EmployerID, &in.Title, &in.Pros, &in.Cons, &in.Advice, &in.JobTitle, &in.Department)
	if in.IsAnonymous == nil {
		anonymous := true
		in.IsAnonymous = &anonymous
	}
	if err := check(in); err != nil {
		return in, err
	}
	return in, nil
}

type MessageInput struct {
	ReceiverID    string          `json:"receiverId" validate:"required"`
	ApplicationID *string         `json:"applicationId" validate:"omitempty,min=1"`
	Subject       string          `json:"subject" validate:"max=200"`
	Content       string          `json:"content" validate:"required,max=5000"`
	Attachments   json.RawMessage `json:"attachments"`
}

func Message(in MessageInput) (MessageInput, error) {
	trim(&in.ReceiverID, in.ApplicationID, &in.Subject, &in.Content)
	var extra []FieldError
	if len(in.Attachments) > 0 && !isJSONArray(in.Attachments) {
		extra = append(extra, FieldError{Field: "attachments", Message: "attachments must be an array"})
	}
	if err := check(in, extra...); err != nil {
		return in, err
	}
	return in, nil
}

type SavedJobInput struct {
	JobID string `json:"jobId" validate:"required"`
	Notes string `json:"notes" validate:"max=1000"`
}

func SavedJob(in SavedJobInput) (SavedJobInput, error) {
	trim(&in.JobID, &in.Notes)
	if err := check(in); err != nil {
		return in, err
	}
	return in, nil
}

type SkillInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Category    string `json:"category" validate:"max=100"`
	Description string `json:"description" validate:"max=1000"`
}

func Skill(in SkillInput) (SkillInput, error) {
	trim(&in.Name, &in.Category, &in.Description)
	if err := check(in); err != nil {
		return in, err
	}
	return in, nil
}

type UserSkillInput struct {
	SkillID          string `json:"skillId" validate:"required"`
	ProficiencyLevel string `json:"proficiencyLevel" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	YearsExperience  *int   `json:"yearsExperience" validate:"omitempty,gte=0,lte=80"`
}

func UserSkill(in UserSkillInput) (UserSkillInput, error) {
	trim(&in.SkillID, &in.ProficiencyLevel)
	if err := check(in); err != nil {
		return in, err
	}
	return in, nil
}

func isJSONArray(raw json.RawMessage) bool {
	var items []json.RawMessage
	return json.Unmarshal(raw, &items) == nil
}
