package store

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"

	"jobconnect/pkg/domain"
)

// GORM models used for persistence. Belongs-to fields exist for Preload and
// carry the cascade policy into the generated foreign keys.
type UserModel struct {
	ID           string `gorm:"primaryKey;size:64"`
	Username     string `gorm:"uniqueIndex;size:50;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;index"`
	FirstName    string `gorm:"size:100;not null"`
	LastName     string `gorm:"size:100;not null"`
	Phone        string
	ProfileImage string
	Bio          string `gorm:"type:text"`
	IsVerified   bool   `gorm:"not null"`
	IsActive     bool   `gorm:"not null"`
	LastLogin    *time.Time
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

type JobSeekerModel struct {
	ID                string    `gorm:"primaryKey;size:64"`
	UserID            string    `gorm:"uniqueIndex;size:64;not null"`
	User              UserModel `gorm:"constraint:OnDelete:CASCADE"`
	ProfessionalTitle string
	YearsExperience   string
	Skills            pq.StringArray `gorm:"type:text[]"`
	Location          string
	ResumeKey         string `gorm:"column:resume_url"`
	PortfolioURL      string
	LinkedinURL       string
	GithubURL         string
	WebsiteURL        string
	ExpectedSalaryMin *int
	ExpectedSalaryMax *int
	SalaryType        string `gorm:"not null"`
	WorkPreference    string
	Availability      string
	NoticePeriod      string
	Education         datatypes.JSON `gorm:"type:jsonb"`
	Experience        datatypes.JSON `gorm:"type:jsonb"`
	Certifications    datatypes.JSON `gorm:"type:jsonb"`
	Languages         pq.StringArray `gorm:"type:text[]"`
	OpenToRelocate    bool           `gorm:"not null"`
	JobAlerts         bool           `gorm:"not null"`
	ProfileVisibility bool           `gorm:"not null"`
	CreatedAt         time.Time      `gorm:"not null"`
	UpdatedAt         time.Time      `gorm:"not null"`
}

func (JobSeekerModel) TableName() string { return "job_seekers" }

type EmployerModel struct {
	ID                 string    `gorm:"primaryKey;size:64"`
	UserID             string    `gorm:"uniqueIndex;size:64;not null"`
	User               UserModel `gorm:"constraint:OnDelete:CASCADE"`
	JobTitle           string
	CompanyName        string `gorm:"not null;index"`
	CompanySize        string
	Industry           string
	CompanyLocation    string
	CompanyDescription string `gorm:"type:text"`
	CompanyLogoKey     string `gorm:"column:company_logo"`
	Website            string
	LinkedinURL        string
	FoundedYear        *int
	EmployeeCount      *int
	Headquarters       string
	Benefits           pq.StringArray `gorm:"type:text[]"`
	CompanyValues      pq.StringArray `gorm:"type:text[]"`
	WorkCulture        string         `gorm:"type:text"`
	RemotePolicy       string
	IsVerified         bool      `gorm:"not null"`
	IsHiring           bool      `gorm:"not null"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

func (EmployerModel) TableName() string { return "employers" }

type JobModel struct {
	ID                  string        `gorm:"primaryKey;size:64"`
	EmployerID          string        `gorm:"size:64;not null;index"`
	Employer            EmployerModel `gorm:"constraint:OnDelete:CASCADE"`
	Title               string        `gorm:"size:200;not null"`
	Description         string        `gorm:"type:text;not null"`
	Department          string
	EmploymentType      string `gorm:"not null;index"`
	ExperienceLevel     string
	WorkLocation        string `gorm:"not null"`
	SalaryMin           *int
	SalaryMax           *int
	SalaryType          string         `gorm:"not null"`
	Currency            string         `gorm:"size:3;not null"`
	RequiredSkills      pq.StringArray `gorm:"type:text[]"`
	PreferredSkills     pq.StringArray `gorm:"type:text[]"`
	Responsibilities    pq.StringArray `gorm:"type:text[]"`
	Requirements        pq.StringArray `gorm:"type:text[]"`
	Benefits            pq.StringArray `gorm:"type:text[]"`
	Location            string         `gorm:"not null"`
	ApplicationDeadline *time.Time
	StartDate           *time.Time
	IsUrgent            bool      `gorm:"not null"`
	IsFeatured          bool      `gorm:"not null"`
	Views               int       `gorm:"not null"`
	ApplicationsCount   int       `gorm:"not null"`
	Status              string    `gorm:"not null;index"`
	CreatedAt           time.Time `gorm:"not null;index"`
	UpdatedAt           time.Time `gorm:"not null"`
}

func (JobModel) TableName() string { return "jobs" }

type ApplicationModel struct {
	ID             string         `gorm:"primaryKey;size:64"`
	JobID          string         `gorm:"size:64;not null;uniqueIndex:idx_applications_job_seeker"`
	Job            JobModel       `gorm:"constraint:OnDelete:CASCADE"`
	JobSeekerID    string         `gorm:"size:64;not null;uniqueIndex:idx_applications_job_seeker;index"`
	JobSeeker      JobSeekerModel `gorm:"constraint:OnDelete:CASCADE"`
	Status         string         `gorm:"not null;index"`
	CoverLetter    string         `gorm:"type:text"`
	CustomResume   string
	ExpectedSalary *int
	Availability   string
	Notes          string    `gorm:"type:text"`
	AppliedAt      time.Time `gorm:"not null;index"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (ApplicationModel) TableName() string { return "applications" }

type InterviewModel struct {
	ID               string           `gorm:"primaryKey;size:64"`
	ApplicationID    string           `gorm:"size:64;not null;index"`
	Application      ApplicationModel `gorm:"constraint:OnDelete:CASCADE"`
	EmployerID       string           `gorm:"size:64;not null;index"`
	Employer         EmployerModel    `gorm:"constraint:OnDelete:CASCADE"`
	JobSeekerID      string           `gorm:"size:64;not null;index"`
	JobSeeker        JobSeekerModel   `gorm:"constraint:OnDelete:CASCADE"`
	Title            string           `gorm:"not null"`
	Description      string           `gorm:"type:text"`
	ScheduledAt      time.Time        `gorm:"not null;index"`
	Duration         int              `gorm:"not null"`
	Type             string           `gorm:"not null"`
	Location         string           `gorm:"not null"`
	Status           string           `gorm:"not null"`
	InterviewerNotes string           `gorm:"type:text"`
	CandidateNotes   string           `gorm:"type:text"`
	Rating           *int
	Feedback         string    `gorm:"type:text"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (InterviewModel) TableName() string { return "interviews" }

type CompanyReviewModel struct {
	ID                string         `gorm:"primaryKey;size:64"`
	EmployerID        string         `gorm:"size:64;not null;index"`
	Employer          EmployerModel  `gorm:"constraint:OnDelete:CASCADE"`
	JobSeekerID       string         `gorm:"size:64;not null;index"`
	JobSeeker         JobSeekerModel `gorm:"constraint:OnDelete:CASCADE"`
	Rating            int            `gorm:"not null"`
	Title             string         `gorm:"not null"`
	Pros              string         `gorm:"type:text"`
	Cons              string         `gorm:"type:text"`
	Advice            string         `gorm:"type:text"`
	WorkLifeBalance   *int
	Compensation      *int
	Culture           *int
	Management        *int
	IsCurrentEmployee bool `gorm:"not null"`
	JobTitle          string
	Department        string
	IsAnonymous       bool      `gorm:"not null"`
	IsVerified        bool      `gorm:"not null"`
	CreatedAt         time.Time `gorm:"not null;index"`
	UpdatedAt         time.Time `gorm:"not null"`
}

func (CompanyReviewModel) TableName() string { return "company_reviews" }

type SavedJobModel struct {
	ID          string         `gorm:"primaryKey;size:64"`
	JobSeekerID string         `gorm:"size:64;not null;uniqueIndex:idx_saved_jobs_pair"`
	JobSeeker   JobSeekerModel `gorm:"constraint:OnDelete:CASCADE"`
	JobID       string         `gorm:"size:64;not null;uniqueIndex:idx_saved_jobs_pair"`
	Job         JobModel       `gorm:"constraint:OnDelete:CASCADE"`
	Notes       string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"not null"`
}

func (SavedJobModel) TableName() string { return "saved_jobs" }

type JobMatchModel struct {
	ID           string         `gorm:"primaryKey;size:64"`
	JobSeekerID  string         `gorm:"size:64;not null;index"`
	JobSeeker    JobSeekerModel `gorm:"constraint:OnDelete:CASCADE"`
	JobID        string         `gorm:"size:64;not null;index"`
	Job          JobModel       `gorm:"constraint:OnDelete:CASCADE"`
	MatchScore   float64        `gorm:"type:numeric(5,2);not null"`
	MatchReasons pq.StringArray `gorm:"type:text[]"`
	IsViewed     bool           `gorm:"not null"`
	IsDismissed  bool           `gorm:"not null"`
	CreatedAt    time.Time      `gorm:"not null"`
}

func (JobMatchModel) TableName() string { return "job_matches" }

type MessageModel struct {
	ID            string            `gorm:"primaryKey;size:64"`
	SenderID      string            `gorm:"size:64;not null;index"`
	Sender        UserModel         `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	ReceiverID    string            `gorm:"size:64;not null;index"`
	Receiver      UserModel         `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
	ApplicationID *string           `gorm:"size:64;index"`
	Application   *ApplicationModel `gorm:"constraint:OnDelete:SET NULL"`
	Subject       string
	Content       string         `gorm:"type:text;not null"`
	IsRead        bool           `gorm:"not null"`
	Attachments   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"not null;index"`
}

func (MessageModel) TableName() string { return "messages" }

type SkillModel struct {
	ID          string `gorm:"primaryKey;size:64"`
	Name        string `gorm:"uniqueIndex;size:100;not null"`
	Category    string
	Description string    `gorm:"type:text"`
	IsVerified  bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (SkillModel) TableName() string { return "skills" }

type UserSkillModel struct {
	ID               string     `gorm:"primaryKey;size:64"`
	UserID           string     `gorm:"size:64;not null;uniqueIndex:idx_user_skills_pair"`
	User             UserModel  `gorm:"constraint:OnDelete:CASCADE"`
	SkillID          string     `gorm:"size:64;not null;uniqueIndex:idx_user_skills_pair"`
	Skill            SkillModel `gorm:"constraint:OnDelete:CASCADE"`
	ProficiencyLevel string
	YearsExperience  *int
	IsEndorsed       bool      `gorm:"not null"`
	CreatedAt        time.Time `gorm:"not null"`
}

func (UserSkillModel) TableName() string { return "user_skills" }

func allModels() []any {
	return []any{
		&UserModel{}, &JobSeekerModel{}, &EmployerModel{}, &JobModel{},
		&ApplicationModel{}, &InterviewModel{}, &CompanyReviewModel{},
		&SavedJobModel{}, &JobMatchModel{}, &MessageModel{},
		&SkillModel{}, &UserSkillModel{},
	}
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		ProfileImage: u.ProfileImage,
		Bio:          u.Bio,
		IsVerified:   u.IsVerified,
		IsActive:     u.IsActive,
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Phone:        m.Phone,
		ProfileImage: m.ProfileImage,
		Bio:          m.Bio,
		IsVerified:   m.IsVerified,
		IsActive:     m.IsActive,
		LastLogin:    m.LastLogin,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func jobSeekerToModel(s domain.JobSeeker) JobSeekerModel {
	return JobSeekerModel{
		ID:                s.ID,
		UserID:            s.UserID,
		ProfessionalTitle: s.ProfessionalTitle,
		YearsExperience:   s.YearsExperience,
		Skills:            pq.StringArray(s.Skills),
		Location:          s.Location,
		ResumeKey:         s.ResumeKey,
		PortfolioURL:      s.PortfolioURL,
		LinkedinURL:       s.LinkedinURL,
		GithubURL:         s.GithubURL,
		WebsiteURL:        s.WebsiteURL,
		ExpectedSalaryMin: s.ExpectedSalaryMin,
		ExpectedSalaryMax: s.ExpectedSalaryMax,
		SalaryType:        string(s.SalaryType),
		WorkPreference:    string(s.WorkPreference),
		Availability:      s.Availability,
		NoticePeriod:      s.NoticePeriod,
		Education:         datatypes.JSON(s.Education),
		Experience:        datatypes.JSON(s.Experience),
		Certifications:    datatypes.JSON(s.Certifications),
		Languages:         pq.StringArray(s.Languages),
		OpenToRelocate:    s.OpenToRelocate,
		JobAlerts:         s.JobAlerts,
		ProfileVisibility: s.ProfileVisibility,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func jobSeekerFromModel(m JobSeekerModel) domain.JobSeekerWithUser {
	return domain.JobSeekerWithUser{
		JobSeeker: domain.JobSeeker{
			ID:                m.ID,
			UserID:            m.UserID,
			ProfessionalTitle: m.ProfessionalTitle,
			YearsExperience:   m.YearsExperience,
			Skills:            stringList(m.Skills),
			Location:          m.Location,
			ResumeKey:         m.ResumeKey,
			PortfolioURL:      m.PortfolioURL,
			LinkedinURL:       m.LinkedinURL,
			GithubURL:         m.GithubURL,
			WebsiteURL:        m.WebsiteURL,
			ExpectedSalaryMin: m.ExpectedSalaryMin,
			ExpectedSalaryMax: m.ExpectedSalaryMax,
			SalaryType:        domain.SalaryType(m.SalaryType),
			WorkPreference:    domain.WorkLocation(m.WorkPreference),
			Availability:      m.Availability,
			NoticePeriod:      m.NoticePeriod,
			Education:         rawJSON(m.Education),
			Experience:        rawJSON(m.Experience),
			Certifications:    rawJSON(m.Certifications),
			Languages:         stringList(m.Languages),
			OpenToRelocate:    m.OpenToRelocate,
			JobAlerts:         m.JobAlerts,
			ProfileVisibility: m.ProfileVisibility,
			CreatedAt:         m.CreatedAt,
			UpdatedAt:         m.UpdatedAt,
		},
		User: userFromModel(m.User),
	}
}

func employerToModel(e domain.Employer) EmployerModel {
	return EmployerModel{
		ID:                 e.ID,
		UserID:             e.UserID,
		JobTitle:           e.JobTitle,
		CompanyName:        e.CompanyName,
		CompanySize:        e.CompanySize,
		Industry:           e.Industry,
		CompanyLocation:    e.CompanyLocation,
		CompanyDescription: e.CompanyDescription,
		CompanyLogoKey:     e.CompanyLogoKey,
		Website:            e.Website,
		LinkedinURL:        e.LinkedinURL,
		FoundedYear:        e.FoundedYear,
		EmployeeCount:      e.EmployeeCount,
		Headquarters:       e.Headquarters,
		Benefits:           pq.StringArray(e.Benefits),
		CompanyValues:      pq.StringArray(e.CompanyValues),
		WorkCulture:        e.WorkCulture,
		RemotePolicy:       string(e.RemotePolicy),
		IsVerified:         e.IsVerified,
		IsHiring:           e.IsHiring,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

func employerFromModel(m EmployerModel) domain.Employer {
	return domain.Employer{
		ID:                 m.ID,
		UserID:             m.UserID,
		JobTitle:           m.JobTitle,
		CompanyName:        m.CompanyName,
		CompanySize:        m.CompanySize,
		Industry:           m.Industry,
		CompanyLocation:    m.CompanyLocation,
		CompanyDescription: m.CompanyDescription,
		CompanyLogoKey:     m.CompanyLogoKey,
		Website:            m.Website,
		LinkedinURL:        m.LinkedinURL,
		FoundedYear:        m.FoundedYear,
		EmployeeCount:      m.EmployeeCount,
		Headquarters:       m.Headquarters,
		Benefits:           stringList(m.Benefits),
		CompanyValues:      stringList(m.CompanyValues),
		WorkCulture:        m.WorkCulture,
		RemotePolicy:       domain.RemotePolicy(m.RemotePolicy),
		IsVerified:         m.IsVerified,
		IsHiring:           m.IsHiring,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func employerWithUserFromModel(m EmployerModel) domain.EmployerWithUser {
	return domain.EmployerWithUser{Employer: employerFromModel(m), User: userFromModel(m.User)}
}

func jobToModel(j domain.Job) JobModel {
	return JobModel{
		ID:                  j.ID,
		EmployerID:          j.EmployerID,
		Title:               j.Title,
		Description:         j.Description,
		Department:          j.Department,
		EmploymentType:      string(j.EmploymentType),
		ExperienceLevel:     string(j.ExperienceLevel),
		WorkLocation:        string(j.WorkLocation),
		SalaryMin:           j.SalaryMin,
		SalaryMax:           j.SalaryMax,
		SalaryType:          string(j.SalaryType),
		Currency:            j.Currency,
		RequiredSkills:      pq.StringArray(j.RequiredSkills),
		PreferredSkills:     pq.StringArray(j.PreferredSkills),
		Responsibilities:    pq.StringArray(j.Responsibilities),
		Requirements:        pq.StringArray(j.Requirements),
		Benefits:            pq.StringArray(j.Benefits),
		Location:            j.Location,
		ApplicationDeadline: j.ApplicationDeadline,
		StartDate:           j.StartDate,
		IsUrgent:            j.IsUrgent,
		IsFeatured:          j.IsFeatured,
		Views:               j.Views,
		ApplicationsCount:   j.ApplicationsCount,
		Status:              string(j.Status),
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}
}

func jobFromModel(m JobModel) domain.Job {
	return domain.Job{
		ID:                  m.ID,
		EmployerID:          m.EmployerID,
		Title:               m.Title,
		Description:         m.Description,
		Department:          m.Department,
		EmploymentType:      domain.EmploymentType(m.EmploymentType),
		ExperienceLevel:     domain.ExperienceLevel(m.ExperienceLevel),
		WorkLocation:        domain.WorkLocation(m.WorkLocation),
		SalaryMin:           m.SalaryMin,
		SalaryMax:           m.SalaryMax,
		SalaryType:          domain.SalaryType(m.SalaryType),
		Currency:            m.Currency,
		RequiredSkills:      stringList(m.RequiredSkills),
		PreferredSkills:     stringList(m.PreferredSkills),
		Responsibilities:    stringList(m.Responsibilities),
		Requirements:        stringList(m.Requirements),
		Benefits:            stringList(m.Benefits),
		Location:            m.Location,
		ApplicationDeadline: m.ApplicationDeadline,
		StartDate:           m.StartDate,
		IsUrgent:            m.IsUrgent,
		IsFeatured:          m.IsFeatured,
		Views:               m.Views,
		ApplicationsCount:   m.ApplicationsCount,
		Status:              domain.JobStatus(m.Status),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func jobWithEmployerFromModel(m JobModel) domain.JobWithEmployer {
	return domain.JobWithEmployer{Job: jobFromModel(m), Employer: employerWithUserFromModel(m.Employer)}
}

func applicationToModel(a domain.Application) ApplicationModel {
	return ApplicationModel{
		ID:             a.ID,
		JobID:          a.JobID,
		JobSeekerID:    a.JobSeekerID,
		Status:         string(a.Status),
		CoverLetter:    a.CoverLetter,
		CustomResume:   a.CustomResume,
		ExpectedSalary: a.ExpectedSalary,
		Availability:   a.Availability,
		Notes:          a.Notes,
		AppliedAt:      a.AppliedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func applicationFromModel(m ApplicationModel) domain.Application {
	return domain.Application{
		ID:             m.ID,
		JobID:          m.JobID,
		JobSeekerID:    m.JobSeekerID,
		Status:         domain.ApplicationStatus(m.Status),
		CoverLetter:    m.CoverLetter,
		CustomResume:   m.CustomResume,
		ExpectedSalary: m.ExpectedSalary,
		Availability:   m.Availability,
		Notes:          m.Notes,
		AppliedAt:      m.AppliedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func interviewToModel(i domain.Interview) InterviewModel {
	return InterviewModel{
		ID:               i.ID,
		ApplicationID:    i.ApplicationID,
		EmployerID:       i.EmployerID,
		JobSeekerID:      i.JobSeekerID,
		Title:            i.Title,
		Description:      i.Description,
		ScheduledAt:      i.ScheduledAt,
		Duration:         i.Duration,
		Type:             string(i.Type),
		Location:         i.Location,
		Status:           string(i.Status),
		InterviewerNotes: i.InterviewerNotes,
		CandidateNotes:   i.CandidateNotes,
		Rating:           i.Rating,
		Feedback:         i.Feedback,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

func interviewFromModel(m InterviewModel) domain.Interview {
	return domain.Interview{
		ID:               m.ID,
		ApplicationID:    m.ApplicationID,
		EmployerID:       m.EmployerID,
		JobSeekerID:      m.JobSeekerID,
		Title:            m.Title,
		Description:      m.Description,
		ScheduledAt:      m.ScheduledAt,
		Duration:         m.Duration,
		Type:             domain.InterviewType(m.Type),
		Location:         m.Location,
		Status:           domain.InterviewStatus(m.Status),
		InterviewerNotes: m.InterviewerNotes,
		CandidateNotes:   m.CandidateNotes,
		Rating:           m.Rating,
		Feedback:         m.Feedback,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func reviewToModel(r domain.CompanyReview) CompanyReviewModel {
	return CompanyReviewModel{
		ID:                r.ID,
		EmployerID:        r.EmployerID,
		JobSeekerID:       r.JobSeekerID,
		Rating:            r.Rating,
		Title:             r.Title,
		Pros:              r.Pros,
		Cons:              r.Cons,
		Advice:            r.Advice,
		WorkLifeBalance:   r.WorkLifeBalance,
		Compensation:      r.Compensation,
		Culture:           r.Culture,
		Management:        r.Management,
		IsCurrentEmployee: r.IsCurrentEmployee,
		JobTitle:          r.JobTitle,
		Department:        r.Department,
		IsAnonymous:       r.IsAnonymous,
		IsVerified:        r.IsVerified,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func reviewFromModel(m CompanyReviewModel) domain.CompanyReview {
	return domain.CompanyReview{
		ID:                m.ID,
		EmployerID:        m.EmployerID,
		JobSeekerID:       m.JobSeekerID,
		Rating:            m.Rating,
		Title:             m.Title,
		Pros:              m.Pros,
		Cons:              m.Cons,
		Advice:            m.Advice,
		WorkLifeBalance:   m.WorkLifeBalance,
		Compensation:      m.Compensation,
		Culture:           m.Culture,
		Management:        m.Management,
		IsCurrentEmployee: m.IsCurrentEmployee,
		JobTitle:          m.JobTitle,
		Department:        m.Department,
		IsAnonymous:       m.IsAnonymous,
		IsVerified:        m.IsVerified,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func messageToModel(msg domain.Message) MessageModel {
	return MessageModel{
		ID:            msg.ID,
		SenderID:      msg.SenderID,
		ReceiverID:    msg.ReceiverID,
		ApplicationID: msg.ApplicationID,
		Subject:       msg.Subject,
		Content:       msg.Content,
		IsRead:        msg.IsRead,
		Attachments:   datatypes.JSON(msg.Attachments),
		CreatedAt:     msg.CreatedAt,
	}
}

func messageFromModel(m MessageModel) domain.MessageWithUsers {
	return domain.MessageWithUsers{
		Message: domain.Message{
			ID:            m.ID,
			SenderID:      m.SenderID,
			ReceiverID:    m.ReceiverID,
			ApplicationID: m.ApplicationID,
			Subject:       m.Subject,
			Content:       m.Content,
			IsRead:        m.IsRead,
			Attachments:   rawJSON(m.Attachments),
			CreatedAt:     m.CreatedAt,
		},
		Sender:   userFromModel(m.Sender),
		Receiver: userFromModel(m.Receiver),
	}
}

func skillFromModel(m SkillModel) domain.Skill {
	return domain.Skill{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Description: m.Description,
		IsVerified:  m.IsVerified,
		CreatedAt:   m.CreatedAt,
	}
}

func stringList(in pq.StringArray) []string {
	if len(in) == 0 {
		return []string{}
	}
	return append([]string(nil), in...)
}

func rawJSON(in datatypes.JSON) json.RawMessage {
	if len(in) == 0 {
		return nil
	}
	return json.RawMessage(in)
}
