package validation

import (
	"encoding/json"

	"jobconnect/pkg/domain"
)

// Account holds the user fields shared by both registration forms.
type Account struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	FirstName       string `json:"firstName" validate:"required,max=100"`
	LastName        string `json:"lastName" validate:"required,max=100"`
	Phone           string `json:"phone" validate:"max=30"`
}

func (a *Account) normalize() {
	trim(&a.Username, &a.Email, &a.FirstName, &a.LastName, &a.Phone)
}

type JobSeekerRegistrationInput struct {
	Account
	ProfessionalTitle string              `json:"professionalTitle" validate:"required,max=200"`
	YearsExperience   string              `json:"yearsExperience" validate:"required,max=50"`
	Skills            []string            `json:"skills" validate:"min=1,max=50,dive,required,max=100"`
	Location          string              `json:"location" validate:"required,max=200"`
	ExpectedSalaryMin *int                `json:"expectedSalaryMin" validate:"omitempty,gte=0"`
	ExpectedSalaryMax *int                `json:"expectedSalaryMax" validate:"omitempty,gte=0"`
	SalaryType        domain.SalaryType   `json:"salaryType" validate:"omitempty,oneof=hourly monthly yearly"`
	WorkPreference    domain.WorkLocation `json:"workPreference" validate:"omitempty,oneof=remote onsite hybrid"`
	Availability      string              `json:"availability" validate:"max=100"`
	NoticePeriod      string              `json:"noticePeriod" validate:"max=100"`
	PortfolioURL      string              `json:"portfolioUrl" validate:"weburl"`
	LinkedinURL       string              `json:"linkedinUrl" validate:"weburl"`
	GithubURL         string              `json:"githubUrl" validate:"weburl"`
}

// JobSeekerRegistration validates a job seeker sign-up form.
// salaryType defaults to monthly.
func JobSeekerRegistration(in JobSeekerRegistrationInput) (JobSeekerRegistrationInput, error) {
	in.normalize()
	trim(&in.ProfessionalTitle, &in.YearsExperience, &in.Location, &in.Availability,
		&in.NoticePeriod, &in.PortfolioURL, &in.LinkedinURL, &in.GithubURL)
	in.Skills = trimList(in.Skills)
	if in.SalaryType == "" {
		in.SalaryType = domain.SalaryMonthly
	}
	if err := check(in, salaryRange("expectedSalaryMax", in.ExpectedSalaryMin, in.ExpectedSalaryMax)...); err != nil {
		return in, err
	}
	return in, nil
}

type EmployerRegistrationInput struct {
	Account
	JobTitle           string              `json:"jobTitle" validate:"required,max=100"`
	CompanyName        string              `json:"companyName" validate:"required,max=200"`
	CompanySize        string              `json:"companySize" validate:"required,max=50"`
	Industry           string              `json:"industry" validate:"required,max=100"`
	CompanyLocation    string              `json:"companyLocation" validate:"required,max=200"`
	CompanyDescription string              `json:"companyDescription" validate:"max=5000"`
	Website            string              `json:"website" validate:"weburl"`
	RemotePolicy       domain.RemotePolicy `json:"remotePolicy" validate:"omitempty,oneof=remote onsite hybrid flexible"`
}

// EmployerRegistration validates an employer sign-up form.
func EmployerRegistration(in EmployerRegistrationInput) (EmployerRegistrationInput, error) {
	in.normalize()
	trim(&in.JobTitle, &in.CompanyName, &in.CompanySize, &in.Industry,
		&in.CompanyLocation, &in.CompanyDescription, &in.Website)
	if err := check(in); err != nil {
		return in, err
	}
	return in, nil
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Login(in LoginInput) (LoginInput, error) {
	trim(&in.Email)
	if err := check(in); err != nil {
		return in, err
	}
	return in, nil
}

// UserUpdateInput edits the caller's own user record. Nil fields are left
// unchanged. Role, email and username are not editable.
type UserUpdateInput struct {
	FirstName    *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName     *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	Phone        *string `json:"phone" validate:"omitempty,max=30"`
	Bio          *string `json:"bio" validate:"omitempty,max=2000"`
	ProfileImage *string `json:"profileImage" validate:"omitempty,weburl"`
}

func UserUpdate(in UserUpdateInput) (UserUpdateInput, error) {
	trim(in.FirstName, in.LastName, in.Phone, in.Bio, in.ProfileImage)
	if err := check(in); err != nil {
		return in, err
	}
	return in, nil
}

type JobSeekerProfileInput struct {
	ProfessionalTitle *string              `json:"professionalTitle" validate:"omitempty,min=1,max=200"`
	YearsExperience   *string              `json:"yearsExperience" validate:"omitempty,min=1,max=50"`
	Skills            []string             `json:"skills" validate:"omitempty,min=1,max=50,dive,required,max=100"`
	Location          *string              `json:"location" validate:"omitempty,min=1,max=200"`
	PortfolioURL      *string              `json:"portfolioUrl" validate:"omitempty,weburl"`
	LinkedinURL       *string              `json:"linkedinUrl" validate:"omitempty,weburl"`
	GithubURL         *string              `json:"githubUrl" validate:"omitempty,weburl"`
	WebsiteURL        *string              `json:"websiteUrl" validate:"omitempty,weburl"`
	ExpectedSalaryMin *int                 `json:"expectedSalaryMin" validate:"omitempty,gte=0"`
	ExpectedSalaryMax *int                 `json:"expectedSalaryMax" validate:"omitempty,gte=0"`
	SalaryType        *domain.SalaryType   `json:"salaryType" validate:"omitempty,oneof=hourly monthly yearly"`
	WorkPreference    *domain.WorkLocation `json:"workPreference" validate:"omitempty,oneof=remote onsite hybrid"`
	Availability      *string              `json:"availability" validate:"omitempty,max=100"`
	NoticePeriod      *string              `json:"noticePeriod" validate:"omitempty,max=100"`
	Education         json.RawMessage      `json:"education"`
	Experience        json.RawMessage      `json:"experience"`
	Certifications    json.RawMessage      `json:"certifications"`
	Languages         []string             `json:"languages" validate:"omitempty,max=30,dive,required,max=50"`
	OpenToRelocate    *bool                `json:"openToRelocate"`
	JobAlerts         *bool                `json:"jobAlerts"`
	ProfileVisibility *bool                `json:"profileVisibility"`
}

func JobSeekerProfile(in JobSeekerProfileInput) (JobSeekerProfileInput, error) {
	trim(in.ProfessionalTitle, in.YearsExperience, in.Location, in.PortfolioURL, in.LinkedinURL,
		in.GithubURL, in.WebsiteURL, in.Availability, in.NoticePeriod)
	in.Skills = trimList(in.Skills)
	in.Languages = trimList(in.Languages)
	if err := check(in, salaryRange("expectedSalaryMax", in.ExpectedSalaryMin, in.ExpectedSalaryMax)...); err != nil {
		return in, err
	}
	return in, nil
}

type EmployerProfileInput struct {
	JobTitle           *string              `json:"jobTitle" validate:"omitempty,min=1,max=100"`
	CompanyName        *string              `json:"companyName" validate:"omitempty,min=1,max=200"`
	CompanySize        *string              `json:"companySize" validate:"omitempty,min=1,max=50"`
	Industry           *string              `json:"industry" validate:"omitempty,min=1,max=100"`
	CompanyLocation    *string              `json:"companyLocation" validate:"omitempty,min=1,max=200"`
	CompanyDescription *string              `json:"companyDescription" validate:"omitempty,max=5000"`
	Website            *string              `json:"website" validate:"omitempty,weburl"`
	LinkedinURL        *string              `json:"linkedinUrl" validate:"omitempty,weburl"`
	FoundedYear        *int                 `json:"foundedYear" validate:"omitempty,gte=1800,lte=2100"`
	EmployeeCount      *int                 `json:"employeeCount" validate:"omitempty,gte=0"`
	Headquarters       *string              `json:"headquarters" validate:"omitempty,max=200"`
	Benefits           []string             `json:"benefits" validate:"omitempty,max=50,dive,required,max=200"`
	CompanyValues      []string             `json:"companyValues" validate:"omitempty,max=50,dive,required,max=200"`
	WorkCulture        *string              `json:"workCulture" validate:"omitempty,max=5000"`
	RemotePolicy       *domain.RemotePolicy `json:"remotePolicy" validate:"omitempty,oneof=remote onsite hybrid flexible"`
	IsHiring           *bool                `json:"isHiring"`
}

func EmployerProfile(in EmployerProfileInput) (EmployerProfileInput, error) {
	trim(in.JobTitle, in.CompanyName, in.CompanySize, in.Industry, in.CompanyLocation,
		in.CompanyDescription, in.Website, in.LinkedinURL, in.Headquarters, in.WorkCulture)
	in.Benefits = trimList(in.Benefits)
	in.CompanyValues = trimList(in.CompanyValues)
	if err := check(in); err != nil {
		return in, err
	}
	return in, nil
}
