package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"jobconnect/internal/util"
	"jobconnect/pkg/domain"
	"jobconnect/pkg/storage"
	"jobconnect/pkg/validation"
)

var (
	resumeExtensions = map[string]bool{".pdf": true, ".doc": true, ".docx": true}
	logoExtensions   = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true}
)

// Upload is a file streamed from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UpdateJobSeekerProfile applies a partial edit to the caller's job seeker
// profile.
func (a *App) UpdateJobSeekerProfile(ctx context.Context, actor Actor, in validation.JobSeekerProfileInput) (domain.JobSeeker, error) {
	in, err := validation.JobSeekerProfile(in)
	if err != nil {
		return domain.JobSeeker{}, asValidation(err)
	}
	current, err := a.jobSeekerFor(ctx, actor)
	if err != nil {
		return domain.JobSeeker{}, err
	}
	s := current.JobSeeker
	setString(&s.ProfessionalTitle, in.ProfessionalTitle)
	setString(&s.YearsExperience, in.YearsExperience)
	setString(&s.Location, in.Location)
	setString(&s.PortfolioURL, in.PortfolioURL)
	setString(&s.LinkedinURL, in.LinkedinURL)
	setString(&s.GithubURL, in.GithubURL)
	setString(&s.WebsiteURL, in.WebsiteURL)
	setString(&s.Availability, in.Availability)
	setString(&s.NoticePeriod, in.NoticePeriod)
	setInt(&s.ExpectedSalaryMin, in.ExpectedSalaryMin)
	setInt(&s.ExpectedSalaryMax, in.ExpectedSalaryMax)
	setBool(&s.OpenToRelocate, in.OpenToRelocate)
	setBool(&s.JobAlerts, in.JobAlerts)
	setBool(&s.ProfileVisibility, in.ProfileVisibility)
	if in.SalaryType != nil {
		s.SalaryType = *in.SalaryType
	}
	if in.WorkPreference != nil {
		s.WorkPreference = *in.WorkPreference
	}
	if in.Skills != nil {
		s.Skills = in.Skills
	}
	if in.Languages != nil {
		s.Languages = in.Languages
	}
	if in.Education != nil {
		s.Education = in.Education
	}
	if in.Experience != nil {
		s.Experience = in.Experience
	}
	if in.Certifications != nil {
		s.Certifications = in.Certifications
	}
	if s.ExpectedSalaryMin != nil && s.ExpectedSalaryMax != nil && *s.ExpectedSalaryMin > *s.ExpectedSalaryMax {
		return domain.JobSeeker{}, invalidField("expectedSalaryMax", "must be greater than or equal to expectedSalaryMin")
	}
	s.UpdatedAt = a.now()
	if err := a.store.UpdateJobSeeker(ctx, s); err != nil {
		return domain.JobSeeker{}, fmt.Errorf("update job seeker: %w", err)
	}
	return s, nil
}

// UpdateEmployerProfile applies a partial edit to the caller's company
// profile.
func (a *App) UpdateEmployerProfile(ctx context.Context, actor Actor, in validation.EmployerProfileInput) (domain.Employer, error) {
	in, err := validation.EmployerProfile(in)
	if err != nil {
		return domain.Employer{}, asValidation(err)
	}
	current, err := a.employerFor(ctx, actor)
	if err != nil {
		return domain.Employer{}, err
	}
	e := current.Employer
	setString(&e.JobTitle, in.JobTitle)
	setString(&e.CompanyName, in.CompanyName)
	setString(&e.CompanySize, in.CompanySize)
	setString(&e.Industry, in.Industry)
	setString(&e.CompanyLocation, in.CompanyLocation)
	setString(&e.CompanyDescription, in.CompanyDescription)
	setString(&e.Website, in.Website)
	setString(&e.LinkedinURL, in.LinkedinURL)
	setString(&e.Headquarters, in.Headquarters)
	setString(&e.WorkCulture, in.WorkCulture)
	setInt(&e.FoundedYear, in.FoundedYear)
	setInt(&e.EmployeeCount, in.EmployeeCount)
	setBool(&e.IsHiring, in.IsHiring)
	if in.RemotePolicy != nil {
		e.RemotePolicy = *in.RemotePolicy
	}
	if in.Benefits != nil {
		e.Benefits = in.Benefits
	}
	if in.CompanyValues != nil {
		e.CompanyValues = in.CompanyValues
	}
	e.UpdatedAt = a.now()
	if err := a.store.UpdateEmployer(ctx, e); err != nil {
		return domain.Employer{}, fmt.Errorf("update employer: %w", err)
	}
	return e, nil
}

// UploadResume stores the caller's resume and records its key on the
// profile. A previous resume under a different name is removed.
func (a *App) UploadResume(ctx context.Context, actor Actor, up Upload) (domain.JobSeeker, error) {
	current, err := a.jobSeekerFor(ctx, actor)
	if err != nil {
		return domain.JobSeeker{}, err
	}
	name, contentType, err := checkUpload(up, resumeExtensions)
	if err != nil {
		return domain.JobSeeker{}, err
	}
	key := path.Join("resumes", current.ID, name)
	if err := a.objects.Put(ctx, key, up.Body, up.Size, contentType); err != nil {
		return domain.JobSeeker{}, fmt.Errorf("store resume: %w", err)
	}
	s := current.JobSeeker
	previous := s.ResumeKey
	s.ResumeKey = key
	s.UpdatedAt = a.now()
	if err := a.store.UpdateJobSeeker(ctx, s); err != nil {
		a.dropObject(ctx, key, previous)
		return domain.JobSeeker{}, fmt.Errorf("update job seeker: %w", err)
	}
	a.dropObject(ctx, previous, key)
	return s, nil
}

// UploadCompanyLogo stores the caller's company logo.
func (a *App) UploadCompanyLogo(ctx context.Context, actor Actor, up Upload) (domain.Employer, error) {
	current, err := a.employerFor(ctx, actor)
	if err != nil {
		return domain.Employer{}, err
	}
	name, contentType, err := checkUpload(up, logoExtensions)
	if err != nil {
		return domain.Employer{}, err
	}
	key := path.Join("logos", current.ID, name)
	if err := a.objects.Put(ctx, key, up.Body, up.Size, contentType); err != nil {
		return domain.Employer{}, fmt.Errorf("store logo: %w", err)
	}
	e := current.Employer
	previous := e.CompanyLogoKey
	e.CompanyLogoKey = key
	e.UpdatedAt = a.now()
	if err := a.store.UpdateEmployer(ctx, e); err != nil {
		a.dropObject(ctx, key, previous)
		return domain.Employer{}, fmt.Errorf("update employer: %w", err)
	}
	a.dropObject(ctx, previous, key)
	return e, nil
}

// OpenResume streams a resume. An empty jobSeekerID means the caller's own.
// Employers may read the resume of any seeker that applied to one of their
// jobs. The caller closes the returned body.
func (a *App) OpenResume(ctx context.Context, actor Actor, jobSeekerID string) (storage.Object, string, error) {
	var seeker domain.JobSeekerWithUser
	switch {
	case jobSeekerID == "":
		s, err := a.jobSeekerFor(ctx, actor)
		if err != nil {
			return storage.Object{}, "", err
		}
		seeker = s
	case actor.Role == domain.RoleEmployer:
		employer, err := a.employerFor(ctx, actor)
		if err != nil {
			return storage.Object{}, "", err
		}
		applied, err := a.store.HasApplicationFromSeeker(ctx, employer.ID, jobSeekerID)
		if err != nil {
			return storage.Object{}, "", fmt.Errorf("check application: %w", err)
		}
		if !applied {
			return storage.Object{}, "", notFound("Resume")
		}
		s, ok, err := a.store.GetJobSeeker(ctx, jobSeekerID)
		if err != nil {
			return storage.Object{}, "", fmt.Errorf("load job seeker: %w", err)
		}
		if !ok {
			return storage.Object{}, "", notFound("Resume")
		}
		seeker = s
	default:
		s, err := a.jobSeekerFor(ctx, actor)
		if err != nil {
			return storage.Object{}, "", err
		}
		if s.ID != jobSeekerID {
			return storage.Object{}, "", notFound("Resume")
		}
		seeker = s
	}
	if seeker.ResumeKey == "" {
		return storage.Object{}, "", notFound("Resume")
	}
	obj, err := a.objects.Get(ctx, seeker.ResumeKey)
	if errors.Is(err, storage.ErrNotFound) {
		return storage.Object{}, "", notFound("Resume")
	}
	if err != nil {
		return storage.Object{}, "", fmt.Errorf("open resume: %w", err)
	}
	return obj, path.Base(seeker.ResumeKey), nil
}

func checkUpload(up Upload, allowed map[string]bool) (string, string, error) {
	if up.Body == nil {
		return "", "", invalidField("file", "is required")
	}
	name := storage.SafeFilename(up.Filename)
	ext := strings.ToLower(path.Ext(name))
	if !allowed[ext] {
		return "", "", invalidField("file", "unsupported file type")
	}
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = up.ContentType
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return name, contentType, nil
}

// dropObject deletes stale unless it is the key still in use.
func (a *App) dropObject(ctx context.Context, stale, current string) {
	if stale == "" || stale == current {
		return
	}
	if err := a.objects.Delete(ctx, stale); err != nil && !errors.Is(err, storage.ErrNotFound) {
		util.LoggerFromContext(ctx).Warn("remove object", "key", stale, "err", err)
	}
}
