package validation

import (
	"errors"
	"testing"
	"time"

	"jobconnect/pkg/domain"
)

func validSeeker() JobSeekerRegistrationInput {
	return JobSeekerRegistrationInput{
		Account: Account{
			Username:        "jane",
			Email:           "jane@example.com",
			Password:        "secret1",
			ConfirmPassword: "secret1",
			FirstName:       "Jane",
			LastName:        "Doe",
		},
		ProfessionalTitle: "Backend Engineer",
		YearsExperience:   "3-5",
		Skills:            []string{"Go", "SQL"},
		Location:          "Berlin",
	}
}

func fieldErrors(t *testing.T, err error) Errors {
	t.Helper()
	var errs Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation.Errors, got %T (%v)", err, err)
	}
	return errs
}

func hasField(errs Errors, field string) bool {
	for _, fe := range errs {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func TestJobSeekerRegistrationDefaults(t *testing.T) {
	in := validSeeker()
	in.Username = "  jane  "
	out, err := JobSeekerRegistration(in)
	if err != nil {
		t.Fatalf("expected valid registration, got %v", err)
	}
	if out.Username != "jane" {
		t.Fatalf("username not trimmed: %q", out.Username)
	}
	if out.SalaryType != domain.SalaryMonthly {
		t.Fatalf("salaryType = %q, want monthly", out.SalaryType)
	}
}

func TestJobSeekerRegistrationRejects(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*JobSeekerRegistrationInput)
		field string
	}{
		{"short username", func(in *JobSeekerRegistrationInput) { in.Username = "ab" }, "username"},
		{"bad email", func(in *JobSeekerRegistrationInput) { in.Email = "not-an-email" }, "email"},
		{"short password", func(in *JobSeekerRegistrationInput) { in.Password, in.ConfirmPassword = "12345", "12345" }, "password"},
		{"password mismatch", func(in *JobSeekerRegistrationInput) { in.ConfirmPassword = "other1" }, "confirmPassword"},
		{"no skills", func(in *JobSeekerRegistrationInput) { in.Skills = nil }, "skills"},
		{"blank skill", func(in *JobSeekerRegistrationInput) { in.Skills = []string{"  "} }, "skills[0]"},
		{"missing title", func(in *JobSeekerRegistrationInput) { in.ProfessionalTitle = "" }, "professionalTitle"},
		{"missing location", func(in *JobSeekerRegistrationInput) { in.Location = " " }, "location"},
		{"bad salary type", func(in *JobSeekerRegistrationInput) { in.SalaryType = "weekly" }, "salaryType"},
		{"inverted salary", func(in *JobSeekerRegistrationInput) {
			lo, hi := 5000, 1000
			in.ExpectedSalaryMin, in.ExpectedSalaryMax = &lo, &hi
		}, "expectedSalaryMax"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validSeeker()
			tc.edit(&in)
			_, err := JobSeekerRegistration(in)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			errs := fieldErrors(t, err)
			if !hasField(errs, tc.field) {
				t.Fatalf("expected error on %q, got %+v", tc.field, errs)
			}
		})
	}
}

func TestPasswordMismatchMessage(t *testing.T) {
	in := validSeeker()
	in.ConfirmPassword = "nope123"
	_, err := JobSeekerRegistration(in)
	errs := fieldErrors(t, err)
	if len(errs) != 1 || errs[0].Message != "Passwords don't match" {
		t.Fatalf("unexpected errors: %+v", errs)
	}
}

func TestEmployerRegistration(t *testing.T) {
	in := EmployerRegistrationInput{
		Account: Account{
			Username:        "acme-hr",
			Email:           "hr@acme.com",
			Password:        "secret1",
			ConfirmPassword: "secret1",
			FirstName:       "Ada",
			LastName:        "Hr",
		},
		JobTitle:        "Recruiter",
		CompanyName:     "Acme",
		CompanySize:     "51-200",
		Industry:        "Software",
		CompanyLocation: "Remote",
	}
	if _, err := EmployerRegistration(in); err != nil {
		t.Fatalf("expected valid employer registration, got %v", err)
	}

	in.Website = "acme dot com"
	in.CompanyName = ""
	_, err := EmployerRegistration(in)
	errs := fieldErrors(t, err)
	if !hasField(errs, "website") || !hasField(errs, "companyName") {
		t.Fatalf("expected website and companyName errors, got %+v", errs)
	}
}

func TestLogin(t *testing.T) {
	if _, err := Login(LoginInput{Email: "a@b.co", Password: "x"}); err != nil {
		t.Fatalf("expected valid login, got %v", err)
	}
	_, err := Login(LoginInput{Email: "bad", Password: ""})
	errs := fieldErrors(t, err)
	if !hasField(errs, "email") || !hasField(errs, "password") {
		t.Fatalf("expected email and password errors, got %+v", errs)
	}
}

func TestJobPostingDefaultsAndRules(t *testing.T) {
	out, err := JobPosting(JobPostingInput{
		Title:          "Backend Engineer",
		Description:    "Build and run our Go services.",
		EmploymentType: domain.FullTime,
		Location:       "Remote",
		Currency:       "eur",
	})
	if err != nil {
		t.Fatalf("expected valid job, got %v", err)
	}
	if out.Status != domain.JobActive || out.WorkLocation != domain.WorkOnsite || out.Currency != "EUR" {
		t.Fatalf("defaults not applied: %+v", out)
	}

	_, err = JobPosting(JobPostingInput{
		Title:          "X",
		Description:    "too short",
		EmploymentType: "freelance",
	})
	errs := fieldErrors(t, err)
	for _, field := range []string{"description", "employmentType", "location"} {
		if !hasField(errs, field) {
			t.Fatalf("expected error on %q, got %+v", field, errs)
		}
	}
}

func TestJobUpdateOnlyChecksPresentFields(t *testing.T) {
	if _, err := JobUpdate(JobUpdateInput{}); err != nil {
		t.Fatalf("empty update should be valid, got %v", err)
	}
	empty := ""
	status := domain.JobStatus("archived")
	_, err := JobUpdate(JobUpdateInput{Title: &empty, Status: &status})
	errs := fieldErrors(t, err)
	if !hasField(errs, "title") || !hasField(errs, "status") {
		t.Fatalf("expected title and status errors, got %+v", errs)
	}
}

func TestInterviewScheduling(t *testing.T) {
	in := InterviewInput{
		ApplicationID: "app-1",
		Title:         "Technical screen",
		ScheduledAt:   time.Now().Add(48 * time.Hour),
		Type:          domain.InterviewVideo,
		Location:      "https://meet.example.com/abc",
	}
	out, err := InterviewScheduling(in)
	if err != nil {
		t.Fatalf("expected valid interview, got %v", err)
	}
	if out.Duration != 60 {
		t.Fatalf("duration = %d, want default 60", out.Duration)
	}

	in.Duration = 500
	in.Type = "carrier-pigeon"
	in.ScheduledAt = time.Time{}
	_, err = InterviewScheduling(in)
	errs := fieldErrors(t, err)
	for _, field := range []string{"duration", "type", "scheduledAt"} {
		if !hasField(errs, field) {
			t.Fatalf("expected error on %q, got %+v", field, errs)
		}
	}
}

func TestInterviewUpdateStatusMembership(t *testing.T) {
	for _, s := range []domain.InterviewStatus{"scheduled", "completed", "cancelled", "rescheduled"} {
		status := s
		if _, err := InterviewUpdate(InterviewUpdateInput{Status: &status}); err != nil {
			t.Fatalf("status %q should be accepted, got %v", s, err)
		}
	}
	bad := domain.InterviewStatus("postponed")
	if _, err := InterviewUpdate(InterviewUpdateInput{Status: &bad}); err == nil {
		t.Fatalf("expected unknown status to be rejected")
	}
	if _, err := InterviewUpdate(InterviewUpdateInput{}); err == nil {
		t.Fatalf("expected empty update to be rejected")
	}
}

func TestReview(t *testing.T) {
	out, err := Review(ReviewInput{EmployerID: "emp-1", Rating: 4, Title: "Good place"})
	if err != nil {
		t.Fatalf("expected valid review, got %v", err)
	}
	if out.IsAnonymous == nil || !*out.IsAnonymous {
		t.Fatalf("reviews should default to anonymous")
	}

	six := 6
	_, err = Review(ReviewInput{EmployerID: "emp-1", Rating: 0, Culture: &six})
	errs := fieldErrors(t, err)
	for _, field := range []string{"rating", "title", "culture"} {
		if !hasField(errs, field) {
			t.Fatalf("expected error on %q, got %+v", field, errs)
		}
	}
}

func TestMessageAttachmentsMustBeArray(t *testing.T) {
	_, err := Message(MessageInput{ReceiverID: "u-2", Content: "hi", Attachments: []byte(`{"a":1}`)})
	errs := fieldErrors(t, err)
	if !hasField(errs, "attachments") {
		t.Fatalf("expected attachments error, got %+v", errs)
	}
	if _, err := Message(MessageInput{ReceiverID: "u-2", Content: "hi", Attachments: []byte(`[{"name":"cv.pdf"}]`)}); err != nil {
		t.Fatalf("expected valid message, got %v", err)
	}
}
