package store

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"jobconnect/pkg/domain"
)

func seedEmployer(t *testing.T, s *MemoryStore, username, email string) domain.Employer {
	t.Helper()
	now := time.Now().UTC()
	user := domain.User{ID: NewID(), Username: username, Email: email, Role: domain.RoleEmployer, IsActive: true, CreatedAt: now, UpdatedAt: now}
	emp := domain.Employer{ID: NewID(), UserID: user.ID, CompanyName: "Acme", CreatedAt: now, UpdatedAt: now}
	if err := s.CreateEmployerAccount(context.Background(), user, emp); err != nil {
		t.Fatalf("create employer: %v", err)
	}
	return emp
}

func seedSeeker(t *testing.T, s *MemoryStore, username, email string) domain.JobSeeker {
	t.Helper()
	now := time.Now().UTC()
	user := domain.User{ID: NewID(), Username: username, Email: email, Role: domain.RoleJobSeeker, IsActive: true, CreatedAt: now, UpdatedAt: now}
	seeker := domain.JobSeeker{ID: NewID(), UserID: user.ID, Skills: []string{"Go"}, CreatedAt: now, UpdatedAt: now}
	if err := s.CreateJobSeekerAccount(context.Background(), user, seeker); err != nil {
		t.Fatalf("create seeker: %v", err)
	}
	return seeker
}

func seedJob(t *testing.T, s *MemoryStore, employerID, title string, status domain.JobStatus, at time.Time) domain.Job {
	t.Helper()
	job := domain.Job{
		ID:             NewID(),
		EmployerID:     employerID,
		Title:          title,
		Description:    "Work on " + title,
		EmploymentType: domain.FullTime,
		Location:       "Berlin",
		Status:         status,
		CreatedAt:      at,
		UpdatedAt:      at,
	}
	if err := s.CreateJob(context.Background(), job); err != nil {
		t.Fatalf("create job: %v", err)
	}
	return job
}

func TestMemoryStoreRejectsDuplicateIdentity(t *testing.T) {
	s := NewMemoryStore()
	seedEmployer(t, s, "acme", "hr@acme.com")

	now := time.Now().UTC()
	dupEmail := domain.User{ID: NewID(), Username: "other", Email: "hr@acme.com", CreatedAt: now}
	err := s.CreateJobSeekerAccount(context.Background(), dupEmail, domain.JobSeeker{ID: NewID(), UserID: dupEmail.ID})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for email, got %v", err)
	}
	dupName := domain.User{ID: NewID(), Username: "acme", Email: "new@acme.com", CreatedAt: now}
	err = s.CreateJobSeekerAccount(context.Background(), dupName, domain.JobSeeker{ID: NewID(), UserID: dupName.ID})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for username, got %v", err)
	}
	if _, ok, _ := s.GetUserByID(context.Background(), dupName.ID); ok {
		t.Fatalf("failed registration must not leave a user behind")
	}
}

func TestMemoryStoreListJobsFilters(t *testing.T) {
	s := NewMemoryStore()
	emp := seedEmployer(t, s, "acme", "hr@acme.com")
	base := time.Now().UTC()
	older := seedJob(t, s, emp.ID, "Go Engineer", domain.JobActive, base)
	newer := seedJob(t, s, emp.ID, "Data Analyst", domain.JobActive, base.Add(time.Minute))
	seedJob(t, s, emp.ID, "Go Lead", domain.JobPaused, base.Add(2*time.Minute))

	all, err := s.ListJobs(context.Background(), domain.JobFilter{})
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(all) != 2 || all[0].ID != newer.ID || all[1].ID != older.ID {
		t.Fatalf("expected active jobs newest first, got %+v", all)
	}
	if all[0].Employer.CompanyName != "Acme" {
		t.Fatalf("expected employer to be joined")
	}

	got, _ := s.ListJobs(context.Background(), domain.JobFilter{Search: "go"})
	if len(got) != 1 || got[0].ID != older.ID {
		t.Fatalf("expected case-insensitive search to find only the active go job, got %d", len(got))
	}
	got, _ = s.ListJobs(context.Background(), domain.JobFilter{Location: "paris"})
	if len(got) != 0 {
		t.Fatalf("expected no jobs in paris, got %d", len(got))
	}
	got, _ = s.ListJobs(context.Background(), domain.JobFilter{EmploymentType: domain.Contract})
	if len(got) != 0 {
		t.Fatalf("expected no contract jobs, got %d", len(got))
	}
}

func TestMemoryStoreDeleteJobCascades(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	emp := seedEmployer(t, s, "acme", "hr@acme.com")
	seeker := seedSeeker(t, s, "jane", "jane@example.com")
	job := seedJob(t, s, emp.ID, "Go Engineer", domain.JobActive, time.Now().UTC())

	app := domain.Application{ID: NewID(), JobID: job.ID, JobSeekerID: seeker.ID, Status: domain.ApplicationPending, AppliedAt: time.Now().UTC()}
	if err := s.CreateApplication(ctx, app); err != nil {
		t.Fatalf("create application: %v", err)
	}
	if err := s.CreateApplication(ctx, domain.Application{ID: NewID(), JobID: job.ID, JobSeekerID: seeker.ID}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected duplicate application conflict, got %v", err)
	}
	iv := domain.Interview{ID: NewID(), ApplicationID: app.ID, EmployerID: emp.ID, JobSeekerID: seeker.ID, ScheduledAt: time.Now().Add(time.Hour)}
	if err := s.CreateInterview(ctx, iv); err != nil {
		t.Fatalf("create interview: %v", err)
	}
	if err := s.SaveJob(ctx, domain.SavedJob{ID: NewID(), JobSeekerID: seeker.ID, JobID: job.ID}); err != nil {
		t.Fatalf("save job: %v", err)
	}
	appID := app.ID
	if err := s.CreateMessage(ctx, domain.Message{ID: NewID(), SenderID: emp.UserID, ReceiverID: seeker.UserID, ApplicationID: &appID, Content: "hi"}); err != nil {
		t.Fatalf("create message: %v", err)
	}

	if err := s.DeleteJob(ctx, job.ID); err != nil {
		t.Fatalf("delete job: %v", err)
	}
	if _, ok, _ := s.GetApplication(ctx, app.ID); ok {
		t.Fatalf("expected application to be deleted")
	}
	if _, ok, _ := s.GetInterview(ctx, iv.ID); ok {
		t.Fatalf("expected interview to be deleted")
	}
	if saved, _ := s.ListSavedJobs(ctx, seeker.ID); len(saved) != 0 {
		t.Fatalf("expected saved jobs to be deleted")
	}
	msgs, _ := s.ListConversations(ctx, seeker.UserID, ConversationLimit)
	if len(msgs) != 1 || msgs[0].ApplicationID != nil {
		t.Fatalf("expected message to survive with a cleared application link")
	}
}

func TestMemoryStoreSaveJobIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	emp := seedEmployer(t, s, "acme", "hr@acme.com")
	seeker := seedSeeker(t, s, "jane", "jane@example.com")
	job := seedJob(t, s, emp.ID, "Go Engineer", domain.JobActive, time.Now().UTC())

	for i := 0; i < 2; i++ {
		if err := s.SaveJob(ctx, domain.SavedJob{ID: NewID(), JobSeekerID: seeker.ID, JobID: job.ID}); err != nil {
			t.Fatalf("save job: %v", err)
		}
	}
	saved, _ := s.ListSavedJobs(ctx, seeker.ID)
	if len(saved) != 1 {
		t.Fatalf("expected 1 saved job, got %d", len(saved))
	}
	if err := s.UnsaveJob(ctx, seeker.ID, job.ID); err != nil {
		t.Fatalf("unsave: %v", err)
	}
	if err := s.UnsaveJob(ctx, seeker.ID, job.ID); err != nil {
		t.Fatalf("unsave twice: %v", err)
	}
}

func TestMemoryStoreMessagesOrdering(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	emp := seedEmployer(t, s, "acme", "hr@acme.com")
	seeker := seedSeeker(t, s, "jane", "jane@example.com")
	base := time.Now().UTC()
	for i, content := range []string{"first", "second", "third"} {
		msg := domain.Message{ID: NewID(), SenderID: emp.UserID, ReceiverID: seeker.UserID, Content: content, CreatedAt: base.Add(time.Duration(i) * time.Second)}
		if err := s.CreateMessage(ctx, msg); err != nil {
			t.Fatalf("create message: %v", err)
		}
	}
	inbox, _ := s.ListConversations(ctx, seeker.UserID, 2)
	if len(inbox) != 2 || inbox[0].Content != "third" {
		t.Fatalf("expected newest two messages, got %+v", inbox)
	}
	if inbox[0].Sender.Username != "acme" {
		t.Fatalf("expected sender to be joined")
	}
	thread, _ := s.ListThread(ctx, seeker.UserID, emp.UserID)
	if len(thread) != 3 || thread[0].Content != "first" {
		t.Fatalf("expected thread oldest first, got %+v", thread)
	}

	if ok, _ := s.MarkMessageRead(ctx, thread[0].ID, emp.UserID); ok {
		t.Fatalf("sender must not be able to mark the message read")
	}
	if ok, _ := s.MarkMessageRead(ctx, thread[0].ID, seeker.UserID); !ok {
		t.Fatalf("receiver should mark the message read")
	}
}

func TestMemoryStoreSkills(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	skill := domain.Skill{ID: NewID(), Name: "Go", CreatedAt: time.Now().UTC()}
	if err := s.CreateSkill(ctx, skill); err != nil {
		t.Fatalf("create skill: %v", err)
	}
	if err := s.CreateSkill(ctx, domain.Skill{ID: NewID(), Name: "Go"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected duplicate skill conflict, got %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := s.AddUserSkill(ctx, domain.UserSkill{ID: NewID(), UserID: "user-1", SkillID: skill.ID}); err != nil {
			t.Fatalf("add user skill: %v", err)
		}
	}
	list, _ := s.ListUserSkills(ctx, "user-1")
	if len(list) != 1 || list[0].Skill.Name != "Go" {
		t.Fatalf("expected one linked skill, got %+v", list)
	}
}

func TestMemoryStoreEqualTimestampsOrderByID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	emp := seedEmployer(t, s, "acme", "hr@acme.com")
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 6; i++ {
		ids = append(ids, seedJob(t, s, emp.ID, "Role", domain.JobActive, at).ID)
	}
	sort.Strings(ids)
	for run := 0; run < 5; run++ {
		jobs, err := s.ListJobsByEmployer(ctx, emp.ID)
		if err != nil || len(jobs) != len(ids) {
			t.Fatalf("list jobs = %d %v", len(jobs), err)
		}
		for i, job := range jobs {
			if job.ID != ids[i] {
				t.Fatalf("run %d: position %d = %s, want %s", run, i, job.ID, ids[i])
			}
		}
	}
}

func TestMemoryStoreInterviewNestsApplication(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	emp := seedEmployer(t, s, "acme", "hr@acme.com")
	seeker := seedSeeker(t, s, "jane", "jane@example.com")
	job := seedJob(t, s, emp.ID, "Go Engineer", domain.JobActive, time.Now().UTC())
	app := domain.Application{ID: NewID(), JobID: job.ID, JobSeekerID: seeker.ID, Status: domain.ApplicationInterview, AppliedAt: time.Now().UTC()}
	if err := s.CreateApplication(ctx, app); err != nil {
		t.Fatalf("create application: %v", err)
	}
	iv := domain.Interview{ID: NewID(), ApplicationID: app.ID, EmployerID: emp.ID, JobSeekerID: seeker.ID, ScheduledAt: time.Now().Add(time.Hour)}
	if err := s.CreateInterview(ctx, iv); err != nil {
		t.Fatalf("create interview: %v", err)
	}
	list, err := s.ListInterviewsByJobSeeker(ctx, seeker.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("interviews = %d %v", len(list), err)
	}
	got := list[0].Application
	if got.ID != app.ID || got.Job.ID != job.ID {
		t.Fatalf("application/job not nested: %+v", got)
	}
	if got.Job.Employer.ID != emp.ID || got.Job.Employer.User.Username != "acme" {
		t.Fatalf("job employer not joined: %+v", got.Job.Employer)
	}
	if got.JobSeeker.ID != seeker.ID || got.JobSeeker.User.Username != "jane" {
		t.Fatalf("job seeker not joined: %+v", got.JobSeeker)
	}
}
