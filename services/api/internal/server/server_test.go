package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"jobconnect/pkg/storage"
	"jobconnect/pkg/store"
	"jobconnect/services/api/internal/app"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testEnv struct {
	srv   *httptest.Server
	redis *miniredis.Miniredis
}

func newTestEnv(t *testing.T, cfg Config) testEnv {
	t.Helper()
	objects, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	a, err := app.New(app.Config{
		Store:    store.NewMemoryStore(),
		Sessions: store.NewMemorySessionStore(time.Hour),
		Objects:  objects,
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	mr := miniredis.RunT(t)
	cfg.App = a
	cfg.RedisAddr = mr.Addr()
	cfg.SessionSecret = testSecret
	if cfg.LoginRateLimitPerMinute == 0 {
		cfg.LoginRateLimitPerMinute = 100
	}
	if cfg.RegisterRateLimitPerMinute == 0 {
		cfg.RegisterRateLimitPerMinute = 100
	}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return testEnv{srv: srv, redis: mr}
}

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func (e testEnv) client(t *testing.T) *client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &client{t: t, base: e.srv.URL, http: &http.Client{Jar: jar}}
}

func (c *client) do(method, path string, body any) (int, []byte) {
	c.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

func (c *client) mustDo(method, path string, body any, want int, dst any) {
	c.t.Helper()
	status, out := c.do(method, path, body)
	if status != want {
		c.t.Fatalf("%s %s: status %d, want %d: %s", method, path, status, want, out)
	}
	if dst != nil {
		if err := json.Unmarshal(out, dst); err != nil {
			c.t.Fatalf("%s %s: decode %s: %v", method, path, out, err)
		}
	}
}

func employerPayload(username, email, company string) map[string]any {
	return map[string]any{
		"username":        username,
		"email":           email,
		"password":        "secret123",
		"confirmPassword": "secret123",
		"firstName":       "Hannah",
		"lastName":        "Reed",
		"jobTitle":        "HR Manager",
		"companyName":     company,
		"companySize":     "51-200",
		"industry":        "Software",
		"companyLocation": "Berlin",
	}
}

func seekerPayload(username, email string) map[string]any {
	return map[string]any{
		"username":          username,
		"email":             email,
		"password":          "secret123",
		"confirmPassword":   "secret123",
		"firstName":         "Sam",
		"lastName":          "Lee",
		"professionalTitle": "Backend Developer",
		"yearsExperience":   "3-5",
		"skills":            []string{"Go"},
		"location":          "Remote",
	}
}

var backendJob = map[string]any{
	"title":          "Backend Engineer",
	"description":    "Design and operate our Go services.",
	"employmentType": "full-time",
	"location":       "Berlin",
	"status":         "active",
}

type idResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func TestEndToEndHiringFlow(t *testing.T) {
	env := newTestEnv(t, Config{})
	acme := env.client(t)
	seeker := env.client(t)

	// Scenario 1: employer posts a job that shows up in the public listing.
	var role roleResponse
	acme.mustDo(http.MethodPost, "/api/auth/register/employer", employerPayload("acme", "hr@acme.com", "Acme"), http.StatusOK, &role)
	if !role.Success || role.Role != "employer" {
		t.Fatalf("unexpected register response %+v", role)
	}
	var job idResponse
	acme.mustDo(http.MethodPost, "/api/jobs", backendJob, http.StatusCreated, &job)
	var listed []struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Employer struct {
			CompanyName string `json:"companyName"`
		} `json:"employer"`
	}
	env.client(t).mustDo(http.MethodGet, "/api/jobs?search=backend", nil, http.StatusOK, &listed)
	if len(listed) != 1 || listed[0].ID != job.ID || listed[0].Employer.CompanyName != "Acme" {
		t.Fatalf("listing = %+v", listed)
	}

	// Scenario 2: job seeker applies and both sides see the application.
	seeker.mustDo(http.MethodPost, "/api/auth/register/job-seeker", seekerPayload("sam", "sam@example.com"), http.StatusOK, &role)
	var application idResponse
	seeker.mustDo(http.MethodPost, "/api/applications", map[string]any{"jobId": job.ID, "coverLetter": "I love Go."}, http.StatusCreated, &application)
	seeker.mustDo(http.MethodPost, "/api/applications", map[string]any{"jobId": job.ID}, http.StatusConflict, nil)

	var mine []idResponse
	seeker.mustDo(http.MethodGet, "/api/applications/job-seeker", nil, http.StatusOK, &mine)
	if len(mine) != 1 || mine[0].Status != "pending" {
		t.Fatalf("seeker applications = %+v", mine)
	}
	var received []struct {
		ID        string `json:"id"`
		JobSeeker struct {
			User struct {
				Email string `json:"email"`
			} `json:"user"`
		} `json:"jobSeeker"`
	}
	acme.mustDo(http.MethodGet, "/api/applications/employer", nil, http.StatusOK, &received)
	if len(received) != 1 || received[0].ID != application.ID || received[0].JobSeeker.User.Email != "sam@example.com" {
		t.Fatalf("employer applications = %+v", received)
	}

	// Scenario 3: interview scheduling and completion.
	var interview idResponse
	acme.mustDo(http.MethodPost, "/api/interviews", map[string]any{
		"applicationId": application.ID,
		"title":         "Technical interview",
		"scheduledAt":   time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
		"duration":      60,
		"type":          "video",
		"location":      "https://meet.example.com/acme",
	}, http.StatusCreated, &interview)
	for _, c := range []struct {
		client *client
		path   string
	}{{seeker, "/api/interviews/job-seeker"}, {acme, "/api/interviews/employer"}} {
		var list []struct {
			idResponse
			Application struct {
				ID  string `json:"id"`
				Job struct {
					ID       string `json:"id"`
					Employer struct {
						CompanyName string `json:"companyName"`
						User        struct {
							Email string `json:"email"`
						} `json:"user"`
					} `json:"employer"`
				} `json:"job"`
				JobSeeker struct {
					User struct {
						Email string `json:"email"`
					} `json:"user"`
				} `json:"jobSeeker"`
			} `json:"application"`
		}
		c.client.mustDo(http.MethodGet, c.path, nil, http.StatusOK, &list)
		if len(list) != 1 || list[0].ID != interview.ID || list[0].Status != "scheduled" {
			t.Fatalf("%s = %+v", c.path, list)
		}
		nested := list[0].Application
		if nested.ID != application.ID || nested.Job.ID != job.ID {
			t.Fatalf("%s application/job not nested: %+v", c.path, nested)
		}
		if nested.Job.Employer.CompanyName != "Acme" || nested.Job.Employer.User.Email != "hr@acme.com" {
			t.Fatalf("%s job employer = %+v", c.path, nested.Job.Employer)
		}
		if nested.JobSeeker.User.Email != "sam@example.com" {
			t.Fatalf("%s job seeker = %+v", c.path, nested.JobSeeker)
		}
	}
	acme.mustDo(http.MethodPut, "/api/interviews/"+interview.ID, map[string]any{"status": "completed"}, http.StatusOK, nil)
	for _, c := range []struct {
		client *client
		path   string
	}{{seeker, "/api/interviews/job-seeker"}, {acme, "/api/interviews/employer"}} {
		var list []idResponse
		c.client.mustDo(http.MethodGet, c.path, nil, http.StatusOK, &list)
		if len(list) != 1 || list[0].Status != "completed" {
			t.Fatalf("%s after update = %+v", c.path, list)
		}
	}
	acme.mustDo(http.MethodPut, "/api/interviews/"+interview.ID, map[string]any{"status": "postponed"}, http.StatusBadRequest, nil)
	acme.mustDo(http.MethodPut, "/api/interviews/"+interview.ID, map[string]any{"status": "scheduled"}, http.StatusConflict, nil)

	var dash struct {
		Stats struct {
			TotalJobs         int `json:"totalJobs"`
			TotalApplications int `json:"totalApplications"`
		} `json:"stats"`
	}
	acme.mustDo(http.MethodGet, "/api/dashboard/employer", nil, http.StatusOK, &dash)
	if dash.Stats.TotalJobs != 1 || dash.Stats.TotalApplications != 1 {
		t.Fatalf("employer dashboard stats = %+v", dash.Stats)
	}
	seeker.mustDo(http.MethodGet, "/api/dashboard/employer", nil, http.StatusNotFound, nil)

	for _, c := range []struct {
		client *client
		path   string
		keys   []string
	}{
		{acme, "/api/dashboard/employer", []string{"profile", "stats", "activeJobs", "recentApplications", "upcomingInterviews", "companyReviews", "messages"}},
		{seeker, "/api/dashboard/job-seeker", []string{"profile", "stats", "recentApplications", "savedJobs", "jobMatches", "upcomingInterviews", "messages"}},
	} {
		var raw map[string]json.RawMessage
		c.client.mustDo(http.MethodGet, c.path, nil, http.StatusOK, &raw)
		for _, key := range c.keys {
			if _, ok := raw[key]; !ok {
				t.Fatalf("%s missing %q in %v", c.path, key, raw)
			}
		}
		if len(raw) != len(c.keys) {
			t.Fatalf("%s has unexpected keys: %v", c.path, raw)
		}
	}
}

func TestLoginIsGenericOnFailure(t *testing.T) {
	env := newTestEnv(t, Config{})
	c := env.client(t)
	c.mustDo(http.MethodPost, "/api/auth/register/job-seeker", seekerPayload("sam", "sam@example.com"), http.StatusOK, nil)

	var wrongPassword, unknownUser struct {
		Message string `json:"message"`
	}
	fresh := env.client(t)
	fresh.mustDo(http.MethodPost, "/api/auth/login", map[string]any{"email": "sam@example.com", "password": "nope-nope"}, http.StatusUnauthorized, &wrongPassword)
	fresh.mustDo(http.MethodPost, "/api/auth/login", map[string]any{"email": "ghost@example.com", "password": "secret123"}, http.StatusUnauthorized, &unknownUser)
	if wrongPassword.Message != "Invalid credentials" || wrongPassword != unknownUser {
		t.Fatalf("login errors must be identical, got %q and %q", wrongPassword.Message, unknownUser.Message)
	}

	fresh.mustDo(http.MethodPost, "/api/auth/login", map[string]any{"email": "sam@example.com", "password": "secret123"}, http.StatusOK, nil)
	var me struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
		Profile map[string]any `json:"profile"`
	}
	fresh.mustDo(http.MethodGet, "/api/auth/user", nil, http.StatusOK, &me)
	if me.User.Email != "sam@example.com" || me.User.Role != "job_seeker" || me.Profile["professionalTitle"] != "Backend Developer" {
		t.Fatalf("current user = %+v", me)
	}
	if _, raw := fresh.do(http.MethodGet, "/api/auth/user", nil); strings.Contains(strings.ToLower(string(raw)), "password") {
		t.Fatalf("password hash must never be serialized: %s", raw)
	}

	fresh.mustDo(http.MethodPost, "/api/auth/logout", nil, http.StatusOK, nil)
	fresh.mustDo(http.MethodGet, "/api/auth/user", nil, http.StatusUnauthorized, nil)
}

func TestRegisterConflictAndValidation(t *testing.T) {
	env := newTestEnv(t, Config{})
	c := env.client(t)
	c.mustDo(http.MethodPost, "/api/auth/register/employer", employerPayload("acme", "hr@acme.com", "Acme"), http.StatusOK, nil)

	var body struct {
		Message string `json:"message"`
	}
	env.client(t).mustDo(http.MethodPost, "/api/auth/register/employer", employerPayload("acme2", "hr@acme.com", "Acme"), http.StatusConflict, &body)
	if body.Message != "User already exists" {
		t.Fatalf("conflict message = %q", body.Message)
	}
	bad := employerPayload("x", "not-an-email", "Acme")
	var invalid struct {
		Message string `json:"message"`
		Errors  []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	env.client(t).mustDo(http.MethodPost, "/api/auth/register/employer", bad, http.StatusBadRequest, &invalid)
	if invalid.Message == "" || len(invalid.Errors) < 2 {
		t.Fatalf("validation response = %+v", invalid)
	}
	env.client(t).mustDo(http.MethodPost, "/api/auth/login", "{not json", http.StatusBadRequest, &body)
	if body.Message != "Invalid JSON body" {
		t.Fatalf("invalid json message = %q", body.Message)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t, Config{})
	c := env.client(t)
	for _, path := range []string{"/api/auth/user", "/api/dashboard/job-seeker", "/api/saved-jobs", "/api/messages/conversations"} {
		var body struct {
			Message string `json:"message"`
		}
		c.mustDo(http.MethodGet, path, nil, http.StatusUnauthorized, &body)
		if body.Message != "Authentication required" {
			t.Fatalf("%s message = %q", path, body.Message)
		}
	}
	c.mustDo(http.MethodPost, "/api/jobs", backendJob, http.StatusUnauthorized, nil)
	if status, _ := c.do(http.MethodPatch, "/api/jobs", nil); status != http.StatusMethodNotAllowed {
		t.Fatalf("PATCH /api/jobs status = %d", status)
	}
}

func TestJobOwnershipIsNotFound(t *testing.T) {
	env := newTestEnv(t, Config{})
	acme := env.client(t)
	globex := env.client(t)
	acme.mustDo(http.MethodPost, "/api/auth/register/employer", employerPayload("acme", "hr@acme.com", "Acme"), http.StatusOK, nil)
	globex.mustDo(http.MethodPost, "/api/auth/register/employer", employerPayload("globex", "hr@globex.com", "Globex"), http.StatusOK, nil)
	var job idResponse
	acme.mustDo(http.MethodPost, "/api/jobs", backendJob, http.StatusCreated, &job)

	globex.mustDo(http.MethodPut, "/api/jobs/"+job.ID, map[string]any{"title": "Stolen"}, http.StatusNotFound, nil)
	globex.mustDo(http.MethodDelete, "/api/jobs/"+job.ID, nil, http.StatusNotFound, nil)
	globex.mustDo(http.MethodGet, "/api/jobs/"+job.ID+"/applications", nil, http.StatusNotFound, nil)

	var got struct {
		Title string `json:"title"`
	}
	env.client(t).mustDo(http.MethodGet, "/api/jobs/"+job.ID, nil, http.StatusOK, &got)
	if got.Title != "Backend Engineer" {
		t.Fatalf("job changed by non-owner: %q", got.Title)
	}

	acme.mustDo(http.MethodPut, "/api/jobs/"+job.ID, map[string]any{"status": "paused"}, http.StatusOK, nil)
	var listed []idResponse
	env.client(t).mustDo(http.MethodGet, "/api/jobs", nil, http.StatusOK, &listed)
	if len(listed) != 0 {
		t.Fatalf("paused jobs must not be listed: %+v", listed)
	}
	env.client(t).mustDo(http.MethodGet, "/api/jobs/"+job.ID, nil, http.StatusNotFound, nil)
	acme.mustDo(http.MethodGet, "/api/jobs/"+job.ID, nil, http.StatusOK, nil)
	var my []idResponse
	acme.mustDo(http.MethodGet, "/api/jobs/employer/my-jobs", nil, http.StatusOK, &my)
	if len(my) != 1 {
		t.Fatalf("my jobs = %+v", my)
	}

	acme.mustDo(http.MethodDelete, "/api/jobs/"+job.ID, nil, http.StatusOK, nil)
	acme.mustDo(http.MethodGet, "/api/jobs/"+job.ID, nil, http.StatusNotFound, nil)
}

func TestSavedJobsIdempotent(t *testing.T) {
	env := newTestEnv(t, Config{})
	acme := env.client(t)
	seeker := env.client(t)
	acme.mustDo(http.MethodPost, "/api/auth/register/employer", employerPayload("acme", "hr@acme.com", "Acme"), http.StatusOK, nil)
	seeker.mustDo(http.MethodPost, "/api/auth/register/job-seeker", seekerPayload("sam", "sam@example.com"), http.StatusOK, nil)
	var job idResponse
	acme.mustDo(http.MethodPost, "/api/jobs", backendJob, http.StatusCreated, &job)

	for i := 0; i < 2; i++ {
		seeker.mustDo(http.MethodPost, "/api/saved-jobs", map[string]any{"jobId": job.ID}, http.StatusOK, nil)
	}
	var saved []struct {
		JobID string `json:"jobId"`
	}
	seeker.mustDo(http.MethodGet, "/api/saved-jobs", nil, http.StatusOK, &saved)
	if len(saved) != 1 || saved[0].JobID != job.ID {
		t.Fatalf("saved jobs = %+v", saved)
	}
	seeker.mustDo(http.MethodDelete, "/api/saved-jobs/"+job.ID, nil, http.StatusOK, nil)
	seeker.mustDo(http.MethodDelete, "/api/saved-jobs/"+job.ID, nil, http.StatusOK, nil)
	seeker.mustDo(http.MethodGet, "/api/saved-jobs", nil, http.StatusOK, &saved)
	if len(saved) != 0 {
		t.Fatalf("saved jobs after delete = %+v", saved)
	}
	acme.mustDo(http.MethodGet, "/api/saved-jobs", nil, http.StatusNotFound, nil)
}

func TestLoginRateLimit(t *testing.T) {
	env := newTestEnv(t, Config{LoginRateLimitPerMinute: 1})
	c := env.client(t)
	body := map[string]any{"email": "sam@example.com", "password": "secret123"}
	c.mustDo(http.MethodPost, "/api/auth/login", body, http.StatusUnauthorized, nil)

	req, _ := http.NewRequest(http.MethodPost, env.srv.URL+"/api/auth/login", bytes.NewReader(mustJSON(t, body)))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second request expected 429, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestServerRequiresRedisRateLimiter(t *testing.T) {
	a, err := app.New(app.Config{Store: store.NewMemoryStore(), Sessions: store.NewMemorySessionStore(time.Hour), Objects: nopObjects{}})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if _, err := New(Config{App: a, SessionSecret: testSecret}); err == nil {
		t.Fatalf("expected limiter initialization to fail without redis addr")
	}
}

func TestMessagingAndSkills(t *testing.T) {
	env := newTestEnv(t, Config{})
	acme := env.client(t)
	seeker := env.client(t)
	acme.mustDo(http.MethodPost, "/api/auth/register/employer", employerPayload("acme", "hr@acme.com", "Acme"), http.StatusOK, nil)
	seeker.mustDo(http.MethodPost, "/api/auth/register/job-seeker", seekerPayload("sam", "sam@example.com"), http.StatusOK, nil)

	var me struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	seeker.mustDo(http.MethodGet, "/api/auth/user", nil, http.StatusOK, &me)

	var msg idResponse
	acme.mustDo(http.MethodPost, "/api/messages", map[string]any{"receiverId": me.User.ID, "content": "Hello Sam"}, http.StatusCreated, &msg)
	var inbox []struct {
		ID     string `json:"id"`
		IsRead bool   `json:"isRead"`
		Sender struct {
			Username string `json:"username"`
		} `json:"sender"`
	}
	seeker.mustDo(http.MethodGet, "/api/messages/conversations", nil, http.StatusOK, &inbox)
	if len(inbox) != 1 || inbox[0].Sender.Username != "acme" || inbox[0].IsRead {
		t.Fatalf("inbox = %+v", inbox)
	}
	acme.mustDo(http.MethodPut, "/api/messages/"+msg.ID+"/read", nil, http.StatusNotFound, nil)
	seeker.mustDo(http.MethodPut, "/api/messages/"+msg.ID+"/read", nil, http.StatusOK, nil)

	var skill idResponse
	seeker.mustDo(http.MethodPost, "/api/skills", map[string]any{"name": "Go"}, http.StatusCreated, &skill)
	seeker.mustDo(http.MethodPost, "/api/skills", map[string]any{"name": "Go"}, http.StatusConflict, nil)
	seeker.mustDo(http.MethodPost, "/api/skills/user", map[string]any{"skillId": skill.ID, "proficiencyLevel": "advanced"}, http.StatusOK, nil)
	var catalog []idResponse
	env.client(t).mustDo(http.MethodGet, "/api/skills", nil, http.StatusOK, &catalog)
	if len(catalog) != 1 {
		t.Fatalf("skills = %+v", catalog)
	}
}

func TestReviewsArePublicToRead(t *testing.T) {
	env := newTestEnv(t, Config{})
	acme := env.client(t)
	seeker := env.client(t)
	acme.mustDo(http.MethodPost, "/api/auth/register/employer", employerPayload("acme", "hr@acme.com", "Acme"), http.StatusOK, nil)
	seeker.mustDo(http.MethodPost, "/api/auth/register/job-seeker", seekerPayload("sam", "sam@example.com"), http.StatusOK, nil)
	var me struct {
		Profile struct {
			ID string `json:"id"`
		} `json:"profile"`
	}
	acme.mustDo(http.MethodGet, "/api/auth/user", nil, http.StatusOK, &me)

	seeker.mustDo(http.MethodPost, "/api/reviews", map[string]any{"employerId": me.Profile.ID, "rating": 4, "title": "Good place"}, http.StatusCreated, nil)
	acme.mustDo(http.MethodPost, "/api/reviews", map[string]any{"employerId": me.Profile.ID, "rating": 5, "title": "Self review"}, http.StatusNotFound, nil)

	var reviews []map[string]any
	env.client(t).mustDo(http.MethodGet, "/api/reviews/"+me.Profile.ID, nil, http.StatusOK, &reviews)
	if len(reviews) != 1 || reviews[0]["jobSeeker"] != nil {
		t.Fatalf("reviews = %+v", reviews)
	}
	env.client(t).mustDo(http.MethodGet, "/api/reviews?employerId="+me.Profile.ID, nil, http.StatusOK, &reviews)
	if len(reviews) != 1 {
		t.Fatalf("reviews by query = %+v", reviews)
	}
	env.client(t).mustDo(http.MethodGet, "/api/reviews", nil, http.StatusBadRequest, nil)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return raw
}

type nopObjects struct{}

func (nopObjects) Put(context.Context, string, io.Reader, int64, string) error { return nil }
func (nopObjects) Get(context.Context, string) (storage.Object, error) {
	return storage.Object{}, storage.ErrNotFound
}
func (nopObjects) Delete(context.Context, string) error { return nil }
