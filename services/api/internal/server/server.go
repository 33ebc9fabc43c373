package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/sessions"

	"jobconnect/internal/ratelimit"
	"jobconnect/internal/security"
	"jobconnect/internal/util"
	"jobconnect/services/api/internal/app"
)

const (
	maxBodyBytes      = 1 << 20
	sessionTokenValue = "token"
	defaultCookieName = "jobconnect_session"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App                        *app.App
	RedisAddr                  string
	RedisPassword              string
	LoginRateLimitPerMinute    int
	RegisterRateLimitPerMinute int
	SessionSecret              string
	SessionCookieName          string
	SessionCookieSecure        bool
	SessionTTL                 time.Duration
	CORSAllowedOrigins         []string
	TrustedProxyCIDRs          []string
	MaxUploadBytes             int64
}

// Server exposes the JobConnect REST API.
type Server struct {
	app             *app.App
	mux             *http.ServeMux
	cookies         *sessions.CookieStore
	cookieName      string
	corsOrigins     []string
	trusted         *util.TrustedProxies
	maxUploadBytes  int64
	loginLimiter    *ratelimit.FixedWindowLimiter
	registerLimiter *ratelimit.FixedWindowLimiter
	alerter         *security.AuditAlerter
}

// New constructs the server with routes configured.
func New(cfg Config) (*Server, error) {
	if cfg.App == nil {
		return nil, errors.New("server requires an app")
	}
	if len(cfg.SessionSecret) < 32 {
		return nil, errors.New("session secret must be at least 32 bytes")
	}
	loginLimit := cfg.LoginRateLimitPerMinute
	if loginLimit <= 0 {
		loginLimit = 10
	}
	registerLimit := cfg.RegisterRateLimitPerMinute
	if registerLimit <= 0 {
		registerLimit = 5
	}
	newLimiter := func(name string, limit int) (*ratelimit.FixedWindowLimiter, error) {
		prefix := "jobconnect:ratelimit:" + name
		limiter, err := ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, prefix, limit, time.Minute)
		if err != nil {
			return nil, fmt.Errorf("init %s limiter: %w", name, err)
		}
		return limiter, nil
	}
	loginLimiter, err := newLimiter("login", loginLimit)
	if err != nil {
		return nil, err
	}
	registerLimiter, err := newLimiter("register", registerLimit)
	if err != nil {
		return nil, err
	}
	trusted, err := util.NewTrustedProxies(cfg.TrustedProxyCIDRs)
	if err != nil {
		return nil, err
	}

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	cookies := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   cfg.SessionCookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	cookieName := cfg.SessionCookieName
	if cookieName == "" {
		cookieName = defaultCookieName
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 5 << 20
	}

	s := &Server{
		app:             cfg.App,
		mux:             http.NewServeMux(),
		cookies:         cookies,
		cookieName:      cookieName,
		corsOrigins:     cfg.CORSAllowedOrigins,
		trusted:         trusted,
		maxUploadBytes:  maxUpload,
		loginLimiter:    loginLimiter,
		registerLimiter: registerLimiter,
		alerter:         security.NewAuditAlerter(cfg.RedisAddr, cfg.RedisPassword, ""),
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(
		util.WithRequestLog("api",
			util.WithSecurityHeaders(
				util.WithCORS(s.corsOrigins, s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	// auth
	s.mux.HandleFunc("POST /api/auth/register/job-seeker", s.handleRegisterJobSeeker)
	s.mux.HandleFunc("POST /api/auth/register/employer", s.handleRegisterEmployer)
	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	s.mux.Handle("POST /api/auth/logout", s.authenticated(s.handleLogout))
	s.mux.Handle("GET /api/auth/user", s.authenticated(s.handleCurrentUser))
	s.mux.Handle("PUT /api/auth/user", s.authenticated(s.handleUpdateUser))

	// profiles
	s.mux.Handle("PUT /api/profile/job-seeker", s.authenticated(s.handleUpdateJobSeekerProfile))
	s.mux.Handle("PUT /api/profile/employer", s.authenticated(s.handleUpdateEmployerProfile))
	s.mux.Handle("POST /api/profile/job-seeker/resume", s.authenticated(s.handleUploadResume))
	s.mux.Handle("GET /api/profile/job-seeker/resume", s.authenticated(s.handleDownloadResume))
	s.mux.Handle("POST /api/profile/employer/logo", s.authenticated(s.handleUploadLogo))

	// dashboards
	s.mux.Handle("GET /api/dashboard/job-seeker", s.authenticated(s.handleJobSeekerDashboard))
	s.mux.Handle("GET /api/dashboard/employer", s.authenticated(s.handleEmployerDashboard))

	// jobs
	s.mux.HandleFunc("GET /api/jobs", s.handleListJobs)
	s.mux.Handle("POST /api/jobs", s.authenticated(s.handleCreateJob))
	s.mux.Handle("GET /api/jobs/employer/my-jobs", s.authenticated(s.handleMyJobs))
	s.mux.HandleFunc("GET /api/jobs/{id}", s.handleGetJob)
	s.mux.Handle("PUT /api/jobs/{id}", s.authenticated(s.handleUpdateJob))
	s.mux.Handle("DELETE /api/jobs/{id}", s.authenticated(s.handleDeleteJob))
	s.mux.Handle("GET /api/jobs/{id}/applications", s.authenticated(s.handleJobApplications))
	s.mux.Handle("GET /api/job-matches", s.authenticated(s.handleJobMatches))

	// applications & interviews
	s.mux.Handle("POST /api/applications", s.authenticated(s.handleApply))
	s.mux.Handle("GET /api/applications/job-seeker", s.authenticated(s.handleSeekerApplications))
	s.mux.Handle("GET /api/applications/employer", s.authenticated(s.handleEmployerApplications))
	s.mux.Handle("PUT /api/applications/{id}/status", s.authenticated(s.handleApplicationStatus))
	s.mux.Handle("POST /api/interviews", s.authenticated(s.handleScheduleInterview))
	s.mux.Handle("PUT /api/interviews/{id}", s.authenticated(s.handleUpdateInterview))
	s.mux.Handle("GET /api/interviews/job-seeker", s.authenticated(s.handleSeekerInterviews))
	s.mux.Handle("GET /api/interviews/employer", s.authenticated(s.handleEmployerInterviews))

	// saved jobs
	s.mux.Handle("GET /api/saved-jobs", s.authenticated(s.handleListSavedJobs))
	s.mux.Handle("POST /api/saved-jobs", s.authenticated(s.handleSaveJob))
	s.mux.Handle("DELETE /api/saved-jobs/{jobId}", s.authenticated(s.handleUnsaveJob))

	// reviews
	s.mux.HandleFunc("GET /api/reviews", s.handleListReviews)
	s.mux.HandleFunc("GET /api/reviews/{employerId}", s.handleListReviews)
	s.mux.Handle("POST /api/reviews", s.authenticated(s.handleCreateReview))

	// messages
	s.mux.Handle("GET /api/messages/conversations", s.authenticated(s.handleConversations))
	s.mux.Handle("GET /api/messages/{userId}", s.authenticated(s.handleThread))
	s.mux.Handle("POST /api/messages", s.authenticated(s.handleSendMessage))
	s.mux.Handle("PUT /api/messages/{id}/read", s.authenticated(s.handleMarkRead))

	// skills
	s.mux.HandleFunc("GET /api/skills", s.handleListSkills)
	s.mux.Handle("POST /api/skills", s.authenticated(s.handleCreateSkill))
	s.mux.Handle("GET /api/skills/user", s.authenticated(s.handleListUserSkills))
	s.mux.Handle("POST /api/skills/user", s.authenticated(s.handleAddUserSkill))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// auth wrappers
type authHandler func(http.ResponseWriter, *http.Request, app.Actor)

func (s *Server) authenticated(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok, err := s.app.Authenticate(r.Context(), s.sessionToken(r))
		if err != nil {
			s.writeAppError(w, r, err)
			return
		}
		if !ok {
			s.audit(r, "api.authorize", "fail", "reason", "no_session")
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next(w, r, actor)
	})
}

// optionalActor resolves the caller on public routes. Lookup failures are
// treated as anonymous.
func (s *Server) optionalActor(r *http.Request) *app.Actor {
	token := s.sessionToken(r)
	if token == "" {
		return nil
	}
	actor, ok, err := s.app.Authenticate(r.Context(), token)
	if err != nil {
		util.LoggerFromContext(r.Context()).Warn("optional session lookup failed", "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	return &actor
}

func (s *Server) sessionToken(r *http.Request) string {
	sess, err := s.cookies.Get(r, s.cookieName)
	if err != nil {
		return ""
	}
	token, _ := sess.Values[sessionTokenValue].(string)
	return token
}

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, token string) error {
	sess, _ := s.cookies.Get(r, s.cookieName)
	sess.Values[sessionTokenValue] = token
	return sess.Save(r, w)
}

func (s *Server) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.cookies.Get(r, s.cookieName)
	delete(sess.Values, sessionTokenValue)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		util.LoggerFromContext(r.Context()).Warn("clear session cookie", "err", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// writeAppError maps application errors onto HTTP responses. Unexpected
// errors are logged and reported without detail.
func (s *Server) writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *app.ValidationError
		notFoundErr   *app.NotFoundError
		profileErr    *app.ProfileNotFoundError
		conflictErr   *app.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": validationErr.Errors.First(),
			"errors":  validationErr.Errors,
		})
	case errors.Is(err, app.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, app.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "Authentication required")
	case errors.As(err, &notFoundErr):
		writeError(w, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &profileErr):
		writeError(w, http.StatusNotFound, profileErr.Error())
	case errors.As(err, &conflictErr):
		writeError(w, http.StatusConflict, conflictErr.Message)
	default:
		util.LoggerFromContext(r.Context()).Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (s *Server) clientIP(r *http.Request) string {
	return util.ClientIP(r, s.trusted)
}

// audit emits a security_event line and feeds the alert counters.
func (s *Server) audit(r *http.Request, event, outcome string, attrs ...any) {
	ip := s.clientIP(r)
	logger := util.LoggerFromContext(r.Context())
	logAttrs := []any{
		"event", event,
		"outcome", outcome,
		"path", r.URL.Path,
		"method", r.Method,
		"ip", ip,
	}
	logAttrs = append(logAttrs, attrs...)
	if outcome == "success" {
		logger.Info("security_event", logAttrs...)
	} else {
		logger.Warn("security_event", logAttrs...)
	}

	result, err := s.alerter.Observe(r.Context(), event, outcome, ip)
	if err != nil {
		logger.Warn("security alert counter failed", "event", event, "err", err)
		return
	}
	if result.Triggered {
		logger.Error("security_alert",
			"event", event,
			"outcome", outcome,
			"ip", ip,
			"count", result.Count,
			"threshold", result.Threshold,
			"window", result.Window.String(),
		)
	}
}

func (s *Server) allowRate(w http.ResponseWriter, r *http.Request, limiter *ratelimit.FixedWindowLimiter) bool {
	ok, retryAfter := limiter.Allow(r.Context(), s.clientIP(r))
	if ok {
		return true
	}
	secs := int((retryAfter + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	writeError(w, http.StatusTooManyRequests, "Too many requests")
	return false
}
