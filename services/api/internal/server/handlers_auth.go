package server

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"jobconnect/internal/util"
	"jobconnect/pkg/domain"
	"jobconnect/pkg/validation"
	"jobconnect/services/api/internal/app"
)

type roleResponse struct {
	Success bool            `json:"success"`
	Role    domain.UserRole `json:"role"`
}

func (s *Server) handleRegisterJobSeeker(w http.ResponseWriter, r *http.Request) {
	if !s.allowRate(w, r, s.registerLimiter) {
		s.audit(r, "auth.register", "rate_limited")
		return
	}
	var req validation.JobSeekerRegistrationInput
	if !decodeJSON(w, r, &req) {
		s.audit(r, "auth.register", "fail", "reason", "invalid_json")
		return
	}
	user, token, err := s.app.RegisterJobSeeker(r.Context(), req)
	s.finishSignIn(w, r, "auth.register", user, token, err)
}

func (s *Server) handleRegisterEmployer(w http.ResponseWriter, r *http.Request) {
	if !s.allowRate(w, r, s.registerLimiter) {
		s.audit(r, "auth.register", "rate_limited")
		return
	}
	var req validation.EmployerRegistrationInput
	if !decodeJSON(w, r, &req) {
		s.audit(r, "auth.register", "fail", "reason", "invalid_json")
		return
	}
	user, token, err := s.app.RegisterEmployer(r.Context(), req)
	s.finishSignIn(w, r, "auth.register", user, token, err)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.allowRate(w, r, s.loginLimiter) {
		s.audit(r, "auth.login", "rate_limited")
		return
	}
	var req validation.LoginInput
	if !decodeJSON(w, r, &req) {
		s.audit(r, "auth.login", "fail", "reason", "invalid_json")
		return
	}
	user, token, err := s.app.Login(r.Context(), req)
	s.finishSignIn(w, r, "auth.login", user, token, err)
}

// finishSignIn audits the outcome and, on success, stores the session token
// in the cookie.
func (s *Server) finishSignIn(w http.ResponseWriter, r *http.Request, event string, user domain.User, token string, err error) {
	if err != nil {
		s.audit(r, event, "fail", "reason", failureReason(err))
		s.writeAppError(w, r, err)
		return
	}
	if err := s.setSessionCookie(w, r, token); err != nil {
		s.writeAppError(w, r, err)
		return
	}
	s.audit(r, event, "success", "user_id", user.ID, "role", string(user.Role))
	writeJSON(w, http.StatusOK, roleResponse{Success: true, Role: user.Role})
}

func failureReason(err error) string {
	var (
		validationErr *app.ValidationError
		conflictErr   *app.ConflictError
	)
	switch {
	case errors.Is(err, app.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.As(err, &validationErr):
		return "validation"
	case errors.As(err, &conflictErr):
		return "conflict"
	default:
		return "internal"
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	if err := s.app.Logout(r.Context(), s.sessionToken(r)); err != nil {
		s.writeAppError(w, r, err)
		return
	}
	s.clearSessionCookie(w, r)
	s.audit(r, "auth.logout", "success", "user_id", actor.UserID)
	writeSuccess(w)
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	me, err := s.app.CurrentUser(r.Context(), actor)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, me)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	var req validation.UserUpdateInput
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := s.app.UpdateCurrentUser(r.Context(), actor, req)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateJobSeekerProfile(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	var req validation.JobSeekerProfileInput
	if !decodeJSON(w, r, &req) {
		return
	}
	profile, err := s.app.UpdateJobSeekerProfile(r.Context(), actor, req)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateEmployerProfile(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	var req validation.EmployerProfileInput
	if !decodeJSON(w, r, &req) {
		return
	}
	profile, err := s.app.UpdateEmployerProfile(r.Context(), actor, req)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	up, cleanup, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	defer cleanup()
	profile, err := s.app.UploadResume(r.Context(), actor, up)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUploadLogo(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	up, cleanup, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	defer cleanup()
	profile, err := s.app.UploadCompanyLogo(r.Context(), actor, up)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	obj, name, err := s.app.OpenResume(r.Context(), actor, r.URL.Query().Get("jobSeekerId"))
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	defer obj.Body.Close()
	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, obj.Body); err != nil {
		util.LoggerFromContext(r.Context()).Warn("stream resume", "err", err)
	}
}

// readUpload pulls the "file" part out of a multipart form capped at the
// configured upload size.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (app.Upload, func(), bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return app.Upload{}, nil, false
		}
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return app.Upload{}, nil, false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required (field: file)")
		return app.Upload{}, nil, false
	}
	if header.Size > s.maxUploadBytes {
		file.Close()
		writeError(w, http.StatusRequestEntityTooLarge, "File too large")
		return app.Upload{}, nil, false
	}
	up := app.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}
	return up, func() { file.Close() }, true
}
