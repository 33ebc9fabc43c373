package server

import (
	"net/http"
	"strings"

	"jobconnect/pkg/validation"
	"jobconnect/services/api/internal/app"
)

func (s *Server) handleJobSeekerDashboard(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	dash, err := s.app.JobSeekerDashboard(r.Context(), actor)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func (s *Server) handleEmployerDashboard(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	dash, err := s.app.EmployerDashboard(r.Context(), actor)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func (s *Server) handleListSavedJobs(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	saved, err := s.app.ListSavedJobs(r.Context(), actor)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleSaveJob(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	var req validation.SavedJobInput
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.app.SaveJob(r.Context(), actor, req); err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeSuccess(w)
}

func (s *Server) handleUnsaveJob(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	if err := s.app.UnsaveJob(r.Context(), actor, r.PathValue("jobId")); err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeSuccess(w)
}

// handleListReviews serves both /api/reviews?employerId= and
// /api/reviews/{employerId}.
func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	employerID := r.PathValue("employerId")
	if employerID == "" {
		employerID = strings.TrimSpace(r.URL.Query().Get("employerId"))
	}
	if employerID == "" {
		writeError(w, http.StatusBadRequest, "employerId is required")
		return
	}
	reviews, err := s.app.ListEmployerReviews(r.Context(), employerID)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	var req validation.ReviewInput
	if !decodeJSON(w, r, &req) {
		return
	}
	review, err := s.app.CreateReview(r.Context(), actor, req)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	msgs, err := s.app.ListConversations(r.Context(), actor)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (s *Server) handleThread(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	msgs, err := s.app.ListThread(r.Context(), actor, r.PathValue("userId"))
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	var req validation.MessageInput
	if !decodeJSON(w, r, &req) {
		return
	}
	msg, err := s.app.SendMessage(r.Context(), actor, req)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	if err := s.app.MarkRead(r.Context(), actor, r.PathValue("id")); err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeSuccess(w)
}

func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := s.app.ListSkills(r.Context())
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (s *Server) handleCreateSkill(w http.ResponseWriter, r *http.Request, _ app.Actor) {
	var req validation.SkillInput
	if !decodeJSON(w, r, &req) {
		return
	}
	skill, err := s.app.CreateSkill(r.Context(), req)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, skill)
}

func (s *Server) handleListUserSkills(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	skills, err := s.app.ListUserSkills(r.Context(), actor)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (s *Server) handleAddUserSkill(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	var req validation.UserSkillInput
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.app.AddUserSkill(r.Context(), actor, req); err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeSuccess(w)
}
