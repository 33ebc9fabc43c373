package server

import (
	"net/http"
	"strings"

	"jobconnect/pkg/domain"
	"jobconnect/pkg/validation"
	"jobconnect/services/api/internal/app"
)

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jobs, err := s.app.ListJobs(r.Context(), domain.JobFilter{
		Search:         strings.TrimSpace(q.Get("search")),
		Location:       strings.TrimSpace(q.Get("location")),
		EmploymentType: domain.EmploymentType(strings.TrimSpace(q.Get("employmentType"))),
	})
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.app.GetJob(r.Context(), s.optionalActor(r), r.PathValue("id"))
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleMyJobs(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	jobs, err := s.app.ListMyJobs(r.Context(), actor)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	var req validation.JobPostingInput
	if !decodeJSON(w, r, &req) {
		return
	}
	job, err := s.app.CreateJob(r.Context(), actor, req)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	var req validation.JobUpdateInput
	if !decodeJSON(w, r, &req) {
		return
	}
	job, err := s.app.UpdateJob(r.Context(), actor, r.PathValue("id"), req)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	if err := s.app.DeleteJob(r.Context(), actor, r.PathValue("id")); err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeSuccess(w)
}

func (s *Server) handleJobApplications(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	apps, err := s.app.ListJobApplications(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

func (s *Server) handleJobMatches(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	matches, err := s.app.ListJobMatches(r.Context(), actor)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	var req validation.ApplicationInput
	if !decodeJSON(w, r, &req) {
		return
	}
	application, err := s.app.Apply(r.Context(), actor, req)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, application)
}

func (s *Server) handleSeekerApplications(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	apps, err := s.app.ListSeekerApplications(r.Context(), actor)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

func (s *Server) handleEmployerApplications(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	apps, err := s.app.ListEmployerApplications(r.Context(), actor)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

func (s *Server) handleApplicationStatus(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	var req validation.ApplicationStatusInput
	if !decodeJSON(w, r, &req) {
		return
	}
	application, err := s.app.UpdateApplicationStatus(r.Context(), actor, r.PathValue("id"), req)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, application)
}

func (s *Server) handleScheduleInterview(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	var req validation.InterviewInput
	if !decodeJSON(w, r, &req) {
		return
	}
	interview, err := s.app.ScheduleInterview(r.Context(), actor, req)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, interview)
}

func (s *Server) handleUpdateInterview(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	var req validation.InterviewUpdateInput
	if !decodeJSON(w, r, &req) {
		return
	}
	interview, err := s.app.UpdateInterview(r.Context(), actor, r.PathValue("id"), req)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, interview)
}

func (s *Server) handleSeekerInterviews(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	interviews, err := s.app.ListSeekerInterviews(r.Context(), actor)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, interviews)
}

func (s *Server) handleEmployerInterviews(w http.ResponseWriter, r *http.Request, actor app.Actor) {
	interviews, err := s.app.ListEmployerInterviews(r.Context(), actor)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, interviews)
}
