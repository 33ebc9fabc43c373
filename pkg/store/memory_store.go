package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"jobconnect/pkg/domain"
)

// MemoryStore keeps every entity in process. It mirrors the uniqueness and
// cascade rules of the Postgres schema and backs tests and local runs.
type MemoryStore struct {
	mu         sync.RWMutex
	users      map[string]domain.User
	seekers    map[string]domain.JobSeeker
	employers  map[string]domain.Employer
	jobs       map[string]domain.Job
	apps       map[string]domain.Application
	interviews map[string]domain.Interview
	reviews    map[string]domain.CompanyReview
	saved      map[string]domain.SavedJob
	matches    map[string]domain.JobMatch
	messages   []domain.Message
	skills     map[string]domain.Skill
	userSkills map[string]domain.UserSkill
}

// newer orders by time descending. Equal times fall back to id so listings
// do not depend on map iteration order.
func newer(a, b time.Time, idA, idB string) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return idA < idB
}

func older(a, b time.Time, idA, idB string) bool {
	if !a.Equal(b) {
		return a.Before(b)
	}
	return idA < idB
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[string]domain.User),
		seekers:    make(map[string]domain.JobSeeker),
		employers:  make(map[string]domain.Employer),
		jobs:       make(map[string]domain.Job),
		apps:       make(map[string]domain.Application),
		interviews: make(map[string]domain.Interview),
		reviews:    make(map[string]domain.CompanyReview),
		saved:      make(map[string]domain.SavedJob),
		matches:    make(map[string]domain.JobMatch),
		skills:     make(map[string]domain.Skill),
		userSkills: make(map[string]domain.UserSkill),
	}
}

// AddJobMatch records a precomputed match. Matches are produced outside the
// API, so this is only used to seed data.
func (m *MemoryStore) AddJobMatch(match domain.JobMatch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches[match.ID] = match
}

func (m *MemoryStore) userClash(u domain.User) bool {
	for id, other := range m.users {
		if id == u.ID {
			continue
		}
		if other.Username == u.Username || other.Email == u.Email {
			return true
		}
	}
	return false
}

func (m *MemoryStore) CreateJobSeekerAccount(_ context.Context, user domain.User, seeker domain.JobSeeker) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.ID]; exists || m.userClash(user) {
		return ErrConflict
	}
	m.users[user.ID] = user
	m.seekers[seeker.ID] = seeker
	return nil
}

func (m *MemoryStore) CreateEmployerAccount(_ context.Context, user domain.User, employer domain.Employer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.ID]; exists || m.userClash(user) {
		return ErrConflict
	}
	m.users[user.ID] = user
	m.employers[employer.ID] = employer
	return nil
}

func (m *MemoryStore) GetUserByID(_ context.Context, id string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (domain.User, bool, error) {
	return m.findUser(func(u domain.User) bool { return u.Email == email })
}

func (m *MemoryStore) GetUserByUsername(_ context.Context, username string) (domain.User, bool, error) {
	return m.findUser(func(u domain.User) bool { return u.Username == username })
}

func (m *MemoryStore) findUser(match func(domain.User) bool) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if match(u) {
			return u, true, nil
		}
	}
	return domain.User{}, false, nil
}

func (m *MemoryStore) UpdateUser(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.userClash(user) {
		return ErrConflict
	}
	m.users[user.ID] = user
	return nil
}

func (m *MemoryStore) TouchLastLogin(_ context.Context, userID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil
	}
	u.LastLogin = &at
	u.UpdatedAt = at
	m.users[userID] = u
	return nil
}

func (m *MemoryStore) seekerView(s domain.JobSeeker) domain.JobSeekerWithUser {
	return domain.JobSeekerWithUser{JobSeeker: s, User: m.users[s.UserID]}
}

func (m *MemoryStore) employerView(e domain.Employer) domain.EmployerWithUser {
	return domain.EmployerWithUser{Employer: e, User: m.users[e.UserID]}
}

func (m *MemoryStore) jobView(j domain.Job) domain.JobWithEmployer {
	return domain.JobWithEmployer{Job: j, Employer: m.employerView(m.employers[j.EmployerID])}
}

func (m *MemoryStore) GetJobSeeker(_ context.Context, id string) (domain.JobSeekerWithUser, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.seekers[id]
	if !ok {
		return domain.JobSeekerWithUser{}, false, nil
	}
	return m.seekerView(s), true, nil
}

func (m *MemoryStore) GetJobSeekerByUserID(_ context.Context, userID string) (domain.JobSeekerWithUser, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.seekers {
		if s.UserID == userID {
			return m.seekerView(s), true, nil
		}
	}
	return domain.JobSeekerWithUser{}, false, nil
}

func (m *MemoryStore) UpdateJobSeeker(_ context.Context, seeker domain.JobSeeker) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekers[seeker.ID] = seeker
	return nil
}

func (m *MemoryStore) GetEmployer(_ context.Context, id string) (domain.EmployerWithUser, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.employers[id]
	if !ok {
		return domain.EmployerWithUser{}, false, nil
	}
	return m.employerView(e), true, nil
}

func (m *MemoryStore) GetEmployerByUserID(_ context.Context, userID string) (domain.EmployerWithUser, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.employers {
		if e.UserID == userID {
			return m.employerView(e), true, nil
		}
	}
	return domain.EmployerWithUser{}, false, nil
}

func (m *MemoryStore) UpdateEmployer(_ context.Context, employer domain.Employer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employers[employer.ID] = employer
	return nil
}

func (m *MemoryStore) CreateJob(_ context.Context, job domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.jobs[job.ID]; exists {
		return ErrConflict
	}
	m.jobs[job.ID] = job
	return nil
}

func (m *MemoryStore) GetJob(_ context.Context, id string) (domain.JobWithEmployer, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jobs[id]
	if !ok {
		return domain.JobWithEmployer{}, false, nil
	}
	return m.jobView(j), true, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (m *MemoryStore) ListJobs(_ context.Context, filter domain.JobFilter) ([]domain.JobWithEmployer, error) {
	search := strings.TrimSpace(filter.Search)
	location := strings.TrimSpace(filter.Location)
	return m.listJobs(func(j domain.Job) bool {
		if j.Status != domain.JobActive {
			return false
		}
		if search != "" && !containsFold(j.Title, search) && !containsFold(j.Description, search) {
			return false
		}
		if location != "" && !containsFold(j.Location, location) {
			return false
		}
		return filter.EmploymentType == "" || j.EmploymentType == filter.EmploymentType
	}), nil
}

func (m *MemoryStore) ListJobsByEmployer(_ context.Context, employerID string) ([]domain.JobWithEmployer, error) {
	return m.listJobs(func(j domain.Job) bool { return j.EmployerID == employerID }), nil
}

func (m *MemoryStore) listJobs(keep func(domain.Job) bool) []domain.JobWithEmployer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.JobWithEmployer, 0)
	for _, j := range m.jobs {
		if keep(j) {
			res = append(res, m.jobView(j))
		}
	}
	sort.Slice(res, func(a, b int) bool { return newer(res[a].CreatedAt, res[b].CreatedAt, res[a].ID, res[b].ID) })
	return res
}

func (m *MemoryStore) UpdateJob(_ context.Context, job domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
	return nil
}

// DeleteJob removes the job together with its applications, their
// interviews, saved entries and matches. Messages keep their content but lose
// the application link.
func (m *MemoryStore) DeleteJob(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, id)
	removed := make(map[string]bool)
	for appID, a := range m.apps {
		if a.JobID == id {
			removed[appID] = true
			delete(m.apps, appID)
		}
	}
	for ivID, iv := range m.interviews {
		if removed[iv.ApplicationID] {
			delete(m.interviews, ivID)
		}
	}
	for i, msg := range m.messages {
		if msg.ApplicationID != nil && removed[*msg.ApplicationID] {
			m.messages[i].ApplicationID = nil
		}
	}
	for sid, s := range m.saved {
		if s.JobID == id {
			delete(m.saved, sid)
		}
	}
	for mid, match := range m.matches {
		if match.JobID == id {
			delete(m.matches, mid)
		}
	}
	return nil
}

func (m *MemoryStore) CreateApplication(_ context.Context, app domain.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.apps {
		if a.ID == app.ID || (a.JobID == app.JobID && a.JobSeekerID == app.JobSeekerID) {
			return ErrConflict
		}
	}
	m.apps[app.ID] = app
	return nil
}

func (m *MemoryStore) applicationView(a domain.Application) domain.ApplicationWithJobSeeker {
	return domain.ApplicationWithJobSeeker{
		Application: a,
		Job:         m.jobs[a.JobID],
		JobSeeker:   m.seekerView(m.seekers[a.JobSeekerID]),
	}
}

func (m *MemoryStore) GetApplication(_ context.Context, id string) (domain.ApplicationWithJobSeeker, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.apps[id]
	if !ok {
		return domain.ApplicationWithJobSeeker{}, false, nil
	}
	return m.applicationView(a), true, nil
}

func (m *MemoryStore) ListApplicationsByJobSeeker(_ context.Context, jobSeekerID string) ([]domain.ApplicationWithJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.ApplicationWithJob, 0)
	for _, a := range m.apps {
		if a.JobSeekerID == jobSeekerID {
			res = append(res, domain.ApplicationWithJob{Application: a, Job: m.jobView(m.jobs[a.JobID])})
		}
	}
	sort.Slice(res, func(i, j int) bool { return newer(res[i].AppliedAt, res[j].AppliedAt, res[i].ID, res[j].ID) })
	return res, nil
}

func (m *MemoryStore) ListApplicationsByEmployer(_ context.Context, employerID string) ([]domain.ApplicationWithJobSeeker, error) {
	return m.listApplications(func(a domain.Application) bool {
		return m.jobs[a.JobID].EmployerID == employerID
	}), nil
}

func (m *MemoryStore) ListApplicationsByJob(_ context.Context, jobID string) ([]domain.ApplicationWithJobSeeker, error) {
	return m.listApplications(func(a domain.Application) bool { return a.JobID == jobID }), nil
}

func (m *MemoryStore) listApplications(keep func(domain.Application) bool) []domain.ApplicationWithJobSeeker {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.ApplicationWithJobSeeker, 0)
	for _, a := range m.apps {
		if keep(a) {
			res = append(res, m.applicationView(a))
		}
	}
	sort.Slice(res, func(i, j int) bool { return newer(res[i].AppliedAt, res[j].AppliedAt, res[i].ID, res[j].ID) })
	return res
}

func (m *MemoryStore) HasApplicationFromSeeker(_ context.Context, employerID, jobSeekerID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.apps {
		if a.JobSeekerID == jobSeekerID && m.jobs[a.JobID].EmployerID == employerID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) UpdateApplication(_ context.Context, app domain.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apps[app.ID] = app
	return nil
}

func (m *MemoryStore) CreateInterview(_ context.Context, interview domain.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interviews[interview.ID] = interview
	return nil
}

func (m *MemoryStore) GetInterview(_ context.Context, id string) (domain.Interview, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	iv, ok := m.interviews[id]
	return iv, ok, nil
}

func (m *MemoryStore) UpdateInterview(_ context.Context, interview domain.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interviews[interview.ID] = interview
	return nil
}

func (m *MemoryStore) ListInterviewsByJobSeeker(_ context.Context, jobSeekerID string) ([]domain.InterviewWithDetails, error) {
	return m.listInterviews(func(iv domain.Interview) bool { return iv.JobSeekerID == jobSeekerID }), nil
}

func (m *MemoryStore) ListInterviewsByEmployer(_ context.Context, employerID string) ([]domain.InterviewWithDetails, error) {
	return m.listInterviews(func(iv domain.Interview) bool { return iv.EmployerID == employerID }), nil
}

func (m *MemoryStore) listInterviews(keep func(domain.Interview) bool) []domain.InterviewWithDetails {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.InterviewWithDetails, 0)
	for _, iv := range m.interviews {
		if !keep(iv) {
			continue
		}
		app := m.apps[iv.ApplicationID]
		res = append(res, domain.InterviewWithDetails{
			Interview: iv,
			Application: domain.InterviewApplication{
				Application: app,
				Job:         m.jobView(m.jobs[app.JobID]),
				JobSeeker:   m.seekerView(m.seekers[app.JobSeekerID]),
			},
		})
	}
	sort.Slice(res, func(i, j int) bool { return older(res[i].ScheduledAt, res[j].ScheduledAt, res[i].ID, res[j].ID) })
	return res
}

func (m *MemoryStore) CreateMessage(_ context.Context, msg domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *MemoryStore) messageView(msg domain.Message) domain.MessageWithUsers {
	return domain.MessageWithUsers{Message: msg, Sender: m.users[msg.SenderID], Receiver: m.users[msg.ReceiverID]}
}

func (m *MemoryStore) ListConversations(_ context.Context, userID string, limit int) ([]domain.MessageWithUsers, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.MessageWithUsers, 0)
	for i := len(m.messages) - 1; i >= 0; i-- {
		msg := m.messages[i]
		if msg.SenderID == userID || msg.ReceiverID == userID {
			res = append(res, m.messageView(msg))
		}
	}
	sort.Slice(res, func(i, j int) bool { return newer(res[i].CreatedAt, res[j].CreatedAt, res[i].ID, res[j].ID) })
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (m *MemoryStore) ListThread(_ context.Context, userID, otherID string) ([]domain.MessageWithUsers, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.MessageWithUsers, 0)
	for _, msg := range m.messages {
		if (msg.SenderID == userID && msg.ReceiverID == otherID) ||
			(msg.SenderID == otherID && msg.ReceiverID == userID) {
			res = append(res, m.messageView(msg))
		}
	}
	sort.Slice(res, func(i, j int) bool { return older(res[i].CreatedAt, res[j].CreatedAt, res[i].ID, res[j].ID) })
	return res, nil
}

func (m *MemoryStore) MarkMessageRead(_ context.Context, id, receiverID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, msg := range m.messages {
		if msg.ID == id && msg.ReceiverID == receiverID {
			m.messages[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) CreateReview(_ context.Context, review domain.CompanyReview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews[review.ID] = review
	return nil
}

func (m *MemoryStore) ListReviewsByEmployer(_ context.Context, employerID string) ([]domain.CompanyReviewWithDetails, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.CompanyReviewWithDetails, 0)
	for _, r := range m.reviews {
		if r.EmployerID != employerID {
			continue
		}
		item := domain.CompanyReviewWithDetails{CompanyReview: r, Employer: m.employers[r.EmployerID]}
		if !r.IsAnonymous {
			seeker := m.seekerView(m.seekers[r.JobSeekerID])
			item.JobSeeker = &seeker
		}
		res = append(res, item)
	}
	sort.Slice(res, func(i, j int) bool { return newer(res[i].CreatedAt, res[j].CreatedAt, res[i].ID, res[j].ID) })
	return res, nil
}

func (m *MemoryStore) SaveJob(_ context.Context, saved domain.SavedJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.saved {
		if s.JobSeekerID == saved.JobSeekerID && s.JobID == saved.JobID {
			return nil
		}
	}
	m.saved[saved.ID] = saved
	return nil
}

func (m *MemoryStore) UnsaveJob(_ context.Context, jobSeekerID, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.saved {
		if s.JobSeekerID == jobSeekerID && s.JobID == jobID {
			delete(m.saved, id)
		}
	}
	return nil
}

func (m *MemoryStore) ListSavedJobs(_ context.Context, jobSeekerID string) ([]domain.SavedJobWithJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.SavedJobWithJob, 0)
	for _, s := range m.saved {
		if s.JobSeekerID == jobSeekerID {
			res = append(res, domain.SavedJobWithJob{SavedJob: s, Job: m.jobView(m.jobs[s.JobID])})
		}
	}
	sort.Slice(res, func(i, j int) bool { return newer(res[i].CreatedAt, res[j].CreatedAt, res[i].ID, res[j].ID) })
	return res, nil
}

func (m *MemoryStore) ListJobMatches(_ context.Context, jobSeekerID string) ([]domain.JobMatchWithJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.JobMatchWithJob, 0)
	for _, match := range m.matches {
		if match.JobSeekerID == jobSeekerID && !match.IsDismissed {
			res = append(res, domain.JobMatchWithJob{JobMatch: match, Job: m.jobView(m.jobs[match.JobID])})
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].MatchScore != res[j].MatchScore {
			return res[i].MatchScore > res[j].MatchScore
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (m *MemoryStore) ListSkills(_ context.Context) ([]domain.Skill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Skill, 0, len(m.skills))
	for _, s := range m.skills {
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (m *MemoryStore) GetSkill(_ context.Context, id string) (domain.Skill, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.skills[id]
	return s, ok, nil
}

func (m *MemoryStore) CreateSkill(_ context.Context, skill domain.Skill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.skills {
		if s.ID == skill.ID || s.Name == skill.Name {
			return ErrConflict
		}
	}
	m.skills[skill.ID] = skill
	return nil
}

func (m *MemoryStore) AddUserSkill(_ context.Context, us domain.UserSkill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.userSkills {
		if existing.UserID == us.UserID && existing.SkillID == us.SkillID {
			return nil
		}
	}
	m.userSkills[us.ID] = us
	return nil
}

func (m *MemoryStore) ListUserSkills(_ context.Context, userID string) ([]domain.UserSkillWithSkill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.UserSkillWithSkill, 0)
	for _, us := range m.userSkills {
		if us.UserID == userID {
			res = append(res, domain.UserSkillWithSkill{UserSkill: us, Skill: m.skills[us.SkillID]})
		}
	}
	sort.Slice(res, func(i, j int) bool { return older(res[i].CreatedAt, res[j].CreatedAt, res[i].ID, res[j].ID) })
	return res, nil
}

var _ Store = (*MemoryStore)(nil)
