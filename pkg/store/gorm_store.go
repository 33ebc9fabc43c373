package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"jobconnect/pkg/domain"
)

const migrateLockID int64 = 50219741

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := withMigrationLock(db, func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(allModels()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// withMigrationLock serialises schema migration across replicas starting at
// the same time.
func withMigrationLock(db *gorm.DB, fn func(*gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("open sql conn: %w", err)
	}
	defer conn.Close()
	if err := execAdvisory(ctx, conn, "SELECT pg_advisory_lock($1)", migrateLockID); err != nil {
		return fmt.Errorf("acquire migrate lock: %w", err)
	}
	defer func() {
		_ = execAdvisory(ctx, conn, "SELECT pg_advisory_unlock($1)", migrateLockID)
	}()
	return fn(db)
}

func execAdvisory(ctx context.Context, conn *sql.Conn, query string, lockID int64) error {
	_, err := conn.ExecContext(ctx, query, lockID)
	return err
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

// first loads a single row into dst, mapping not-found to a false flag.
func first(q *gorm.DB, dst any) (bool, error) {
	err := q.First(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func escapeLike(in string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(in)
}

// CreateJobSeekerAccount inserts the user and its profile in one transaction.
func (s *GormStore) CreateJobSeekerAccount(ctx context.Context, user domain.User, seeker domain.JobSeeker) error {
	um := userToModel(user)
	sm := jobSeekerToModel(seeker)
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&um).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&sm).Error
	}))
}

// CreateEmployerAccount inserts the user and its profile in one transaction.
func (s *GormStore) CreateEmployerAccount(ctx context.Context, user domain.User, employer domain.Employer) error {
	um := userToModel(user)
	em := employerToModel(employer)
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&um).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&em).Error
	}))
}

func (s *GormStore) GetUserByID(ctx context.Context, id string) (domain.User, bool, error) {
	return s.findUser(ctx, "id = ?", id)
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	return s.findUser(ctx, "email = ?", email)
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (domain.User, bool, error) {
	return s.findUser(ctx, "username = ?", username)
}

func (s *GormStore) findUser(ctx context.Context, query string, arg any) (domain.User, bool, error) {
	var m UserModel
	ok, err := first(s.db.WithContext(ctx).Where(query, arg), &m)
	if err != nil || !ok {
		return domain.User{}, false, err
	}
	return userFromModel(m), true, nil
}

func (s *GormStore) UpdateUser(ctx context.Context, user domain.User) error {
	m := userToModel(user)
	return translate(s.db.WithContext(ctx).Save(&m).Error)
}

func (s *GormStore) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	return s.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", userID).Update("last_login", at).Error
}

func (s *GormStore) GetJobSeeker(ctx context.Context, id string) (domain.JobSeekerWithUser, bool, error) {
	return s.findJobSeeker(ctx, "id = ?", id)
}

func (s *GormStore) GetJobSeekerByUserID(ctx context.Context, userID string) (domain.JobSeekerWithUser, bool, error) {
	return s.findJobSeeker(ctx, "user_id = ?", userID)
}

func (s *GormStore) findJobSeeker(ctx context.Context, query string, arg any) (domain.JobSeekerWithUser, bool, error) {
	var m JobSeekerModel
	ok, err := first(s.db.WithContext(ctx).Preload("User").Where(query, arg), &m)
	if err != nil || !ok {
		return domain.JobSeekerWithUser{}, false, err
	}
	return jobSeekerFromModel(m), true, nil
}

func (s *GormStore) UpdateJobSeeker(ctx context.Context, seeker domain.JobSeeker) error {
	m := jobSeekerToModel(seeker)
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(&m).Error
}

func (s *GormStore) GetEmployer(ctx context.Context, id string) (domain.EmployerWithUser, bool, error) {
	return s.findEmployer(ctx, "id = ?", id)
}

func (s *GormStore) GetEmployerByUserID(ctx context.Context, userID string) (domain.EmployerWithUser, bool, error) {
	return s.findEmployer(ctx, "user_id = ?", userID)
}

func (s *GormStore) findEmployer(ctx context.Context, query string, arg any) (domain.EmployerWithUser, bool, error) {
	var m EmployerModel
	ok, err := first(s.db.WithContext(ctx).Preload("User").Where(query, arg), &m)
	if err != nil || !ok {
		return domain.EmployerWithUser{}, false, err
	}
	return employerWithUserFromModel(m), true, nil
}

func (s *GormStore) UpdateEmployer(ctx context.Context, employer domain.Employer) error {
	m := employerToModel(employer)
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(&m).Error
}

func (s *GormStore) CreateJob(ctx context.Context, job domain.Job) error {
	m := jobToModel(job)
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error)
}

func (s *GormStore) GetJob(ctx context.Context, id string) (domain.JobWithEmployer, bool, error) {
	var m JobModel
	ok, err := first(s.db.WithContext(ctx).Preload("Employer.User").Where("id = ?", id), &m)
	if err != nil || !ok {
		return domain.JobWithEmployer{}, false, err
	}
	return jobWithEmployerFromModel(m), true, nil
}

// ListJobs returns active jobs matching filter, newest first.
func (s *GormStore) ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.JobWithEmployer, error) {
	q := s.db.WithContext(ctx).Preload("Employer.User").Where("status = ?", string(domain.JobActive))
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + escapeLike(search) + "%"
		q = q.Where("(title ILIKE ? OR description ILIKE ?)", like, like)
	}
	if location := strings.TrimSpace(filter.Location); location != "" {
		q = q.Where("location ILIKE ?", "%"+escapeLike(location)+"%")
	}
	if filter.EmploymentType != "" {
		q = q.Where("employment_type = ?", string(filter.EmploymentType))
	}
	var models []JobModel
	if err := q.Order("created_at DESC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return jobsFromModels(models), nil
}

func (s *GormStore) ListJobsByEmployer(ctx context.Context, employerID string) ([]domain.JobWithEmployer, error) {
	var models []JobModel
	err := s.db.WithContext(ctx).Preload("Employer.User").
		Where("employer_id = ?", employerID).
		Order("created_at DESC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return jobsFromModels(models), nil
}

func jobsFromModels(models []JobModel) []domain.JobWithEmployer {
	out := make([]domain.JobWithEmployer, 0, len(models))
	for _, m := range models {
		out = append(out, jobWithEmployerFromModel(m))
	}
	return out
}

func (s *GormStore) UpdateJob(ctx context.Context, job domain.Job) error {
	m := jobToModel(job)
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(&m).Error
}

// DeleteJob removes the job; applications, interviews, saved jobs and matches
// go with it through ON DELETE CASCADE.
func (s *GormStore) DeleteJob(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&JobModel{}).Error
}

func (s *GormStore) CreateApplication(ctx context.Context, app domain.Application) error {
	m := applicationToModel(app)
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error)
}

func (s *GormStore) GetApplication(ctx context.Context, id string) (domain.ApplicationWithJobSeeker, bool, error) {
	var m ApplicationModel
	ok, err := first(s.db.WithContext(ctx).Preload("Job").Preload("JobSeeker.User").Where("id = ?", id), &m)
	if err != nil || !ok {
		return domain.ApplicationWithJobSeeker{}, false, err
	}
	return applicationWithSeekerFromModel(m), true, nil
}

func (s *GormStore) ListApplicationsByJobSeeker(ctx context.Context, jobSeekerID string) ([]domain.ApplicationWithJob, error) {
	var models []ApplicationModel
	err := s.db.WithContext(ctx).Preload("Job.Employer.User").
		Where("job_seeker_id = ?", jobSeekerID).
		Order("applied_at DESC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.ApplicationWithJob, 0, len(models))
	for _, m := range models {
		out = append(out, domain.ApplicationWithJob{
			Application: applicationFromModel(m),
			Job:         jobWithEmployerFromModel(m.Job),
		})
	}
	return out, nil
}

func (s *GormStore) ListApplicationsByEmployer(ctx context.Context, employerID string) ([]domain.ApplicationWithJobSeeker, error) {
	q := s.db.WithContext(ctx).
		Select("applications.*").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.employer_id = ?", employerID)
	return s.listApplicationsWithSeeker(q)
}

func (s *GormStore) ListApplicationsByJob(ctx context.Context, jobID string) ([]domain.ApplicationWithJobSeeker, error) {
	return s.listApplicationsWithSeeker(s.db.WithContext(ctx).Where("applications.job_id = ?", jobID))
}

func (s *GormStore) listApplicationsWithSeeker(q *gorm.DB) ([]domain.ApplicationWithJobSeeker, error) {
	var models []ApplicationModel
	err := q.Preload("Job").Preload("JobSeeker.User").
		Order("applications.applied_at DESC, applications.id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.ApplicationWithJobSeeker, 0, len(models))
	for _, m := range models {
		out = append(out, applicationWithSeekerFromModel(m))
	}
	return out, nil
}

func applicationWithSeekerFromModel(m ApplicationModel) domain.ApplicationWithJobSeeker {
	return domain.ApplicationWithJobSeeker{
		Application: applicationFromModel(m),
		Job:         jobFromModel(m.Job),
		JobSeeker:   jobSeekerFromModel(m.JobSeeker),
	}
}

func (s *GormStore) HasApplicationFromSeeker(ctx context.Context, employerID, jobSeekerID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&ApplicationModel{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.employer_id = ? AND applications.job_seeker_id = ?", employerID, jobSeekerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) UpdateApplication(ctx context.Context, app domain.Application) error {
	m := applicationToModel(app)
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(&m).Error
}

func (s *GormStore) CreateInterview(ctx context.Context, interview domain.Interview) error {
	m := interviewToModel(interview)
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error
}

func (s *GormStore) GetInterview(ctx context.Context, id string) (domain.Interview, bool, error) {
	var m InterviewModel
	ok, err := first(s.db.WithContext(ctx).Where("id = ?", id), &m)
	if err != nil || !ok {
		return domain.Interview{}, false, err
	}
	return interviewFromModel(m), true, nil
}

func (s *GormStore) UpdateInterview(ctx context.Context, interview domain.Interview) error {
	m := interviewToModel(interview)
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(&m).Error
}

func (s *GormStore) ListInterviewsByJobSeeker(ctx context.Context, jobSeekerID string) ([]domain.InterviewWithDetails, error) {
	return s.listInterviews(ctx, "job_seeker_id = ?", jobSeekerID)
}

func (s *GormStore) ListInterviewsByEmployer(ctx context.Context, employerID string) ([]domain.InterviewWithDetails, error) {
	return s.listInterviews(ctx, "employer_id = ?", employerID)
}

func (s *GormStore) listInterviews(ctx context.Context, query string, arg any) ([]domain.InterviewWithDetails, error) {
	var models []InterviewModel
	err := s.db.WithContext(ctx).
		Preload("Application.Job.Employer.User").
		Preload("Application.JobSeeker.User").
		Where(query, arg).
		Order("scheduled_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.InterviewWithDetails, 0, len(models))
	for _, m := range models {
		out = append(out, domain.InterviewWithDetails{
			Interview: interviewFromModel(m),
			Application: domain.InterviewApplication{
				Application: applicationFromModel(m.Application),
				Job:         jobWithEmployerFromModel(m.Application.Job),
				JobSeeker:   jobSeekerFromModel(m.Application.JobSeeker),
			},
		})
	}
	return out, nil
}

func (s *GormStore) CreateMessage(ctx context.Context, msg domain.Message) error {
	m := messageToModel(msg)
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error
}

// ListConversations returns messages the user sent or received, newest first.
func (s *GormStore) ListConversations(ctx context.Context, userID string, limit int) ([]domain.MessageWithUsers, error) {
	q := s.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return s.listMessages(q)
}

// ListThread returns the messages exchanged between two users, oldest first.
func (s *GormStore) ListThread(ctx context.Context, userID, otherID string) ([]domain.MessageWithUsers, error) {
	q := s.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", userID, otherID, otherID, userID).
		Order("created_at ASC, id ASC")
	return s.listMessages(q)
}

func (s *GormStore) listMessages(q *gorm.DB) ([]domain.MessageWithUsers, error) {
	var models []MessageModel
	if err := q.Preload("Sender").Preload("Receiver").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.MessageWithUsers, 0, len(models))
	for _, m := range models {
		out = append(out, messageFromModel(m))
	}
	return out, nil
}

func (s *GormStore) MarkMessageRead(ctx context.Context, id, receiverID string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&MessageModel{}).
		Where("id = ? AND receiver_id = ?", id, receiverID).
		Update("is_read", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) CreateReview(ctx context.Context, review domain.CompanyReview) error {
	m := reviewToModel(review)
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error
}

func (s *GormStore) ListReviewsByEmployer(ctx context.Context, employerID string) ([]domain.CompanyReviewWithDetails, error) {
	var models []CompanyReviewModel
	err := s.db.WithContext(ctx).
		Preload("Employer").
		Preload("JobSeeker.User").
		Where("employer_id = ?", employerID).
		Order("created_at DESC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.CompanyReviewWithDetails, 0, len(models))
	for _, m := range models {
		item := domain.CompanyReviewWithDetails{
			CompanyReview: reviewFromModel(m),
			Employer:      employerFromModel(m.Employer),
		}
		if !m.IsAnonymous {
			seeker := jobSeekerFromModel(m.JobSeeker)
			item.JobSeeker = &seeker
		}
		out = append(out, item)
	}
	return out, nil
}

// SaveJob bookmarks a job; saving the same pair twice is a no-op.
func (s *GormStore) SaveJob(ctx context.Context, saved domain.SavedJob) error {
	m := SavedJobModel{
		ID:          saved.ID,
		JobSeekerID: saved.JobSeekerID,
		JobID:       saved.JobID,
		Notes:       saved.Notes,
		CreatedAt:   saved.CreatedAt,
	}
	return s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "job_seeker_id"}, {Name: "job_id"}},
			DoNothing: true,
		}).
		Create(&m).Error
}

func (s *GormStore) UnsaveJob(ctx context.Context, jobSeekerID, jobID string) error {
	return s.db.WithContext(ctx).
		Where("job_seeker_id = ? AND job_id = ?", jobSeekerID, jobID).
		Delete(&SavedJobModel{}).Error
}

func (s *GormStore) ListSavedJobs(ctx context.Context, jobSeekerID string) ([]domain.SavedJobWithJob, error) {
	var models []SavedJobModel
	err := s.db.WithContext(ctx).
		Preload("Job.Employer.User").
		Where("job_seeker_id = ?", jobSeekerID).
		Order("created_at DESC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.SavedJobWithJob, 0, len(models))
	for _, m := range models {
		out = append(out, domain.SavedJobWithJob{
			SavedJob: domain.SavedJob{
				ID:          m.ID,
				JobSeekerID: m.JobSeekerID,
				JobID:       m.JobID,
				Notes:       m.Notes,
				CreatedAt:   m.CreatedAt,
			},
			Job: jobWithEmployerFromModel(m.Job),
		})
	}
	return out, nil
}

func (s *GormStore) ListJobMatches(ctx context.Context, jobSeekerID string) ([]domain.JobMatchWithJob, error) {
	var models []JobMatchModel
	err := s.db.WithContext(ctx).
		Preload("Job.Employer.User").
		Where("job_seeker_id = ? AND is_dismissed = ?", jobSeekerID, false).
		Order("match_score DESC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.JobMatchWithJob, 0, len(models))
	for _, m := range models {
		out = append(out, domain.JobMatchWithJob{
			JobMatch: domain.JobMatch{
				ID:           m.ID,
				JobSeekerID:  m.JobSeekerID,
				JobID:        m.JobID,
				MatchScore:   m.MatchScore,
				MatchReasons: stringList(m.MatchReasons),
				IsViewed:     m.IsViewed,
				IsDismissed:  m.IsDismissed,
				CreatedAt:    m.CreatedAt,
			},
			Job: jobWithEmployerFromModel(m.Job),
		})
	}
	return out, nil
}

func (s *GormStore) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	var models []SkillModel
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Skill, 0, len(models))
	for _, m := range models {
		out = append(out, skillFromModel(m))
	}
	return out, nil
}

func (s *GormStore) GetSkill(ctx context.Context, id string) (domain.Skill, bool, error) {
	var m SkillModel
	ok, err := first(s.db.WithContext(ctx).Where("id = ?", id), &m)
	if err != nil || !ok {
		return domain.Skill{}, false, err
	}
	return skillFromModel(m), true, nil
}

func (s *GormStore) CreateSkill(ctx context.Context, skill domain.Skill) error {
	m := SkillModel{
		ID:          skill.ID,
		Name:        skill.Name,
		Category:    skill.Category,
		Description: skill.Description,
		IsVerified:  skill.IsVerified,
		CreatedAt:   skill.CreatedAt,
	}
	return translate(s.db.WithContext(ctx).Create(&m).Error)
}

// AddUserSkill links a skill to a user; an existing link is left untouched.
func (s *GormStore) AddUserSkill(ctx context.Context, us domain.UserSkill) error {
	m := UserSkillModel{
		ID:               us.ID,
		UserID:           us.UserID,
		SkillID:          us.SkillID,
		ProficiencyLevel: us.ProficiencyLevel,
		YearsExperience:  us.YearsExperience,
		IsEndorsed:       us.IsEndorsed,
		CreatedAt:        us.CreatedAt,
	}
	return s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "skill_id"}},
			DoNothing: true,
		}).
		Create(&m).Error
}

func (s *GormStore) ListUserSkills(ctx context.Context, userID string) ([]domain.UserSkillWithSkill, error) {
	var models []UserSkillModel
	err := s.db.WithContext(ctx).
		Preload("Skill").
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.UserSkillWithSkill, 0, len(models))
	for _, m := range models {
		out = append(out, domain.UserSkillWithSkill{
			UserSkill: domain.UserSkill{
				ID:               m.ID,
				UserID:           m.UserID,
				SkillID:          m.SkillID,
				ProficiencyLevel: m.ProficiencyLevel,
				YearsExperience:  m.YearsExperience,
				IsEndorsed:       m.IsEndorsed,
				CreatedAt:        m.CreatedAt,
			},
			Skill: skillFromModel(m.Skill),
		})
	}
	return out, nil
}

var _ Store = (*GormStore)(nil)
