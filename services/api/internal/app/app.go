package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"jobconnect/pkg/domain"
	"jobconnect/pkg/storage"
	"jobconnect/pkg/store"
)

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL    string
	RedisAddr      string
	RedisPassword  string
	SessionBackend string
	SessionTTL     time.Duration
	JWTSecret      string

	ObjectStore    string
	DataDir        string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	Store    store.Store
	Sessions store.SessionStore
	Objects  storage.ObjectStore
}

// App holds the business rules of the job board on top of the injected
// stores.
type App struct {
	store    store.Store
	sessions store.SessionStore
	objects  storage.ObjectStore
	now      func() time.Time
}

// Actor is the authenticated caller.
type Actor struct {
	UserID string
	Role   domain.UserRole
}

// New wires the application. Injected dependencies win; otherwise they are
// built from configuration.
func New(cfg Config) (*App, error) {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 7 * 24 * time.Hour
	}

	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			slog.Warn("no database URL configured, using in-memory store")
			dataStore = store.NewMemoryStore()
		} else {
			gs, err := store.NewGormStore(cfg.DatabaseURL)
			if err != nil {
				return nil, fmt.Errorf("init postgres store: %w", err)
			}
			dataStore = gs
		}
	}

	sessions := cfg.Sessions
	if sessions == nil {
		var err error
		sessions, err = newSessionStore(cfg)
		if err != nil {
			return nil, err
		}
	}

	objects := cfg.Objects
	if objects == nil {
		var err error
		switch cfg.ObjectStore {
		case "minio":
			objects, err = storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		default:
			dir := cfg.DataDir
			if dir == "" {
				dir = "data"
			}
			objects, err = storage.NewFileStore(dir)
		}
		if err != nil {
			return nil, fmt.Errorf("init object store: %w", err)
		}
	}

	return &App{
		store:    dataStore,
		sessions: sessions,
		objects:  objects,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

func newSessionStore(cfg Config) (store.SessionStore, error) {
	switch cfg.SessionBackend {
	case "memory":
		return store.NewMemorySessionStore(cfg.SessionTTL), nil
	case "jwt":
		var revoker store.TokenRevoker = store.NewMemoryTokenRevoker()
		if cfg.RedisAddr != "" {
			revoker = store.NewRedisTokenRevoker(cfg.RedisAddr, cfg.RedisPassword)
		}
		s, err := store.NewJWTSessionStore(cfg.JWTSecret, cfg.SessionTTL, revoker, store.JWTOptions{})
		if err != nil {
			return nil, fmt.Errorf("init jwt sessions: %w", err)
		}
		return s, nil
	case "", "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("session store required (redisAddr or sessionBackend=memory)")
		}
		return store.NewRedisSessionStore(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}

// jobSeekerFor loads the actor's job seeker profile.
func (a *App) jobSeekerFor(ctx context.Context, actor Actor) (domain.JobSeekerWithUser, error) {
	if actor.Role != domain.RoleJobSeeker {
		return domain.JobSeekerWithUser{}, &ProfileNotFoundError{Role: domain.RoleJobSeeker}
	}
	seeker, ok, err := a.store.GetJobSeekerByUserID(ctx, actor.UserID)
	if err != nil {
		return domain.JobSeekerWithUser{}, fmt.Errorf("load job seeker: %w", err)
	}
	if !ok {
		return domain.JobSeekerWithUser{}, &ProfileNotFoundError{Role: domain.RoleJobSeeker}
	}
	return seeker, nil
}

// employerFor loads the actor's employer profile.
func (a *App) employerFor(ctx context.Context, actor Actor) (domain.EmployerWithUser, error) {
	if actor.Role != domain.RoleEmployer {
		return domain.EmployerWithUser{}, &ProfileNotFoundError{Role: domain.RoleEmployer}
	}
	employer, ok, err := a.store.GetEmployerByUserID(ctx, actor.UserID)
	if err != nil {
		return domain.EmployerWithUser{}, fmt.Errorf("load employer: %w", err)
	}
	if !ok {
		return domain.EmployerWithUser{}, &ProfileNotFoundError{Role: domain.RoleEmployer}
	}
	return employer, nil
}

// ownedJob returns the job when the actor's employer profile owns it.
func (a *App) ownedJob(ctx context.Context, actor Actor, jobID string) (domain.JobWithEmployer, error) {
	employer, err := a.employerFor(ctx, actor)
	if err != nil {
		return domain.JobWithEmployer{}, err
	}
	job, ok, err := a.store.GetJob(ctx, jobID)
	if err != nil {
		return domain.JobWithEmployer{}, fmt.Errorf("load job: %w", err)
	}
	if !ok || job.EmployerID != employer.ID {
		return domain.JobWithEmployer{}, notFound("Job")
	}
	return job, nil
}

// Close releases the database connection when the store holds one.
func (a *App) Close() error {
	if c, ok := a.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
