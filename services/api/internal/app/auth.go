package app

import (
	"context"
	"errors"
	"fmt"

	"jobconnect/pkg/auth"
	"jobconnect/pkg/domain"
	"jobconnect/pkg/store"
	"jobconnect/pkg/validation"
)

// CurrentUser is the caller's user record plus the profile for its role.
type CurrentUser struct {
	User    domain.User `json:"user"`
	Profile any         `json:"profile"`
}

// RegisterJobSeeker creates a job seeker account and signs it in.
func (a *App) RegisterJobSeeker(ctx context.Context, in validation.JobSeekerRegistrationInput) (domain.User, string, error) {
	in, err := validation.JobSeekerRegistration(in)
	if err != nil {
		return domain.User{}, "", asValidation(err)
	}
	user, err := a.newUser(ctx, in.Account, domain.RoleJobSeeker)
	if err != nil {
		return domain.User{}, "", err
	}
	seeker := domain.JobSeeker{
		ID:                store.NewID(),
		UserID:            user.ID,
		ProfessionalTitle: in.ProfessionalTitle,
		YearsExperience:   in.YearsExperience,
		Skills:            in.Skills,
		Location:          in.Location,
		PortfolioURL:      in.PortfolioURL,
		LinkedinURL:       in.LinkedinURL,
		GithubURL:         in.GithubURL,
		ExpectedSalaryMin: in.ExpectedSalaryMin,
		ExpectedSalaryMax: in.ExpectedSalaryMax,
		SalaryType:        in.SalaryType,
		WorkPreference:    in.WorkPreference,
		Availability:      in.Availability,
		NoticePeriod:      in.NoticePeriod,
		Languages:         []string{},
		JobAlerts:         true,
		ProfileVisibility: true,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.CreatedAt,
	}
	if err := a.store.CreateJobSeekerAccount(ctx, user, seeker); err != nil {
		return domain.User{}, "", accountConflict(err)
	}
	return a.startSession(ctx, user)
}

// RegisterEmployer creates an employer account and signs it in.
func (a *App) RegisterEmployer(ctx context.Context, in validation.EmployerRegistrationInput) (domain.User, string, error) {
	in, err := validation.EmployerRegistration(in)
	if err != nil {
		return domain.User{}, "", asValidation(err)
	}
	user, err := a.newUser(ctx, in.Account, domain.RoleEmployer)
	if err != nil {
		return domain.User{}, "", err
	}
	employer := domain.Employer{
		ID:                 store.NewID(),
		UserID:             user.ID,
		JobTitle:           in.JobTitle,
		CompanyName:        in.CompanyName,
		CompanySize:        in.CompanySize,
		Industry:           in.Industry,
		CompanyLocation:    in.CompanyLocation,
		CompanyDescription: in.CompanyDescription,
		Website:            in.Website,
		RemotePolicy:       in.RemotePolicy,
		Benefits:           []string{},
		CompanyValues:      []string{},
		IsHiring:           true,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.CreatedAt,
	}
	if err := a.store.CreateEmployerAccount(ctx, user, employer); err != nil {
		return domain.User{}, "", accountConflict(err)
	}
	return a.startSession(ctx, user)
}

// newUser checks email then username uniqueness and builds the user row.
func (a *App) newUser(ctx context.Context, acct validation.Account, role domain.UserRole) (domain.User, error) {
	if _, exists, err := a.store.GetUserByEmail(ctx, acct.Email); err != nil {
		return domain.User{}, fmt.Errorf("lookup email: %w", err)
	} else if exists {
		return domain.User{}, conflict("User already exists")
	}
	if _, exists, err := a.store.GetUserByUsername(ctx, acct.Username); err != nil {
		return domain.User{}, fmt.Errorf("lookup username: %w", err)
	} else if exists {
		return domain.User{}, conflict("Username already taken")
	}
	hash, err := auth.HashPassword(acct.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	now := a.now()
	return domain.User{
		ID:           store.NewID(),
		Username:     acct.Username,
		Email:        acct.Email,
		PasswordHash: hash,
		Role:         role,
		FirstName:    acct.FirstName,
		LastName:     acct.LastName,
		Phone:        acct.Phone,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// accountConflict maps a unique violation that slipped past the pre-checks
// (a concurrent sign-up) onto the same conflict the pre-check reports.
func accountConflict(err error) error {
	if errors.Is(err, store.ErrConflict) {
		return conflict("User already exists")
	}
	return fmt.Errorf("create account: %w", err)
}

func (a *App) startSession(ctx context.Context, user domain.User) (domain.User, string, error) {
	token, err := a.sessions.NewSession(ctx, user.ID, user.Role)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("create session: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and issues a session. Unknown emails, wrong
// passwords and deactivated accounts all yield ErrInvalidCredentials.
func (a *App) Login(ctx context.Context, in validation.LoginInput) (domain.User, string, error) {
	in, err := validation.Login(in)
	if err != nil {
		return domain.User{}, "", asValidation(err)
	}
	user, ok, err := a.store.GetUserByEmail(ctx, in.Email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("lookup user: %w", err)
	}
	if !ok || !auth.CheckPassword(in.Password, user.PasswordHash) || !user.IsActive {
		return domain.User{}, "", ErrInvalidCredentials
	}
	now := a.now()
	if err := a.store.TouchLastLogin(ctx, user.ID, now); err != nil {
		return domain.User{}, "", fmt.Errorf("record login: %w", err)
	}
	user.LastLogin = &now
	return a.startSession(ctx, user)
}

// Logout revokes the session token. Unknown tokens are ignored.
func (a *App) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := a.sessions.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Authenticate resolves a session token into an actor. Sessions whose user
// was removed or deactivated are treated as absent.
func (a *App) Authenticate(ctx context.Context, token string) (Actor, bool, error) {
	if token == "" {
		return Actor{}, false, nil
	}
	sess, ok, err := a.sessions.GetSession(ctx, token)
	if err != nil {
		return Actor{}, false, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return Actor{}, false, nil
	}
	user, ok, err := a.store.GetUserByID(ctx, sess.UserID)
	if err != nil {
		return Actor{}, false, fmt.Errorf("load user: %w", err)
	}
	if !ok || !user.IsActive {
		return Actor{}, false, nil
	}
	return Actor{UserID: user.ID, Role: user.Role}, true, nil
}

// CurrentUser returns the caller with its role profile.
func (a *App) CurrentUser(ctx context.Context, actor Actor) (CurrentUser, error) {
	user, ok, err := a.store.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return CurrentUser{}, fmt.Errorf("load user: %w", err)
	}
	if !ok {
		return CurrentUser{}, notFound("User")
	}
	out := CurrentUser{User: user}
	switch user.Role {
	case domain.RoleJobSeeker:
		seeker, ok, err := a.store.GetJobSeekerByUserID(ctx, user.ID)
		if err != nil {
			return CurrentUser{}, fmt.Errorf("load job seeker: %w", err)
		}
		if ok {
			out.Profile = seeker.JobSeeker
		}
	case domain.RoleEmployer:
		employer, ok, err := a.store.GetEmployerByUserID(ctx, user.ID)
		if err != nil {
			return CurrentUser{}, fmt.Errorf("load employer: %w", err)
		}
		if ok {
			out.Profile = employer.Employer
		}
	}
	return out, nil
}

// UpdateCurrentUser edits the caller's name, contact and bio fields.
func (a *App) UpdateCurrentUser(ctx context.Context, actor Actor, in validation.UserUpdateInput) (domain.User, error) {
	in, err := validation.UserUpdate(in)
	if err != nil {
		return domain.User{}, asValidation(err)
	}
	user, ok, err := a.store.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	if !ok {
		return domain.User{}, notFound("User")
	}
	setString(&user.FirstName, in.FirstName)
	setString(&user.LastName, in.LastName)
	setString(&user.Phone, in.Phone)
	setString(&user.Bio, in.Bio)
	setString(&user.ProfileImage, in.ProfileImage)
	user.UpdatedAt = a.now()
	if err := a.store.UpdateUser(ctx, user); err != nil {
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst **int, v *int) {
	if v != nil {
		n := *v
		*dst = &n
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
