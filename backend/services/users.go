package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"linguaplatform/backend/models"
	"linguaplatform/backend/store"
	"linguaplatform/backend/utils"
)

const minPasswordLen = 6

type Users struct {
	repo     *store.Repository
	activity *activityRecorder
	locks    *profileLocks
	now      func() time.Time
	log      *utils.Logger
	mu       sync.Mutex
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *Users) Register(ctx context.Context, name, email, password string) (models.User, error) {
	email = normalizeEmail(email)
	fields := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "required"
	}
	if !strings.Contains(email, "@") {
		fields["email"] = "invalid email"
	}
	if len(password) < minPasswordLen {
		fields["password"] = fmt.Sprintf("must be at least %d characters", minPasswordLen)
	}
	if len(fields) > 0 {
		return models.User{}, &ValidationError{Fields: fields}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	users, err := u.repo.Users(ctx)
	if err != nil {
		return models.User{}, err
	}
	if _, exists := users[email]; exists {
		return models.User{}, ErrUserExists
	}
	user := models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleStudent,
		CreatedAt:    u.now(),
	}
	users[email] = user
	if err := u.repo.SaveUsers(ctx, users); err != nil {
		return models.User{}, err
	}
	u.log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login checks credentials, appends to loginHistory and records a login
// activity for the streak.
func (u *Users) Login(ctx context.Context, email, password string) (models.User, error) {
	email = normalizeEmail(email)
	user, err := u.Get(ctx, email)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	u.mu.Lock()
	history, err := u.repo.LoginHistory(ctx)
	if err == nil {
		history = append(history, models.LoginHistory{Email: email, LoginTime: u.now()})
		err = u.repo.SaveLoginHistory(ctx, history)
	}
	u.mu.Unlock()
	if err != nil {
		u.log.Warn("record login history", "error", err)
	}

	unlock := u.locks.lock(user.ID)
	u.activity.record(ctx, user.ID, user.Email, models.ActionLogin)
	unlock()
	return user, nil
}

func (u *Users) Get(ctx context.Context, email string) (models.User, error) {
	users, err := u.repo.Users(ctx)
	if err != nil {
		return models.User{}, err
	}
	user, ok := users[normalizeEmail(email)]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile renames the user. Email and role are not editable here.
func (u *Users) UpdateProfile(ctx context.Context, email, name string) (models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.User{}, invalid("name", "required")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	users, err := u.repo.Users(ctx)
	if err != nil {
		return models.User{}, err
	}
	user, ok := users[normalizeEmail(email)]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	user.Name = name
	users[user.Email] = user
	if err := u.repo.SaveUsers(ctx, users); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// List returns every user, oldest first.
func (u *Users) List(ctx context.Context) ([]models.User, error) {
	users, err := u.repo.Users(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(users))
	for _, user := range users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Email < out[j].Email
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// SetRole changes a user's role. Admins manage students and teachers; only a
// superadmin may grant or revoke admin and superadmin.
func (u *Users) SetRole(ctx context.Context, actor Learner, email string, role models.Role) (models.User, error) {
	if !role.Valid() {
		return models.User{}, invalid("role", "unknown role "+string(role))
	}
	if !actor.Role.AtLeast(models.RoleAdmin) {
		return models.User{}, ErrForbiddenRole
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	users, err := u.repo.Users(ctx)
	if err != nil {
		return models.User{}, err
	}
	email = normalizeEmail(email)
	user, ok := users[email]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	if (role.AtLeast(models.RoleAdmin) || user.Role.AtLeast(models.RoleAdmin)) && actor.Role != models.RoleSuperAdmin {
		return models.User{}, ErrForbiddenRole
	}
	user.Role = role
	users[email] = user
	if err := u.repo.SaveUsers(ctx, users); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// EnsureSuperAdmin creates the configured superadmin, or promotes an existing
// account with that email.
func (u *Users) EnsureSuperAdmin(ctx context.Context, email, password string) error {
	user, err := u.Get(ctx, email)
	switch {
	case err == nil:
		if user.Role == models.RoleSuperAdmin {
			return nil
		}
	case errors.Is(err, ErrUserNotFound):
		user, err = u.Register(ctx, "Administrator", email, password)
		if err != nil {
			return fmt.Errorf("create superadmin: %w", err)
		}
	default:
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	users, err := u.repo.Users(ctx)
	if err != nil {
		return err
	}
	user.Role = models.RoleSuperAdmin
	users[user.Email] = user
	return u.repo.SaveUsers(ctx, users)
}
