package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kinomedia/kino/internal/settings"
	"github.com/kinomedia/kino/internal/user/domain"
	"github.com/kinomedia/kino/pkg/errors"
	"github.com/kinomedia/kino/pkg/interfaces"
)

// AuthService manages the locally registered accounts and the current
// session, both persisted as opaque values in the settings store.
type AuthService struct {
	store  *settings.Store
	logger interfaces.Logger
}

// NewAuthService creates an auth service over the settings store.
func NewAuthService(store *settings.Store, logger interfaces.Logger) *AuthService {
	return &AuthService{store: store, logger: logger}
}

// Register creates an account and signs it in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (domain.SafeUser, error) {
	if strings.TrimSpace(name) == "" {
		return domain.SafeUser{}, errors.Validation("name is required")
	}
	if !domain.IsValidEmail(email) {
		return domain.SafeUser{}, errors.Validation("invalid email address")
	}
	if !domain.IsValidPassword(password) {
		return domain.SafeUser{}, errors.Validation("password must be at least 6 characters")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	users, err := s.listUsers(ctx)
	if err != nil {
		return domain.SafeUser{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return domain.SafeUser{}, errors.Validation("email is already in use")
		}
	}

	user := domain.NewUser(strings.TrimSpace(name), email)
	if err := user.SetPassword(password); err != nil {
		return domain.SafeUser{}, errors.Wrap(errors.ErrorTypeInternal, "hashing password", err)
	}

	users = append(users, *user)
	if err := s.saveUsers(ctx, users); err != nil {
		return domain.SafeUser{}, err
	}
	if err := s.setCurrentUser(ctx, user); err != nil {
		return domain.SafeUser{}, err
	}

	s.logger.Info("User registered", interfaces.String("email", user.Email))

	return user.Safe(), nil
}

// Login signs in an existing account.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.SafeUser, error) {
	if email == "" || password == "" {
		return domain.SafeUser{}, errors.Validation("email and password are required")
	}

	users, err := s.listUsers(ctx)
	if err != nil {
		return domain.SafeUser{}, err
	}

	for i := range users {
		if strings.EqualFold(users[i].Email, email) && users[i].CheckPassword(password) {
			if err := s.setCurrentUser(ctx, &users[i]); err != nil {
				return domain.SafeUser{}, err
			}
			return users[i].Safe(), nil
		}
	}

	return domain.SafeUser{}, errors.Unauthorized("incorrect email or password")
}

// Logout clears the current session.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.store.Delete(ctx, settings.KeyCurrentUser)
}

// CurrentUser returns the signed-in account, if any.
func (s *AuthService) CurrentUser(ctx context.Context) (domain.SafeUser, bool) {
	data, err := s.store.Get(ctx, settings.KeyCurrentUser)
	if err != nil {
		return domain.SafeUser{}, false
	}

	var user domain.SafeUser
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		s.logger.Warn("Discarding corrupt session record", interfaces.Error(err))
		return domain.SafeUser{}, false
	}
	return user, true
}

// listUsers loads the registered-user list. A missing key is an empty
// list.
func (s *AuthService) listUsers(ctx context.Context) ([]domain.User, error) {
	data, err := s.store.Get(ctx, settings.KeyUsers)
	if err != nil {
		if errors.IsNotFound(err) {
			return []domain.User{}, nil
		}
		return nil, err
	}

	var users []domain.User
	if err := json.Unmarshal([]byte(data), &users); err != nil {
		return nil, errors.Wrap(errors.ErrorTypeInternal, "parsing user list", err)
	}
	return users, nil
}

func (s *AuthService) saveUsers(ctx context.Context, users []domain.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeInternal, "serializing user list", err)
	}
	return s.store.Set(ctx, settings.KeyUsers, string(data))
}

func (s *AuthService) setCurrentUser(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(user.Safe())
	if err != nil {
		return errors.Wrap(errors.ErrorTypeInternal, "serializing session", err)
	}
	return s.store.Set(ctx, settings.KeyCurrentUser, string(data))
}
