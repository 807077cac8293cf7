package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service contains account business logic.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates a credential-backed account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, email, password, name string) (User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return User{}, fmt.Errorf("%w: email, password, and name are required", ErrInvalidInput)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:             uuid.NewString(),
		Email:          email,
		Name:           name,
		HashedPassword: string(hashed),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Login verifies credentials and returns the account.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if user.HashedPassword == "" {
		// OAuth-only account; no password to check against.
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// UpsertFromOAuth persists the identity supplied by an OAuth provider so
// history and resume ownership stay stable across logins. An existing
// account with the same email is linked, not duplicated: the provider
// identity folds into that account and keeps its ID.
func (s *Service) UpsertFromOAuth(ctx context.Context, user User) (User, error) {
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return User{}, fmt.Errorf("%w: user id and email are required", ErrInvalidInput)
	}
	user.Email = strings.TrimSpace(strings.ToLower(user.Email))

	existing, err := s.Repo.GetByEmail(ctx, user.Email)
	switch {
	case err == nil:
		user.ID = existing.ID
	case errors.Is(err, ErrNotFound):
	default:
		return User{}, err
	}

	if err := s.Repo.Upsert(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			// The account appeared between the lookup and the write.
			linked, lookupErr := s.Repo.GetByEmail(ctx, user.Email)
			if lookupErr != nil {
				return User{}, err
			}
			user.ID = linked.ID
			if err := s.Repo.Upsert(ctx, user); err != nil {
				return User{}, err
			}
		} else {
			return User{}, err
		}
	}
	return s.Repo.GetByID(ctx, user.ID)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID)
}
