package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rastreo/rastreo/internal/platform/auth"
)

// ErrInvalidCredentials covers both an unknown username and a wrong password,
// so the login response never reveals which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	accounts AccountRepository
}

func NewService(accounts AccountRepository) *Service {
	return &Service{accounts: accounts}
}

// Create registers a caregiver account. The input must already be validated;
// age is the coerced integer from Validate. The duplicate checks here are a
// fast path — the unique indexes behind the repository are what actually
// guarantee uniqueness under concurrent requests.
func (s *Service) Create(ctx context.Context, in CreateInput, age int) (*Account, error) {
	taken, err := s.accounts.ExistsUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	email := NormalizeEmail(in.Email)
	taken, err = s.accounts.ExistsEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a := &Account{
		CaregiverName: in.CaregiverName,
		CaregiverAge:  age,
		Username:      in.Username,
		Email:         email,
		PasswordHash:  hash,
		CreatedAt:     time.Now().UTC(),
	}
	if in.Occupation != "" {
		v := in.Occupation
		a.Occupation = &v
	}
	if in.Relationship != "" {
		v := in.Relationship
		a.Relationship = &v
	}
	if in.Phone != "" {
		v := in.Phone
		a.Phone = &v
	}

	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Login authenticates by exact username match and bcrypt comparison.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Account, error) {
	a, err := s.accounts.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(in.Password, a.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*Account, error) {
	return s.accounts.GetByUsername(ctx, username)
}
