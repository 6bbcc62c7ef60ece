package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/darie-immo/darie-api/internal/shared"
)

// hashCost is the bcrypt work factor used for every stored password.
const hashCost = bcrypt.DefaultCost

// Service wraps authentication business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate validates email/password credentials. An unknown email and a
// wrong password both return shared.ErrInvalidCredentials; store failures
// propagate unchanged.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// RegisterInput carries validated registration data.
type RegisterInput struct {
	Nom      string
	Email    string
	Password string
	PhotoURL *string
}

// Register hashes the password and stores a new account. A taken email
// yields shared.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	taken, err := s.repo.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), hashCost)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, NewUser{
		Nom:          input.Nom,
		Email:        input.Email,
		PasswordHash: string(hash),
		PhotoURL:     input.PhotoURL,
	})
}
