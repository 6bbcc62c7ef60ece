package users

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/darie-immo/darie-api/internal/shared"
)

// Service wraps user management business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all users and their count.
func (s *Service) List(ctx context.Context) ([]Utilisateur, int, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	return list, len(list), nil
}

// Get returns a single user or shared.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*Utilisateur, error) {
	return s.repo.Get(ctx, id)
}

// CreateInput carries validated creation data.
type CreateInput struct {
	Nom      string
	Email    string
	Password string
	PhotoURL *string
}

// Create stores a new user after checking email uniqueness. The existence
// check and the insert are two statements; a concurrent insert in between is
// caught by the unique constraint and yields the same conflict.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Utilisateur, error) {
	taken, err := s.repo.EmailExists(ctx, input.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, NewUtilisateur{
		Nom:          input.Nom,
		Email:        input.Email,
		PasswordHash: string(hash),
		PhotoURL:     input.PhotoURL,
	})
}

// UpdateInput carries validated update data.
type UpdateInput struct {
	Nom      string
	Email    string
	PhotoURL *string
}

// Update overwrites a user's profile. The target must exist and the email
// must not belong to another user.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (*Utilisateur, error) {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}
	taken, err := s.repo.EmailExists(ctx, input.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.ErrEmailTaken
	}
	return s.repo.Update(ctx, id, UpdateUtilisateur{
		Nom:      input.Nom,
		Email:    input.Email,
		PhotoURL: input.PhotoURL,
	})
}

// Delete removes a user and returns the deleted summary. Users who still own
// listings cannot be deleted.
func (s *Service) Delete(ctx context.Context, id int64) (*Summary, error) {
	return s.repo.Delete(ctx, id)
}
