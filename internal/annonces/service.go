package annonces

import (
	"context"

	"github.com/darie-immo/darie-api/internal/shared"
)

// Service wraps listing business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search returns every listing matching the filters, plus the count.
func (s *Service) Search(ctx context.Context, filters SearchFilters) ([]Annonce, int, error) {
	list, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	return list, len(list), nil
}

// Get returns a listing with its owner details, or shared.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*Detail, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new listing. The owner must exist; the check and the
// insert are separate statements, with the foreign key catching the race.
func (s *Service) Create(ctx context.Context, input Input) (*Annonce, error) {
	ownerExists, err := s.repo.OwnerExists(ctx, input.UtilisateurID)
	if err != nil {
		return nil, err
	}
	if !ownerExists {
		return nil, shared.ErrNotFound
	}
	return s.repo.Create(ctx, input)
}

// Update overwrites an existing listing, including its availability flag.
func (s *Service) Update(ctx context.Context, id int64, input Input) (*Annonce, error) {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}
	return s.repo.Update(ctx, id, input)
}

// Delete removes a listing and returns the deleted record.
func (s *Service) Delete(ctx context.Context, id int64) (*Annonce, error) {
	return s.repo.Delete(ctx, id)
}
