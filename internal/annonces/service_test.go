package annonces

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darie-immo/darie-api/internal/shared"
)

type mockRepository struct {
	annonces map[int64]*Annonce
	owners   map[int64]bool
	nextID   int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		annonces: make(map[int64]*Annonce),
		owners:   make(map[int64]bool),
		nextID:   1,
	}
}

func (m *mockRepository) List(ctx context.Context, filters SearchFilters) ([]Annonce, error) {
	result := []Annonce{}
	for _, a := range m.annonces {
		if filters.PrixMax != nil && a.Prix > *filters.PrixMax {
			continue
		}
		if filters.Ville != nil && !strings.EqualFold(a.Ville, *filters.Ville) {
			continue
		}
		if filters.NombreChambres != nil && a.NombreChambres != *filters.NombreChambres {
			continue
		}
		if filters.Disponible != nil && a.Disponible != *filters.Disponible {
			continue
		}
		if filters.UtilisateurID != nil && a.UtilisateurID != *filters.UtilisateurID {
			continue
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DatePublication.After(result[j].DatePublication)
	})
	return result, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Detail, error) {
	a, ok := m.annonces[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &Detail{Annonce: *a, NomUtilisateur: "Owner", EmailUtilisateur: "owner@test.local"}, nil
}

func (m *mockRepository) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := m.annonces[id]
	return ok, nil
}

func (m *mockRepository) OwnerExists(ctx context.Context, userID int64) (bool, error) {
	return m.owners[userID], nil
}

func (m *mockRepository) Create(ctx context.Context, input Input) (*Annonce, error) {
	if !m.owners[input.UtilisateurID] {
		return nil, shared.ErrNotFound
	}
	a := annonceFromInput(m.nextID, input)
	m.nextID++
	m.annonces[a.ID] = a
	return a, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, input Input) (*Annonce, error) {
	if _, ok := m.annonces[id]; !ok {
		return nil, shared.ErrNotFound
	}
	a := annonceFromInput(id, input)
	m.annonces[id] = a
	return a, nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) (*Annonce, error) {
	a, ok := m.annonces[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	delete(m.annonces, id)
	return a, nil
}

func annonceFromInput(id int64, input Input) *Annonce {
	return &Annonce{
		ID:              id,
		Titre:           input.Titre,
		Description:     input.Description,
		Prix:            input.Prix,
		DatePublication: input.DatePublication,
		NombreChambres:  input.NombreChambres,
		Ville:           input.Ville,
		Disponible:      input.Disponible,
		DateDisponible:  input.DateDisponible,
		UtilisateurID:   input.UtilisateurID,
		PhotoURL:        input.PhotoURL,
	}
}

func day(d int) time.Time {
	return time.Date(2024, time.May, d, 0, 0, 0, 0, time.UTC)
}

func seedListing(t *testing.T, service *Service, prix float64, ville string, chambres int, dispo bool, owner int64, published time.Time) *Annonce {
	t.Helper()
	created, err := service.Create(context.Background(), Input{
		Titre:           "annonce",
		Description:     "desc",
		Prix:            prix,
		DatePublication: published,
		NombreChambres:  chambres,
		Ville:           ville,
		Disponible:      dispo,
		DateDisponible:  published,
		UtilisateurID:   owner,
	})
	require.NoError(t, err)
	return created
}

func TestSearchAppliesEveryPredicateAndSortsDescending(t *testing.T) {
	repo := newMockRepository()
	repo.owners[1] = true
	repo.owners[2] = true
	service := NewService(repo)

	seedListing(t, service, 700, "Paris", 2, true, 1, day(1))
	seedListing(t, service, 900, "Paris", 2, true, 1, day(3))
	seedListing(t, service, 700, "Lyon", 2, true, 1, day(2))
	seedListing(t, service, 700, "Paris", 3, false, 2, day(4))

	results, count, err := service.Search(context.Background(), SearchFilters{
		PrixMax: floatPtr(800),
		Ville:   strPtr("Paris"),
	})
	require.NoError(t, err)
	assert.Equal(t, len(results), count)

	for _, a := range results {
		assert.LessOrEqual(t, a.Prix, 800.0)
		assert.Equal(t, "Paris", a.Ville)
	}
	for i := 1; i < len(results); i++ {
		assert.False(t, results[i-1].DatePublication.Before(results[i].DatePublication),
			"results must be sorted by publication date, descending")
	}
}

func TestSearchWithoutFiltersReturnsEverything(t *testing.T) {
	repo := newMockRepository()
	repo.owners[1] = true
	service := NewService(repo)

	seedListing(t, service, 500, "Nice", 1, true, 1, day(1))
	seedListing(t, service, 600, "Nice", 1, true, 1, day(2))

	results, count, err := service.Search(context.Background(), SearchFilters{})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, results, 2)
}

func TestCreateRequiresExistingOwner(t *testing.T) {
	repo := newMockRepository()
	repo.owners[1] = true
	service := NewService(repo)

	_, err := service.Create(context.Background(), Input{
		Titre: "a", Description: "d", Ville: "Paris", UtilisateurID: 99,
		DatePublication: day(1), DateDisponible: day(1),
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	created := seedListing(t, service, 700, "Paris", 2, true, 1, day(1))
	detail, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, detail.ID)
	assert.NotEmpty(t, detail.NomUtilisateur)
	assert.NotEmpty(t, detail.EmailUtilisateur)
}

func TestUpdateChecksExistence(t *testing.T) {
	repo := newMockRepository()
	repo.owners[1] = true
	service := NewService(repo)

	_, err := service.Update(context.Background(), 42, Input{UtilisateurID: 1})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	created := seedListing(t, service, 700, "Paris", 2, true, 1, day(1))
	updated, err := service.Update(context.Background(), created.ID, Input{
		Titre: "nouveau", Description: "d", Prix: 800, Ville: "Paris",
		NombreChambres: 2, Disponible: false, UtilisateurID: 1,
		DatePublication: day(1), DateDisponible: day(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "nouveau", updated.Titre)
	assert.False(t, updated.Disponible)
}

func TestDeleteReturnsRemovedListing(t *testing.T) {
	repo := newMockRepository()
	repo.owners[1] = true
	service := NewService(repo)

	created := seedListing(t, service, 700, "Paris", 2, true, 1, day(1))
	deleted, err := service.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = service.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = service.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
