package annonces

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/darie-immo/darie-api/internal/shared"
)

// Repository defines persistence operations for listings.
type Repository interface {
	List(ctx context.Context, filters SearchFilters) ([]Annonce, error)
	Get(ctx context.Context, id int64) (*Detail, error)
	Exists(ctx context.Context, id int64) (bool, error)
	OwnerExists(ctx context.Context, userID int64) (bool, error)
	Create(ctx context.Context, input Input) (*Annonce, error)
	Update(ctx context.Context, id int64, input Input) (*Annonce, error)
	Delete(ctx context.Context, id int64) (*Annonce, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// List runs the filtered search, newest publications first.
func (r *PGRepository) List(ctx context.Context, filters SearchFilters) ([]Annonce, error) {
	query, args := buildListQuery(filters)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Annonce
	for rows.Next() {
		var a Annonce
		if err := scanAnnonce(rows, &a); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Get fetches a listing joined with its owner's name and email.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Detail, error) {
	const query = `SELECT a.id, a.titre, a.description, a.prix, a.date_publication, a.nombre_chambres,
a.ville, a.disponible, a.date_disponible, a.utilisateur_id, a.photo_url,
u.nom, u.email
FROM annonce a
JOIN utilisateur u ON a.utilisateur_id = u.id
WHERE a.id = $1`
	var d Detail
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Titre, &d.Description, &d.Prix, &d.DatePublication, &d.NombreChambres,
		&d.Ville, &d.Disponible, &d.DateDisponible, &d.UtilisateurID, &d.PhotoURL,
		&d.NomUtilisateur, &d.EmailUtilisateur,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Exists reports whether a listing row with the given id exists.
func (r *PGRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM annonce WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// OwnerExists reports whether a user row with the given id exists.
func (r *PGRepository) OwnerExists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM utilisateur WHERE id = $1)`, userID).Scan(&exists)
	return exists, err
}

// Create inserts a listing. A foreign-key violation on utilisateur_id means
// the owner vanished between the existence check and the insert; it is
// reported as not-found, same as the check.
func (r *PGRepository) Create(ctx context.Context, input Input) (*Annonce, error) {
	const query = `INSERT INTO annonce
(titre, description, prix, date_publication, nombre_chambres, ville, disponible, date_disponible, utilisateur_id, photo_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + listColumns
	var created Annonce
	err := scanAnnonce(r.pool.QueryRow(ctx, query,
		input.Titre, input.Description, input.Prix, input.DatePublication, input.NombreChambres,
		input.Ville, input.Disponible, input.DateDisponible, input.UtilisateurID, input.PhotoURL,
	), &created)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &created, nil
}

// Update overwrites every listing field.
func (r *PGRepository) Update(ctx context.Context, id int64, input Input) (*Annonce, error) {
	const query = `UPDATE annonce SET
titre = $1, description = $2, prix = $3, date_publication = $4, nombre_chambres = $5,
ville = $6, disponible = $7, date_disponible = $8, utilisateur_id = $9, photo_url = $10
WHERE id = $11
RETURNING ` + listColumns
	var updated Annonce
	err := scanAnnonce(r.pool.QueryRow(ctx, query,
		input.Titre, input.Description, input.Prix, input.DatePublication, input.NombreChambres,
		input.Ville, input.Disponible, input.DateDisponible, input.UtilisateurID, input.PhotoURL,
		id,
	), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// Delete removes a listing and returns the deleted record.
func (r *PGRepository) Delete(ctx context.Context, id int64) (*Annonce, error) {
	var deleted Annonce
	err := scanAnnonce(r.pool.QueryRow(ctx,
		`DELETE FROM annonce WHERE id = $1 RETURNING `+listColumns, id,
	), &deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &deleted, nil
}

func scanAnnonce(row pgx.Row, a *Annonce) error {
	return row.Scan(
		&a.ID, &a.Titre, &a.Description, &a.Prix, &a.DatePublication, &a.NombreChambres,
		&a.Ville, &a.Disponible, &a.DateDisponible, &a.UtilisateurID, &a.PhotoURL,
	)
}

var _ Repository = (*PGRepository)(nil)
