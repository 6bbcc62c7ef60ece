package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/darie-immo/darie-api/internal/shared"
)

// Repository defines persistence operations for user accounts.
type Repository interface {
	List(ctx context.Context) ([]Utilisateur, error)
	Get(ctx context.Context, id int64) (*Utilisateur, error)
	Exists(ctx context.Context, id int64) (bool, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	Create(ctx context.Context, user NewUtilisateur) (*Utilisateur, error)
	Update(ctx context.Context, id int64, user UpdateUtilisateur) (*Utilisateur, error)
	Delete(ctx context.Context, id int64) (*Summary, error)
}

// PGRepository implements Repository using PostgreSQL. Every statement is a
// single parameterized query against the shared pool.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const safeColumns = `id, nom, email, photo_url, date_creation`

// List returns every user, most recently created first.
func (r *PGRepository) List(ctx context.Context) ([]Utilisateur, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+safeColumns+` FROM utilisateur ORDER BY date_creation DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Utilisateur
	for rows.Next() {
		var u Utilisateur
		if err := rows.Scan(&u.ID, &u.Nom, &u.Email, &u.PhotoURL, &u.DateCreation); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Get fetches a user by id without the password hash.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Utilisateur, error) {
	var u Utilisateur
	err := r.pool.QueryRow(ctx, `SELECT `+safeColumns+` FROM utilisateur WHERE id = $1`, id).Scan(
		&u.ID, &u.Nom, &u.Email, &u.PhotoURL, &u.DateCreation,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Exists reports whether a user row with the given id exists.
func (r *PGRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM utilisateur WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// EmailExists reports whether the email belongs to a user other than
// excludeID. Pass 0 to check against all users.
func (r *PGRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM utilisateur WHERE email = $1 AND id != $2)`,
		email, excludeID,
	).Scan(&exists)
	return exists, err
}

// Create inserts a user and returns the stored record.
func (r *PGRepository) Create(ctx context.Context, user NewUtilisateur) (*Utilisateur, error) {
	const query = `INSERT INTO utilisateur (nom, email, mot_de_passe, photo_url, date_creation)
VALUES ($1, $2, $3, $4, NOW())
RETURNING ` + safeColumns
	var created Utilisateur
	err := r.pool.QueryRow(ctx, query, user.Nom, user.Email, user.PasswordHash, user.PhotoURL).Scan(
		&created.ID, &created.Nom, &created.Email, &created.PhotoURL, &created.DateCreation,
	)
	if err != nil {
		return nil, translatePGError(err)
	}
	return &created, nil
}

// Update overwrites nom, email and photo_url.
func (r *PGRepository) Update(ctx context.Context, id int64, user UpdateUtilisateur) (*Utilisateur, error) {
	const query = `UPDATE utilisateur SET nom = $1, email = $2, photo_url = $3 WHERE id = $4
RETURNING ` + safeColumns
	var updated Utilisateur
	err := r.pool.QueryRow(ctx, query, user.Nom, user.Email, user.PhotoURL, id).Scan(
		&updated.ID, &updated.Nom, &updated.Email, &updated.PhotoURL, &updated.DateCreation,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, translatePGError(err)
	}
	return &updated, nil
}

// Delete removes a user and returns the deleted summary. A foreign-key
// violation means the user still owns listings.
func (r *PGRepository) Delete(ctx context.Context, id int64) (*Summary, error) {
	var s Summary
	err := r.pool.QueryRow(ctx, `DELETE FROM utilisateur WHERE id = $1 RETURNING id, nom, email`, id).Scan(
		&s.ID, &s.Nom, &s.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, translatePGError(err)
	}
	return &s, nil
}

// translatePGError maps PostgreSQL constraint violations to domain errors.
func translatePGError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return shared.ErrEmailTaken
		case "23503":
			return shared.ErrHasListings
		}
	}
	return err
}

var _ Repository = (*PGRepository)(nil)
