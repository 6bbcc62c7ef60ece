package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/darie-immo/darie-api/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user NewUser) (*User, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByEmail fetches a user by email, including the password hash.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `SELECT id, nom, email, mot_de_passe, photo_url, date_creation
FROM utilisateur WHERE email = $1`
	var user User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Nom, &user.Email, &user.PasswordHash, &user.PhotoURL, &user.DateCreation,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// EmailExists reports whether the email is already registered.
func (r *PGRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM utilisateur WHERE email = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts a new user and returns the stored record without the hash.
func (r *PGRepository) Create(ctx context.Context, user NewUser) (*User, error) {
	const query = `INSERT INTO utilisateur (nom, email, mot_de_passe, photo_url, date_creation)
VALUES ($1, $2, $3, $4, NOW())
RETURNING id, nom, email, photo_url, date_creation`
	var created User
	err := r.pool.QueryRow(ctx, query, user.Nom, user.Email, user.PasswordHash, user.PhotoURL).Scan(
		&created.ID, &created.Nom, &created.Email, &created.PhotoURL, &created.DateCreation,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, shared.ErrEmailTaken
		}
		return nil, err
	}
	return &created, nil
}

var _ Repository = (*PGRepository)(nil)
