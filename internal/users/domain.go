package users

import "time"

// Utilisateur represents a user account. The stored password hash is kept
// out of every serialized form.
type Utilisateur struct {
	ID           int64     `json:"id"`
	Nom          string    `json:"nom"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PhotoURL     *string   `json:"photo_url"`
	DateCreation time.Time `json:"date_creation"`
}

// Summary is the shape returned after a delete.
type Summary struct {
	ID    int64  `json:"id"`
	Nom   string `json:"nom"`
	Email string `json:"email"`
}

// NewUtilisateur carries the fields persisted at creation.
type NewUtilisateur struct {
	Nom          string
	Email        string
	PasswordHash string
	PhotoURL     *string
}

// UpdateUtilisateur carries the updatable fields. The password is not
// updatable through this path.
type UpdateUtilisateur struct {
	Nom      string
	Email    string
	PhotoURL *string
}
