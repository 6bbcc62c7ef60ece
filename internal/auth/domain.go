package auth

import "time"

// User represents a user account as seen by the authentication flows.
// The password hash is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Nom          string    `json:"nom"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PhotoURL     *string   `json:"photo_url"`
	DateCreation time.Time `json:"date_creation"`
}

// NewUser carries the fields persisted at registration.
type NewUser struct {
	Nom          string
	Email        string
	PasswordHash string
	PhotoURL     *string
}
