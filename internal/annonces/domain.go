// Package annonces implements the rental-listing entity and its search.
package annonces

import "time"

// Annonce represents a rental listing owned by a user.
type Annonce struct {
	ID              int64     `json:"id"`
	Titre           string    `json:"titre"`
	Description     string    `json:"description"`
	Prix            float64   `json:"prix"`
	DatePublication time.Time `json:"date_publication"`
	NombreChambres  int       `json:"nombre_chambres"`
	Ville           string    `json:"ville"`
	Disponible      bool      `json:"disponible"`
	DateDisponible  time.Time `json:"date_disponible"`
	UtilisateurID   int64     `json:"utilisateur_id"`
	PhotoURL        *string   `json:"photo_url"`
}

// Detail is a listing joined with its owner's display fields.
type Detail struct {
	Annonce
	NomUtilisateur   string `json:"nom_utilisateur"`
	EmailUtilisateur string `json:"email_utilisateur"`
}

// Input carries the validated fields for create and update. Both operations
// take the full field set; the availability flag is a plain overwrite.
type Input struct {
	Titre           string
	Description     string
	Prix            float64
	DatePublication time.Time
	NombreChambres  int
	Ville           string
	Disponible      bool
	DateDisponible  time.Time
	UtilisateurID   int64
	PhotoURL        *string
}
