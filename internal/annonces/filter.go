package annonces

import (
	"strconv"
	"strings"
)

// SearchFilters holds the optional listing search predicates. A nil field is
// omitted from the query entirely, never treated as an explicit null.
type SearchFilters struct {
	PrixMax        *float64
	Ville          *string
	NombreChambres *int
	Disponible     *bool
	UtilisateurID  *int64
}

const listColumns = `id, titre, description, prix, date_publication, nombre_chambres,
ville, disponible, date_disponible, utilisateur_id, photo_url`

// buildListQuery assembles the parameterized search statement. Filters are
// AND-combined in declaration order and values are only ever bound as
// positional parameters. Results come back most recently published first.
func buildListQuery(f SearchFilters) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + listColumns + ` FROM annonce`)

	var conditions []string
	var args []any

	if f.PrixMax != nil {
		args = append(args, *f.PrixMax)
		conditions = append(conditions, "prix <= $"+strconv.Itoa(len(args)))
	}
	if f.Ville != nil {
		args = append(args, *f.Ville)
		conditions = append(conditions, "ville ILIKE $"+strconv.Itoa(len(args)))
	}
	if f.NombreChambres != nil {
		args = append(args, *f.NombreChambres)
		conditions = append(conditions, "nombre_chambres = $"+strconv.Itoa(len(args)))
	}
	if f.Disponible != nil {
		args = append(args, *f.Disponible)
		conditions = append(conditions, "disponible = $"+strconv.Itoa(len(args)))
	}
	if f.UtilisateurID != nil {
		args = append(args, *f.UtilisateurID)
		conditions = append(conditions, "utilisateur_id = $"+strconv.Itoa(len(args)))
	}

	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY date_publication DESC")

	return sb.String(), args
}
