package annonces

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/darie-immo/darie-api/internal/shared"
)

// annonceRequest is the raw payload for create and update. Numeric fields
// tolerate numeric-looking strings; anything else is reported per field
// instead of silently coerced to zero.
type annonceRequest struct {
	Titre           string    `json:"titre"`
	Description     string    `json:"description"`
	Prix            flexFloat `json:"prix"`
	DatePublication string    `json:"date_publication"`
	NombreChambres  flexInt   `json:"nombre_chambres"`
	Ville           string    `json:"ville"`
	Disponible      flexBool  `json:"disponible"`
	DateDisponible  string    `json:"date_disponible"`
	UtilisateurID   flexInt   `json:"utilisateur_id"`
	PhotoURL        *string   `json:"photo_url"`
}

// toInput normalizes the request or returns the full list of missing and
// malformed fields.
func (r annonceRequest) toInput() (Input, *shared.ValidationError) {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Titre) == "" {
		fields["titre"] = "required"
	}
	if strings.TrimSpace(r.Description) == "" {
		fields["description"] = "required"
	}
	if strings.TrimSpace(r.Ville) == "" {
		fields["ville"] = "required"
	}

	switch {
	case !r.Prix.set:
		fields["prix"] = "required"
	case !r.Prix.ok:
		fields["prix"] = "must be numeric"
	case r.Prix.value < 0:
		fields["prix"] = "must be non-negative"
	}

	switch {
	case !r.NombreChambres.set:
		fields["nombre_chambres"] = "required"
	case !r.NombreChambres.ok:
		fields["nombre_chambres"] = "must be an integer"
	case r.NombreChambres.value < 0:
		fields["nombre_chambres"] = "must be non-negative"
	}

	switch {
	case !r.UtilisateurID.set:
		fields["utilisateur_id"] = "required"
	case !r.UtilisateurID.ok:
		fields["utilisateur_id"] = "must be an integer"
	}

	switch {
	case !r.Disponible.set:
		fields["disponible"] = "required"
	case !r.Disponible.ok:
		fields["disponible"] = "must be a boolean"
	}

	datePublication, ok := parseDate(r.DatePublication)
	if !ok {
		if strings.TrimSpace(r.DatePublication) == "" {
			fields["date_publication"] = "required"
		} else {
			fields["date_publication"] = "must be a date"
		}
	}
	dateDisponible, ok := parseDate(r.DateDisponible)
	if !ok {
		if strings.TrimSpace(r.DateDisponible) == "" {
			fields["date_disponible"] = "required"
		} else {
			fields["date_disponible"] = "must be a date"
		}
	}

	if len(fields) > 0 {
		return Input{}, shared.NewValidationError(fields)
	}

	return Input{
		Titre:           r.Titre,
		Description:     r.Description,
		Prix:            r.Prix.value,
		DatePublication: datePublication,
		NombreChambres:  int(r.NombreChambres.value),
		Ville:           r.Ville,
		Disponible:      r.Disponible.value,
		DateDisponible:  dateDisponible,
		UtilisateurID:   r.UtilisateurID.value,
		PhotoURL:        r.PhotoURL,
	}, nil
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// flexFloat accepts a JSON number or a numeric-looking string. It records
// presence and validity instead of failing the whole decode, so validation
// can report every malformed field at once.
type flexFloat struct {
	value float64
	set   bool
	ok    bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	f.set = true
	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		f.value, f.ok = v, true
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	f.value, f.ok = v, true
	return nil
}

// flexInt is flexFloat restricted to integral values.
type flexInt struct {
	value int64
	set   bool
	ok    bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var inner flexFloat
	_ = inner.UnmarshalJSON(data)
	f.set = inner.set
	if inner.ok && inner.value == math.Trunc(inner.value) {
		f.value, f.ok = int64(inner.value), true
	}
	return nil
}

// flexBool accepts a JSON boolean or the strings "true"/"false".
type flexBool struct {
	value bool
	set   bool
	ok    bool
}

func (f *flexBool) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	f.set = true
	switch strings.TrimSpace(string(data)) {
	case "true", `"true"`:
		f.value, f.ok = true, true
	case "false", `"false"`:
		f.value, f.ok = false, true
	}
	return nil
}
