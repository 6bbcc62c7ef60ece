package annonces

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/darie-immo/darie-api/internal/auth"
	"github.com/darie-immo/darie-api/internal/platform/httpx"
	"github.com/darie-immo/darie-api/internal/shared"
)

// Handler wires HTTP endpoints for listings.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers listing routes. Creation sits behind the bearer
// gate; reads and the remaining writes are public.
func (h *Handler) MountRoutes(r chi.Router, gate *auth.Middleware) {
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)
	if gate != nil {
		r.With(gate.RequireAuth).Post("/", h.handleCreate)
	} else {
		r.Post("/", h.handleCreate)
	}
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filters := parseFilters(r)
	list, count, err := h.service.Search(r.Context(), filters)
	if err != nil {
		h.logger.Error("search listings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Annonce{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"count":    count,
		"annonces": list,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondErr(w, "get listing", err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}
	created, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.respondErr(w, "create listing", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message": "Annonce créée avec succès.",
		"annonce": created,
	})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}
	updated, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		h.respondErr(w, "update listing", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "Annonce mise à jour avec succès.",
		"annonce": updated,
	})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.respondErr(w, "delete listing", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "Annonce supprimée avec succès.",
		"annonce": deleted,
	})
}

func (h *Handler) decodeInput(w http.ResponseWriter, r *http.Request) (Input, bool) {
	var req annonceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return Input{}, false
	}
	input, verr := req.toInput()
	if verr != nil {
		httpx.ValidationProblem(w, verr)
		return Input{}, false
	}
	return input, true
}

// parseFilters reads the optional query predicates. A malformed value skips
// its filter rather than failing the request.
func parseFilters(r *http.Request) SearchFilters {
	q := r.URL.Query()
	var filters SearchFilters

	if raw := q.Get("prix"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.PrixMax = &v
		}
	}
	if raw := q.Get("ville"); raw != "" {
		filters.Ville = &raw
	}
	if raw := q.Get("nombre_chambres"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filters.NombreChambres = &v
		}
	}
	if raw := q.Get("disponible"); raw == "true" || raw == "false" {
		v := raw == "true"
		filters.Disponible = &v
	}
	if raw := q.Get("utilisateur_id"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filters.UtilisateurID = &v
		}
	}
	return filters
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid listing id")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondErr(w http.ResponseWriter, op string, err error) {
	if !errors.Is(err, shared.ErrNotFound) && !errors.Is(err, shared.ErrValidation) {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
