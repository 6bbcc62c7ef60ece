package users

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/darie-immo/darie-api/internal/platform/httpx"
	"github.com/darie-immo/darie-api/internal/shared"
)

// Handler wires HTTP endpoints for user management.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, validator: shared.NewValidator()}
}

// MountRoutes registers user routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)
	r.Post("/", h.handleCreate)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

type createRequest struct {
	Nom        string  `json:"nom" validate:"required"`
	Email      string  `json:"email" validate:"required,email_basic"`
	MotDePasse string  `json:"mot_de_passe" validate:"required,min=6"`
	PhotoURL   *string `json:"photo_url"`
}

type updateRequest struct {
	Nom      string  `json:"nom" validate:"required"`
	Email    string  `json:"email" validate:"required,email_basic"`
	PhotoURL *string `json:"photo_url"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, count, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Utilisateur{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"count":        count,
		"utilisateurs": list,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondErr(w, "get user", err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.FieldErrors(err))
		return
	}

	created, err := h.service.Create(r.Context(), CreateInput{
		Nom:      req.Nom,
		Email:    req.Email,
		Password: req.MotDePasse,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		h.respondErr(w, "create user", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message":     "Utilisateur créé avec succès.",
		"utilisateur": created,
	})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.FieldErrors(err))
		return
	}

	updated, err := h.service.Update(r.Context(), id, UpdateInput{
		Nom:      req.Nom,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		h.respondErr(w, "update user", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message":     "Utilisateur mis à jour avec succès.",
		"utilisateur": updated,
	})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.respondErr(w, "delete user", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message":     "Utilisateur supprimé avec succès.",
		"utilisateur": deleted,
	})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid user id")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondErr(w http.ResponseWriter, op string, err error) {
	if !errors.Is(err, shared.ErrNotFound) && !errors.Is(err, shared.ErrEmailTaken) && !errors.Is(err, shared.ErrHasListings) {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
