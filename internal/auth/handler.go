package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/darie-immo/darie-api/internal/platform/httpx"
	"github.com/darie-immo/darie-api/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	tokens    *TokenManager
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, tokens *TokenManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		service:   service,
		tokens:    tokens,
		validator: shared.NewValidator(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/register", h.handleRegister)
	r.Post("/logout", h.handleLogout)
}

type loginRequest struct {
	Email      string `json:"email" validate:"required"`
	MotDePasse string `json:"mot_de_passe" validate:"required"`
}

type registerRequest struct {
	Nom        string  `json:"nom" validate:"required"`
	Email      string  `json:"email" validate:"required,email_basic"`
	MotDePasse string  `json:"mot_de_passe" validate:"required,min=6"`
	PhotoURL   *string `json:"photo_url"`
}

type sessionResponse struct {
	Message     string `json:"message"`
	Token       string `json:"token"`
	Utilisateur *User  `json:"utilisateur"`
	ExpiresIn   string `json:"expiresIn"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.FieldErrors(err))
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Email, req.MotDePasse)
	if err != nil {
		if !errors.Is(err, shared.ErrInvalidCredentials) {
			h.logger.Error("login", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email, user.Nom)
	if err != nil {
		h.logger.Error("issue token", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, sessionResponse{
		Message:     "Connexion réussie.",
		Token:       token,
		Utilisateur: user,
		ExpiresIn:   h.tokens.TTL().String(),
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.FieldErrors(err))
		return
	}

	user, err := h.service.Register(r.Context(), RegisterInput{
		Nom:      req.Nom,
		Email:    req.Email,
		Password: req.MotDePasse,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		if !errors.Is(err, shared.ErrEmailTaken) {
			h.logger.Error("register", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email, user.Nom)
	if err != nil {
		h.logger.Error("issue token", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, sessionResponse{
		Message:     "Inscription réussie.",
		Token:       token,
		Utilisateur: user,
		ExpiresIn:   h.tokens.TTL().String(),
	})
}

// handleLogout only acknowledges: tokens are stateless and stay valid until
// their natural expiry.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{
		"message": "Déconnexion réussie. Supprimez le token côté client.",
	})
}

// HandleLoginForTest exposes the login handler for tests.
func (h *Handler) HandleLoginForTest(w http.ResponseWriter, r *http.Request) {
	h.handleLogin(w, r)
}

// HandleRegisterForTest exposes the register handler for tests.
func (h *Handler) HandleRegisterForTest(w http.ResponseWriter, r *http.Request) {
	h.handleRegister(w, r)
}
