package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/darie-immo/darie-api/internal/platform/httpx"
	"github.com/darie-immo/darie-api/internal/shared"
)

// Middleware gates routes behind a verified bearer token.
type Middleware struct {
	logger *slog.Logger
	tokens *TokenManager
}

// NewMiddleware constructs the bearer-token gate.
func NewMiddleware(logger *slog.Logger, tokens *TokenManager) *Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &Middleware{logger: logger, tokens: tokens}
}

// RequireAuth verifies the Authorization header and attaches the claims to
// the request context. Every failure produces the same 401 response.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			httpx.RespondError(w, shared.ErrInvalidToken)
			return
		}
		claims, err := m.tokens.Verify(token)
		if err != nil {
			m.logger.Warn("token rejected", slog.String("path", r.URL.Path))
			httpx.RespondError(w, shared.ErrInvalidToken)
			return
		}
		ctx := shared.ContextWithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
