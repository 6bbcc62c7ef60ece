package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/darie-immo/darie-api/internal/shared"
)

// TokenClaims is the signed claim set embedded in every bearer token.
type TokenClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Nom    string `json:"nom,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager constructs a TokenManager. The secret must already have
// been checked non-empty at startup.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the configured token lifetime.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token carrying the user identity, expiring after the
// configured TTL. Tokens are never persisted or revocable.
func (m *TokenManager) Issue(userID int64, email, nom string) (string, error) {
	issued := m.now()
	claims := TokenClaims{
		UserID: userID,
		Email:  email,
		Nom:    nom,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token. Malformed, expired and forged tokens
// all collapse to shared.ErrInvalidToken so callers cannot tell which check
// failed.
func (m *TokenManager) Verify(tokenString string) (*shared.Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&TokenClaims{},
		func(token *jwt.Token) (any, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	if err != nil || !token.Valid {
		return nil, shared.ErrInvalidToken
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, shared.ErrInvalidToken
	}
	return &shared.Claims{UserID: claims.UserID, Email: claims.Email, Nom: claims.Nom}, nil
}
