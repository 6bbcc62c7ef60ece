package shared

import "context"

type claimsContextKey struct{}

// Claims carries the verified identity attached to an authenticated request.
type Claims struct {
	UserID int64
	Email  string
	Nom    string
}

// ContextWithClaims stores verified token claims in context.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext extracts verified token claims from context.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey{}).(*Claims)
	return claims
}
