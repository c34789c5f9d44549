package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	// ClaimsKey is the context key for validated JWT claims.
	ClaimsKey contextKey = "auth_claims"
	// TokenKey is the context key for the raw JWT string.
	TokenKey contextKey = "auth_token"
)

// ErrNoClaims is returned when the request context carries no validated claims.
var ErrNoClaims = errors.New("no authentication claims in context")

// GetClaims extracts validated claims from the context.
func GetClaims(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*Claims)
	return claims, ok
}

// GetToken extracts the raw JWT string from the context.
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}

// UserUUIDFromContext returns the authenticated user's UUID from the
// claims stored in the context. Handlers behind RequireAuth can rely
// on this succeeding; everywhere else treat the error as unauthenticated.
func UserUUIDFromContext(ctx context.Context) (uuid.UUID, error) {
	claims, ok := GetClaims(ctx)
	if !ok {
		return uuid.Nil, ErrNoClaims
	}
	return claims.UserUUID()
}
