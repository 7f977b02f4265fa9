package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/fintrack/fintrack-backend/internal/domain"
)

// Resolver resolves the owner identity from an incoming request. Absence of
// a resolvable owner is reported as domain.ErrUnauthorized and stops the
// request before any ledger work happens.
type Resolver interface {
	Resolve(r *http.Request) (string, error)
}

// TokenResolver maps static bearer tokens to owner IDs. It mirrors the
// deployment model where an upstream identity provider hands each client a
// token tied to one owner.
type TokenResolver struct {
	owners map[string]string
}

// NewTokenResolver creates a resolver over a token -> owner ID map
func NewTokenResolver(owners map[string]string) *TokenResolver {
	return &TokenResolver{owners: owners}
}

// Resolve extracts the bearer token and returns the owner it belongs to
func (t *TokenResolver) Resolve(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", domain.ErrUnauthorized
	}
	token := strings.TrimPrefix(header, "Bearer ")
	owner, ok := t.owners[token]
	if !ok {
		return "", domain.ErrUnauthorized
	}
	return owner, nil
}

type contextKey string

const ownerContextKey contextKey = "owner_id"

// withOwner stores the resolved owner ID on the context
func withOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerContextKey, ownerID)
}

// ownerFrom returns the owner ID resolved for this request, or "" if the
// request never passed the auth middleware
func ownerFrom(ctx context.Context) string {
	owner, _ := ctx.Value(ownerContextKey).(string)
	return owner
}
