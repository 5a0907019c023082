package identity

import (
	"context"
	"time"

	"github.com/ledgepoint/assetd/pkg/server/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Principal.
	Key ContextKey = "principal"
)

// Principal represents the authenticated identity for a request. Abilities
// is resolved fresh from the grant store on every request, never cached in
// the credential, so an admin's matrix edit is visible on the next request.
type Principal struct {
	// Token claims
	UserID    uint
	Email     string
	RoleID    int64
	IssuedAt  time.Time
	ExpiresAt time.Time

	// Resolved per request
	Abilities []store.Ability
}

// Can reports whether the ability list carries the exact (module, action)
// pair. Broad-vs-own satisfaction is the gate's concern, not this helper's.
func (p *Principal) Can(module, action string) bool {
	for _, a := range p.Abilities {
		if a.Module == module && a.Action == action {
			return true
		}
	}
	return false
}

// Get retrieves the Principal from context.
func Get(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(Key).(*Principal)
	return p, ok
}

// Set stores the Principal in context.
func Set(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, Key, p)
}
