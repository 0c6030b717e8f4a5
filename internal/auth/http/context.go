// Package http provides HTTP middleware and handlers for authentication and authorization.
package http

import (
	"context"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
)

// userKey is a context key type for storing the authenticated user.
type userKey struct{}

// tokenKey is a context key type for storing the re-minted session token.
type tokenKey struct{}

// capabilitiesKey is a context key type for storing the resolved capabilities.
type capabilitiesKey struct{}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user *authDomain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser retrieves the authenticated user from the context.
// Returns (user, true) if a user is present, or (nil, false) if no user was set.
func GetUser(ctx context.Context) (*authDomain.User, bool) {
	user, ok := ctx.Value(userKey{}).(*authDomain.User)
	return user, ok && user != nil
}

// WithToken stores the session token minted for this request in the context.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// GetToken retrieves the session token minted for this request.
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok
}

// WithCapabilities stores the capabilities resolved for this request in the context.
func WithCapabilities(ctx context.Context, capabilities []authDomain.Capability) context.Context {
	return context.WithValue(ctx, capabilitiesKey{}, capabilities)
}

// GetCapabilities retrieves the capabilities resolved for this request.
func GetCapabilities(ctx context.Context) ([]authDomain.Capability, bool) {
	capabilities, ok := ctx.Value(capabilitiesKey{}).([]authDomain.Capability)
	return capabilities, ok
}

// WithPrincipal stores every part of an authorized principal in the context.
func WithPrincipal(ctx context.Context, principal *authDomain.Principal) context.Context {
	ctx = WithUser(ctx, principal.User)
	ctx = WithCapabilities(ctx, principal.Capabilities)
	return WithToken(ctx, principal.Token)
}
