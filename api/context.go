package api

import (
	"context"

	"github.com/paleotommytechy/portfolio/auth"
)

type keyType string

const (
	sessionKey   keyType = "session"
	claimsKey    keyType = "claims"
	requestIDKey keyType = "requestId"
)

// ctxWithDecision stores the guard's decision for an authenticated request.
func ctxWithDecision(ctx context.Context, d auth.Decision) context.Context {
	return context.WithValue(ctx, sessionKey, d)
}

func ctxGetDecision(ctx context.Context) (auth.Decision, bool) {
	d, ok := ctx.Value(sessionKey).(auth.Decision)
	return d, ok
}

// ctxWithClaims stores verified bearer token claims.
func ctxWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ctxGetClaims(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}

func ctxWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// ctxGetRequestID returns "" outside RequestIDMiddleware.
func ctxGetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
