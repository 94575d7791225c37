// Package auth verifies identity tokens issued by the external identity
// provider and turns them into a stable user id.
//
// Handlers depend only on the Verifier interface; the production
// implementation is JWTVerifier. Every failure wraps ErrUnauthenticated so
// callers can map all of them to a single 401 without leaking the cause.
package auth

import (
	"context"
	"errors"
)

// ErrUnauthenticated is returned (possibly wrapped) for any token that
// cannot be verified.
var ErrUnauthenticated = errors.New("authentication failed")

// Identity is the verified subject of a token.
type Identity struct {
	UID string
}

// Verifier checks an identity token.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// VerifierFunc adapts a plain function to Verifier.
type VerifierFunc func(ctx context.Context, token string) (Identity, error)

// Verify calls f(ctx, token).
func (f VerifierFunc) Verify(ctx context.Context, token string) (Identity, error) {
	return f(ctx, token)
}
