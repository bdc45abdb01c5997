package auth

import (
	"context"

	"github.com/classpoint/classpoint-go/session"
)

// Environment states where the client code is executing. It is passed in
// explicitly at construction time; the handler never sniffs its surroundings.
type Environment int

const (
	// EnvironmentHeadless is a non-interactive context (server-side
	// rendering, background jobs). No navigation side effects are
	// available: refresh outcomes are reported as plain success/failure.
	EnvironmentHeadless Environment = iota

	// EnvironmentInteractive is a user-facing context. Refreshes are
	// debounced and an unrecoverable failure signs the user out.
	EnvironmentInteractive
)

// Store receives refreshed sessions and cache invalidations. *session.Cache
// satisfies it.
type Store interface {
	Set(*session.Session)
	Clear()
}

// SignOuter terminates the user's session and redirects to sign-in. Only
// meaningful in interactive environments.
type SignOuter interface {
	SignOut(ctx context.Context) error
}

// SignOutFunc adapts a plain function to the SignOuter interface.
type SignOutFunc func(ctx context.Context) error

func (f SignOutFunc) SignOut(ctx context.Context) error {
	return f(ctx)
}
