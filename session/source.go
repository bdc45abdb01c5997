package session

import "context"

// Source fetches the current session from the identity integration.
// Implementations typically call the host framework's session endpoint.
type Source interface {
	// FetchSession returns the current session, or an error when none can
	// be obtained. A nil session with a nil error means "not signed in".
	FetchSession(ctx context.Context) (*Session, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(ctx context.Context) (*Session, error)

func (f SourceFunc) FetchSession(ctx context.Context) (*Session, error) {
	return f(ctx)
}
