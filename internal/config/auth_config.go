package config

import "time"

type AuthConfig interface {
	GetSessionCacheTTL() time.Duration
	GetRefreshDebounceWindow() time.Duration
	GetRequestTimeout() time.Duration
	GetSignInPath() string
}

type Auth struct{}

var _ AuthConfig = Auth{}

// GetSessionCacheTTL is the validity window for a cached session snapshot.
func (Auth) GetSessionCacheTTL() time.Duration {
	return 10 * time.Second
}

// GetRefreshDebounceWindow is the interval after a successful token refresh
// during which further 401s are retried immediately instead of triggering
// another refresh.
func (Auth) GetRefreshDebounceWindow() time.Duration {
	return 5 * time.Second
}

func (Auth) GetRequestTimeout() time.Duration {
	return 30 * time.Second
}

// GetSignInPath is where interactive users are sent after an unrecoverable
// auth failure.
func (Auth) GetSignInPath() string {
	return "/signin"
}
