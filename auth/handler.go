package auth

import (
	"context"
	"time"

	"github.com/classpoint/classpoint-go/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DefaultDebounceWindow is the interval after a successful refresh during
// which further 401s are retried immediately instead of refreshing again.
// Keeps concurrent 401s from turning into a refresh storm.
const DefaultDebounceWindow = 5 * time.Second

// Refresher exchanges the current refresh token for a new token bundle.
type Refresher interface {
	Refresh(ctx context.Context) (*session.Session, error)
}

// FailureHandler decides whether and how to refresh credentials after a 401,
// and recovers the session or terminates it.
//
// State machine: Active -> (401 detected) -> Refreshing -> Active on success,
// SignedOut on failure.
type FailureHandler struct {
	env       Environment
	store     Store
	refresher Refresher
	markers   MarkerStore
	signOut   SignOuter
	debounce  time.Duration
	nowTime   func() time.Time // injectable for testing
}

// FailureHandlerOption defines a function type to modify the FailureHandler instance.
type FailureHandlerOption func(*FailureHandler)

// WithDebounceWindow overrides the refresh debounce window.
func WithDebounceWindow(d time.Duration) FailureHandlerOption {
	return func(h *FailureHandler) {
		h.debounce = d
	}
}

// WithSignOuter sets the sign-out side effect for interactive environments.
func WithSignOuter(so SignOuter) FailureHandlerOption {
	return func(h *FailureHandler) {
		h.signOut = so
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) FailureHandlerOption {
	return func(h *FailureHandler) {
		h.nowTime = nowFunc
	}
}

// NewFailureHandler initializes a FailureHandler with required dependencies.
// Optional configuration can be provided via options.
func NewFailureHandler(env Environment, store Store, refresher Refresher, markers MarkerStore, options ...FailureHandlerOption) (*FailureHandler, error) {
	if store == nil {
		return nil, errors.New("[NewFailureHandler] store is required")
	}
	if refresher == nil {
		return nil, errors.New("[NewFailureHandler] refresher is required")
	}
	if markers == nil {
		return nil, errors.New("[NewFailureHandler] markers is required")
	}

	handler := &FailureHandler{
		env:       env,
		store:     store,
		refresher: refresher,
		markers:   markers,
		debounce:  DefaultDebounceWindow,
		nowTime:   time.Now,
	}

	for _, opt := range options {
		opt(handler)
	}

	return handler, nil
}

// HandleAuthFailure runs the refresh flow for a detected 401. It returns true
// when the caller should retry the original request with a re-read session,
// and false when recovery failed; in the interactive environment a false
// return means the user has already been signed out.
//
// Errors anywhere in the path are logged and treated as refresh failure.
func (h *FailureHandler) HandleAuthFailure(ctx context.Context) bool {
	if h.env == EnvironmentHeadless {
		return h.refreshHeadless(ctx)
	}
	return h.refreshInteractive(ctx)
}

// refreshHeadless delegates to the refresher with no navigation side effects.
func (h *FailureHandler) refreshHeadless(ctx context.Context) bool {
	refreshed, err := h.refresher.Refresh(ctx)
	if err != nil {
		log.Err(err).Msg("Server-side token refresh failed")
		return false
	}
	h.store.Set(refreshed)
	return true
}

func (h *FailureHandler) refreshInteractive(ctx context.Context) bool {
	// A refresh that just succeeded covers this 401 too: the retried
	// request picks up the fresh tokens from the store.
	if last, ok := h.markers.LastRefresh(); ok && h.nowTime().Sub(last) < h.debounce {
		log.Debug().Time("last_refresh", last).Msg("Skipping refresh inside debounce window")
		return true
	}

	refreshed, err := h.refresher.Refresh(ctx)
	if err != nil {
		log.Err(err).Msg("Token refresh failed, signing out")
		h.doSignOut(ctx)
		return false
	}

	h.store.Set(refreshed)
	h.markers.SetLastRefresh(h.nowTime())
	return true
}

func (h *FailureHandler) doSignOut(ctx context.Context) {
	if h.signOut == nil {
		return
	}
	if err := h.signOut.SignOut(ctx); err != nil {
		log.Err(err).Msg("Sign-out after failed refresh errored")
	}
}
