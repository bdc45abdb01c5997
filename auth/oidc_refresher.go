package auth

import (
	"context"
	"sync"

	"github.com/classpoint/classpoint-go/session"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// OIDCRefresher refreshes tokens directly against the identity provider's
// token endpoint, discovered via OIDC. This is the headless refresh path used
// when no backend refresh endpoint is reachable (server-side execution).
type OIDCRefresher struct {
	issuerURL    string
	clientID     string
	clientSecret string
	current      session.Source

	providerOnce sync.Once
	provider     *oidc.Provider
	providerErr  error
}

var _ Refresher = (*OIDCRefresher)(nil)

// NewOIDCRefresher initializes an OIDCRefresher. Provider discovery is
// deferred to the first refresh so construction never touches the network.
func NewOIDCRefresher(issuerURL, clientID, clientSecret string, current session.Source) (*OIDCRefresher, error) {
	if issuerURL == "" {
		return nil, errors.New("[NewOIDCRefresher] issuerURL is required")
	}
	if clientID == "" {
		return nil, errors.New("[NewOIDCRefresher] clientID is required")
	}
	if current == nil {
		return nil, errors.New("[NewOIDCRefresher] current session source is required")
	}

	return &OIDCRefresher{
		issuerURL:    issuerURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		current:      current,
	}, nil
}

// Refresh exchanges the current refresh token for new tokens via the
// discovered token endpoint.
func (or *OIDCRefresher) Refresh(ctx context.Context) (*session.Session, error) {
	current, err := or.current.FetchSession(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[OIDCRefresher.Refresh] FetchSession")
	}
	if current == nil || current.RefreshToken == "" {
		return nil, errors.New("[OIDCRefresher.Refresh] no refresh token available")
	}

	conf, err := or.oauth2Config(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[OIDCRefresher.Refresh] oauth2Config")
	}

	// Hand the token source only the refresh token: the access token just
	// earned a 401, so it must not be served again even if unexpired.
	token, err := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: current.RefreshToken}).Token()
	if err != nil {
		return nil, errors.Wrap(err, "[OIDCRefresher.Refresh] TokenSource.Token")
	}

	refreshed := session.FromOAuth2Token(token)
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = current.RefreshToken
	}
	return refreshed, nil
}

func (or *OIDCRefresher) oauth2Config(ctx context.Context) (*oauth2.Config, error) {
	or.providerOnce.Do(func() {
		or.provider, or.providerErr = oidc.NewProvider(ctx, or.issuerURL)
	})
	if or.providerErr != nil {
		return nil, or.providerErr
	}

	return &oauth2.Config{
		ClientID:     or.clientID,
		ClientSecret: or.clientSecret,
		Endpoint:     or.provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}, nil
}
