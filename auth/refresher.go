package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/classpoint/classpoint-go/internal/utils"
	"github.com/classpoint/classpoint-go/session"
	"github.com/pkg/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// EndpointRefresher calls the backend's token-refresh endpoint with the
// current refresh token. This is the interactive-context refresh path.
type EndpointRefresher struct {
	refreshURL string
	current    session.Source // supplies the session holding the refresh token
	httpClient *http.Client
}

var _ Refresher = (*EndpointRefresher)(nil)

// NewEndpointRefresher initializes an EndpointRefresher. current is consulted
// on every refresh for the latest refresh token.
func NewEndpointRefresher(refreshURL string, current session.Source, httpClient *http.Client) (*EndpointRefresher, error) {
	if refreshURL == "" {
		return nil, errors.New("[NewEndpointRefresher] refreshURL is required")
	}
	if current == nil {
		return nil, errors.New("[NewEndpointRefresher] current session source is required")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &EndpointRefresher{
		refreshURL: refreshURL,
		current:    current,
		httpClient: httpClient,
	}, nil
}

// Refresh posts the current refresh token to the refresh endpoint and builds
// a session from the token response. When the response omits expires_in, the
// expiry falls back to the access token's exp claim.
func (er *EndpointRefresher) Refresh(ctx context.Context) (*session.Session, error) {
	current, err := er.current.FetchSession(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[EndpointRefresher.Refresh] FetchSession")
	}
	if current == nil || current.RefreshToken == "" {
		return nil, errors.New("[EndpointRefresher.Refresh] no refresh token available")
	}

	body, err := json.Marshal(map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": current.RefreshToken,
	})
	if err != nil {
		return nil, errors.Wrap(err, "[EndpointRefresher.Refresh] marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, er.refreshURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "[EndpointRefresher.Refresh] NewRequestWithContext")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := er.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "[EndpointRefresher.Refresh] Do")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("[EndpointRefresher.Refresh] refresh endpoint returned %d", resp.StatusCode)
	}

	var tr TokenResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&tr); err != nil {
		return nil, errors.Wrap(err, "[EndpointRefresher.Refresh] decode token response")
	}

	return sessionFromTokenResponse(&tr, current)
}

// maxResponseBytes bounds token-endpoint response reads.
const maxResponseBytes = 1 << 20

func sessionFromTokenResponse(tr *TokenResponse, current *session.Session) (*session.Session, error) {
	accessToken := utils.Value(tr.AccessToken)
	if accessToken == "" {
		return nil, errors.New("[sessionFromTokenResponse] no access token in response")
	}

	refreshed := &session.Session{
		AccessToken:  accessToken,
		RefreshToken: utils.Value(tr.RefreshToken),
		IDToken:      utils.Value(tr.IdToken),
	}

	// The refresh token rotates on use; keep the old one only when the
	// endpoint did not issue a replacement.
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = current.RefreshToken
	}

	if tr.ExpiresIn > 0 {
		refreshed.Expiry = NowTimeFunc().Add(time.Duration(tr.ExpiresIn) * time.Second)
	} else if expiry, err := session.ExpiryFromAccessToken(accessToken); err == nil {
		refreshed.Expiry = expiry
	}

	return refreshed, nil
}
