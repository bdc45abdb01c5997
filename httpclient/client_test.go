package httpclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/classpoint/classpoint-go/httpclient"
	interrors "github.com/classpoint/classpoint-go/internal/errors"
	"github.com/classpoint/classpoint-go/session"
	"github.com/classpoint/classpoint-go/session/sourcefakes"
	"github.com/stretchr/testify/require"
)

const (
	staleToken = "stale-access-token"
	freshToken = "fresh-access-token"
)

// refreshingHandler is a FailureHandler double that drops a fresh session
// into the cache and counts invocations.
type refreshingHandler struct {
	lock    sync.Mutex
	cache   *session.Cache
	succeed bool
	calls   int
}

func (h *refreshingHandler) HandleAuthFailure(ctx context.Context) bool {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.calls++
	if !h.succeed {
		return false
	}
	h.cache.Set(&session.Session{AccessToken: freshToken})
	return true
}

func (h *refreshingHandler) callCount() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.calls
}

type clientFixture struct {
	source  *sourcefakes.FakeSource
	cache   *session.Cache
	handler *refreshingHandler
	client  *httpclient.Client
}

func setupClient(t *testing.T, srv *httptest.Server, refreshSucceeds bool) *clientFixture {
	t.Helper()

	source := sourcefakes.NewFakeSource(&session.Session{AccessToken: staleToken})
	cache, err := session.NewCache(source)
	require.NoError(t, err)

	handler := &refreshingHandler{cache: cache, succeed: refreshSucceeds}
	client, err := httpclient.New(srv.URL, cache, handler, httpclient.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	return &clientFixture{source: source, cache: cache, handler: handler, client: client}
}

func TestClient_Do(t *testing.T) {
	t.Run("attaches bearer token and default headers", func(t *testing.T) {
		var gotAuth, gotContentType, gotRequestID string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			gotRequestID = r.Header.Get("X-Request-ID")
			w.Write([]byte(`{"success":true}`))
		}))
		defer srv.Close()
		f := setupClient(t, srv, true)

		resp, err := f.client.Do(context.Background(), http.MethodGet, "/api/profiles/me", nil)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "Bearer "+staleToken, gotAuth)
		require.Equal(t, "application/json", gotContentType)
		require.NotEmpty(t, gotRequestID)
	})

	t.Run("caller headers take precedence", func(t *testing.T) {
		var gotContentType string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotContentType = r.Header.Get("Content-Type")
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()
		f := setupClient(t, srv, true)

		_, err := f.client.Do(context.Background(), http.MethodPost, "/api/uploads", nil,
			httpclient.WithHeader("Content-Type", "multipart/form-data"))
		require.NoError(t, err)
		require.Equal(t, "multipart/form-data", gotContentType)
	})

	t.Run("fails fast without a token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("request should not reach the backend")
		}))
		defer srv.Close()
		f := setupClient(t, srv, true)
		f.source.SetSession(nil)
		f.cache.Clear()

		_, err := f.client.Do(context.Background(), http.MethodGet, "/api/profiles/me", nil)
		require.ErrorIs(t, err, interrors.ErrNoSession)
	})

	t.Run("non-2xx surfaces the server error message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"Organization is suspended"}`))
		}))
		defer srv.Close()
		f := setupClient(t, srv, true)

		_, err := f.client.Do(context.Background(), http.MethodGet, "/api/admin/organizations", nil)
		var apiErr *httpclient.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
		require.Equal(t, "Organization is suspended", apiErr.Message)
	})
}

func TestClient_AuthRecovery(t *testing.T) {
	// newExpiringServer serves 401 until it sees the fresh token.
	newExpiringServer := func(requests *[]string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*requests = append(*requests, r.Header.Get("Authorization"))
			if r.Header.Get("Authorization") != "Bearer "+freshToken {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"jwt expired"}`))
				return
			}
			w.Write([]byte(`{"success":true}`))
		}))
	}

	t.Run("401 triggers one refresh and one retry with the new token", func(t *testing.T) {
		var requests []string
		srv := newExpiringServer(&requests)
		defer srv.Close()
		f := setupClient(t, srv, true)

		resp, err := f.client.Do(context.Background(), http.MethodGet, "/api/staff", nil)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, 1, f.handler.callCount())
		require.Equal(t, []string{"Bearer " + staleToken, "Bearer " + freshToken}, requests)
	})

	t.Run("failed refresh reports authentication expired", func(t *testing.T) {
		var requests []string
		srv := newExpiringServer(&requests)
		defer srv.Close()
		f := setupClient(t, srv, false)

		_, err := f.client.Do(context.Background(), http.MethodGet, "/api/staff", nil)
		require.ErrorIs(t, err, interrors.ErrAuthExpired)
		require.Len(t, requests, 1)
	})

	t.Run("nil handler reports authentication expired", func(t *testing.T) {
		var requests []string
		srv := newExpiringServer(&requests)
		defer srv.Close()

		source := sourcefakes.NewFakeSource(&session.Session{AccessToken: staleToken})
		cache, err := session.NewCache(source)
		require.NoError(t, err)
		client, err := httpclient.New(srv.URL, cache, nil, httpclient.WithHTTPClient(srv.Client()))
		require.NoError(t, err)

		_, err = client.Do(context.Background(), http.MethodGet, "/api/staff", nil)
		require.ErrorIs(t, err, interrors.ErrAuthExpired)
	})

	t.Run("a second 401 after the retry is not retried again", func(t *testing.T) {
		var requests []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests = append(requests, r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"jwt expired"}`))
		}))
		defer srv.Close()
		f := setupClient(t, srv, true)

		_, err := f.client.Do(context.Background(), http.MethodGet, "/api/staff", nil)
		var apiErr *httpclient.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		require.Len(t, requests, 2)
		require.Equal(t, 1, f.handler.callCount())
	})
}

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/profiles/me", r.URL.Path)
		w.Write([]byte(`{"profile":{"id":"user-1","fullName":"Amina Yusuf"}}`))
	}))
	defer srv.Close()
	f := setupClient(t, srv, true)

	var out struct {
		Profile struct {
			ID       string `json:"id"`
			FullName string `json:"fullName"`
		} `json:"profile"`
	}
	require.NoError(t, f.client.Get(context.Background(), "/api/profiles/me", &out))
	require.Equal(t, "user-1", out.Profile.ID)
	require.Equal(t, "Amina Yusuf", out.Profile.FullName)
}
