package guardians_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/classpoint/classpoint-go/guardians"
	"github.com/classpoint/classpoint-go/httpclient"
	interrors "github.com/classpoint/classpoint-go/internal/errors"
	"github.com/classpoint/classpoint-go/internal/utils"
	"github.com/classpoint/classpoint-go/session"
	"github.com/classpoint/classpoint-go/session/sourcefakes"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, srv *httptest.Server) *guardians.Client {
	t.Helper()

	cache, err := session.NewCache(sourcefakes.NewFakeSource(&session.Session{AccessToken: "test-token"}))
	require.NoError(t, err)
	api, err := httpclient.New(srv.URL, cache, nil, httpclient.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	client, err := guardians.NewClient(api)
	require.NoError(t, err)
	return client
}

func TestClient_Create(t *testing.T) {
	t.Run("posts the payload and decodes the guardian", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/guardians", r.URL.Path)

			var req guardians.CreateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "Amina Yusuf", req.FullName)

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"guardian":{"id":"g-1","fullName":"Amina Yusuf","email":"amina@example.com"}}`))
		}))
		defer srv.Close()

		guardian, err := newTestClient(t, srv).Create(context.Background(), guardians.CreateRequest{
			FullName: "Amina Yusuf",
			Email:    "amina@example.com",
			Relation: "mother",
		})
		require.NoError(t, err)
		require.Equal(t, "g-1", guardian.ID)
	})

	t.Run("rejects an invalid payload before any request", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("request should not reach the backend")
		}))
		defer srv.Close()

		_, err := newTestClient(t, srv).Create(context.Background(), guardians.CreateRequest{
			FullName: "A",
			Email:    "not-an-email",
		})
		require.ErrorIs(t, err, interrors.ErrInvalidPayload)
		require.Contains(t, err.Error(), "Email")
	})
}

func TestClient_Update(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/guardians/g-1", r.URL.Path)
		w.Write([]byte(`{"guardian":{"id":"g-1","fullName":"Amina Y. Hassan"}}`))
	}))
	defer srv.Close()

	guardian, err := newTestClient(t, srv).Update(context.Background(), "g-1", guardians.UpdateRequest{
		FullName: utils.Ptr("Amina Y. Hassan"),
	})
	require.NoError(t, err)
	require.Equal(t, "Amina Y. Hassan", guardian.FullName)
}

func TestClient_ListGetDelete(t *testing.T) {
	t.Run("list decodes the guardians array", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/guardians", r.URL.Path)
			w.Write([]byte(`{"guardians":[{"id":"g-1"},{"id":"g-2"}]}`))
		}))
		defer srv.Close()

		list, err := newTestClient(t, srv).List(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 2)
	})

	t.Run("get surfaces a not-found message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Guardian not found"}`))
		}))
		defer srv.Close()

		_, err := newTestClient(t, srv).Get(context.Background(), "missing")
		require.Error(t, err)
		require.Contains(t, err.Error(), "Guardian not found")
	})

	t.Run("delete hits the guardian resource", func(t *testing.T) {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			gotPath = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		require.NoError(t, newTestClient(t, srv).Delete(context.Background(), "g-1"))
		require.Equal(t, "/api/guardians/g-1", gotPath)
	})
}
