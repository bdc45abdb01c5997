package httpclient_test

import (
	"testing"

	"github.com/classpoint/classpoint-go/httpclient"
	interrors "github.com/classpoint/classpoint-go/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	t.Run("prefers the error field", func(t *testing.T) {
		msg := httpclient.ErrorMessage([]byte(`{"error":"Guardian not found","message":"ignored"}`))
		require.Equal(t, "Guardian not found", msg)
	})

	t.Run("falls back to the message field", func(t *testing.T) {
		msg := httpclient.ErrorMessage([]byte(`{"message":"Staff member already exists"}`))
		require.Equal(t, "Staff member already exists", msg)
	})

	t.Run("non-string payloads fall back to the generic message", func(t *testing.T) {
		payloads := map[string]string{
			"null error":    `{"error":null}`,
			"array error":   `{"error":["a","b"]}`,
			"numeric error": `{"error":42}`,
			"boolean error": `{"error":true}`,
			"empty string":  `{"error":""}`,
			"missing field": `{"success":false}`,
			"object error":  `{"error":{"code":"E_NOPE"}}`,
		}
		for name, payload := range payloads {
			t.Run(name, func(t *testing.T) {
				require.Equal(t, interrors.GenericMessage, httpclient.ErrorMessage([]byte(payload)))
			})
		}
	})

	t.Run("non-JSON body falls back to the generic message", func(t *testing.T) {
		require.Equal(t, interrors.GenericMessage, httpclient.ErrorMessage([]byte("<html>Bad Gateway</html>")))
	})

	t.Run("null error with string message uses the message", func(t *testing.T) {
		msg := httpclient.ErrorMessage([]byte(`{"error":null,"message":"Request rejected"}`))
		require.Equal(t, "Request rejected", msg)
	})
}
