package httputils

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryableClientTLSConfig(t *testing.T) {
	// Self-signed server: only the skip-verify client may get through.
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	t.Run("skip verify reaches self-signed server", func(t *testing.T) {
		client := NewRetryableHTTPClient(5*time.Second, 1, nil, &tls.Config{InsecureSkipVerify: true})

		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("default config rejects self-signed server", func(t *testing.T) {
		client := NewRetryableHTTPClient(5*time.Second, 0, nil, nil)

		_, err := client.Get(srv.URL)
		assert.Error(t, err)
	})
}

func TestRetryableClientRetries(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := NewRetryableHTTPClient(5*time.Second, 3, nil, nil)

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, attempts)
}
