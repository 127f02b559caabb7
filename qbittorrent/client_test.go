package qbittorrent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newLoginHandler returns a mux that accepts admin/adminadmin on the login
// endpoint and hands out a SID cookie.
func newLoginHandler() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("username") == "admin" && r.PostForm.Get("password") == "adminadmin" {
			http.SetCookie(w, &http.Cookie{Name: "SID", Value: "abc123"})
			w.Write([]byte("Ok."))
			return
		}
		w.Write([]byte("Fails."))
	})
	return mux
}

// loggedInClient creates a client against srv and logs it in.
func loggedInClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()

	client, err := NewClient(srv.URL, "admin", "adminadmin", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, client.Login(context.Background()))
	return client
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		baseURL string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			baseURL: "http://localhost:8080",
			wantErr: false,
		},
		{
			name:    "missing URL",
			baseURL: "",
			wantErr: true,
			errMsg:  "URL is required",
		},
		{
			name:    "trailing slash trimmed",
			baseURL: "http://localhost:8080/",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, "admin", "adminadmin", logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "http://localhost:8080", client.baseURL)
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("http://localhost:8080", "admin", "adminadmin", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("http://localhost:8080", "admin", "adminadmin", logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("tls skip verify applies to a replaced http client", func(t *testing.T) {
		// Order matters: WithHTTPClient swaps the client wholesale, so
		// WithTLSSkipVerify has to come after it to take effect.
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("https://localhost:8080", "admin", "adminadmin", logger,
			WithHTTPClient(customClient), WithTLSSkipVerify())
		require.NoError(t, err)

		transport, ok := client.httpClient.Transport.(*http.Transport)
		require.True(t, ok)
		require.NotNil(t, transport.TLSClientConfig)
		assert.True(t, transport.TLSClientConfig.InsecureSkipVerify)
	})

	t.Run("with user agent", func(t *testing.T) {
		client, err := NewClient("http://localhost:8080", "admin", "adminadmin", logger, WithUserAgent("test-agent/1.0"))
		require.NoError(t, err)
		assert.Equal(t, "test-agent/1.0", client.userAgent)
	})
}

func TestLogin(t *testing.T) {
	t.Run("success stores session cookie", func(t *testing.T) {
		srv := httptest.NewServer(newLoginHandler())
		defer srv.Close()

		client := loggedInClient(t, srv)

		cookie, err := client.session()
		require.NoError(t, err)
		assert.Equal(t, "SID", cookie.Name)
		assert.Equal(t, "abc123", cookie.Value)
	})

	t.Run("wrong credentials", func(t *testing.T) {
		srv := httptest.NewServer(newLoginHandler())
		defer srv.Close()

		client, err := NewClient(srv.URL, "admin", "wrong", zerolog.Nop())
		require.NoError(t, err)

		err = client.Login(context.Background())
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("banned", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		client, err := NewClient(srv.URL, "admin", "adminadmin", zerolog.Nop())
		require.NoError(t, err)

		err = client.Login(context.Background())
		assert.ErrorIs(t, err, ErrBanned)
	})

	t.Run("ok body without cookie", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("Ok."))
		}))
		defer srv.Close()

		client, err := NewClient(srv.URL, "admin", "adminadmin", zerolog.Nop())
		require.NoError(t, err)

		err = client.Login(context.Background())
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUnauthenticatedCalls(t *testing.T) {
	// No server: the calls must fail before touching the network.
	client, err := NewClient("http://localhost:1", "admin", "adminadmin", zerolog.Nop())
	require.NoError(t, err)

	ctx := context.Background()

	_, err = client.GetTorrents(ctx, TorrentListOptions{})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = client.GetTags(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	err = client.DeleteTorrents(ctx, []string{"abc"}, false)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSessionExpiry(t *testing.T) {
	mux := newLoginHandler()
	mux.HandleFunc("/api/v2/torrents/info", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := loggedInClient(t, srv)

	_, err := client.GetTorrents(context.Background(), TorrentListOptions{})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAPIError(t *testing.T) {
	mux := newLoginHandler()
	mux.HandleFunc("/api/v2/torrents/delete", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("torrent metadata hasn't downloaded yet"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := loggedInClient(t, srv)

	err := client.DeleteTorrents(context.Background(), []string{"abc"}, false)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "409")
}

func TestSessionCookieSent(t *testing.T) {
	mux := newLoginHandler()
	mux.HandleFunc("/api/v2/torrents/tags", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("SID")
		if err != nil || cookie.Value != "abc123" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := loggedInClient(t, srv)

	_, err := client.GetTags(context.Background())
	assert.NoError(t, err)
}
