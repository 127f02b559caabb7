package qbittorrent

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	apiBase          = "/api/v2"
	sessionCookie    = "SID"
	defaultUserAgent = "qbitctl"
)

// Client talks to a qBittorrent WebUI instance.
type Client struct {
	baseURL    string
	username   string
	password   string
	userAgent  string
	basicUser  string
	basicPass  string
	httpClient *http.Client
	logger     zerolog.Logger

	mu  sync.RWMutex
	sid *http.Cookie
}

// NewClient creates a new qBittorrent client. The client is unauthenticated
// until Login is called.
func NewClient(baseURL, username, password string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("qBittorrent URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid qBittorrent URL: %w", err)
	}

	client := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		username:  username,
		password:  password,
		userAgent: defaultUserAgent,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Login authenticates against the WebUI and stores the session cookie used by
// all subsequent calls.
func (c *Client) Login(ctx context.Context) error {
	form := url.Values{}
	form.Set("username", c.username)
	form.Set("password", c.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiBase+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read login response: %w", err)
	}

	// The WebUI answers 403 once the IP is banned after repeated failures.
	if resp.StatusCode == http.StatusForbidden {
		return ErrBanned
	}
	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	// A failed login still returns 200, with "Fails." as the body.
	if strings.TrimSpace(string(body)) != "Ok." {
		return ErrInvalidCredentials
	}

	var sid *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookie {
			sid = cookie
			break
		}
	}
	if sid == nil {
		return fmt.Errorf("login succeeded but no %s cookie was returned: %w", sessionCookie, ErrInvalidCredentials)
	}

	c.mu.Lock()
	c.sid = sid
	c.mu.Unlock()

	c.logger.Debug().Str("url", c.baseURL).Msg("Logged in to qBittorrent")
	return nil
}

// session returns the stored session cookie, or ErrUnauthenticated when Login
// has not succeeded yet.
func (c *Client) session() (*http.Cookie, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.sid == nil {
		return nil, ErrUnauthenticated
	}
	return c.sid, nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	// The WebUI rejects requests with a foreign Referer outright.
	req.Header.Set("Referer", c.baseURL)
	if c.basicUser != "" {
		req.SetBasicAuth(c.basicUser, c.basicPass)
	}
}

// doRequest performs an authenticated request and returns the response body.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	sid, err := c.session()
	if err != nil {
		return nil, err
	}

	requestURL := c.baseURL + apiBase + endpoint
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.setCommonHeaders(req)
	req.AddCookie(sid)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusForbidden {
		// Session expired or revoked server-side.
		return nil, ErrUnauthenticated
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	return respBody, nil
}

// get performs an authenticated GET with optional query parameters.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	return c.doRequest(ctx, http.MethodGet, endpoint, query, nil, "")
}

// postForm performs an authenticated POST with url-encoded form values.
func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	return c.doRequest(ctx, http.MethodPost, endpoint, nil, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}
