package qbittorrent

import (
	"crypto/tls"
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely. Useful for
// injecting a retrying or rate-limited transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithBasicAuth sends HTTP basic auth credentials with every request, for
// WebUIs placed behind a reverse proxy that requires them.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.basicUser = username
		c.basicPass = password
	}
}

// WithTLSSkipVerify disables certificate verification.
// Use with caution and only for development/testing.
func WithTLSSkipVerify() Option {
	return func(c *Client) {
		transport, ok := c.httpClient.Transport.(*http.Transport)
		if !ok {
			transport = http.DefaultTransport.(*http.Transport).Clone()
		}
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{}
		}
		transport.TLSClientConfig.InsecureSkipVerify = true
		c.httpClient.Transport = transport
	}
}
