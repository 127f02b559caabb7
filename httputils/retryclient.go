// Package httputils builds http.Clients with retry and rate-limit behavior
// for callers that want more resilience than the default transport.
package httputils

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/ratelimit"
)

// NewRetryableHTTPClient returns an http.Client that retries transient
// failures and optionally paces requests through the given rate limiter.
// A non-nil tlsConfig is installed on the underlying transport; it must be
// passed here rather than set on the returned client, whose Transport is the
// retrying round tripper itself.
func NewRetryableHTTPClient(timeout time.Duration, retryMax int, rl ratelimit.Limiter, tlsConfig *tls.Config) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = retryMax
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.RequestLogHook = func(l retryablehttp.Logger, request *http.Request, i int) {
		if rl != nil {
			rl.Take()
		}
	}
	retryClient.HTTPClient.Timeout = timeout
	retryClient.Logger = nil

	if tlsConfig != nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = tlsConfig
		retryClient.HTTPClient.Transport = transport
	}

	return retryClient.StandardClient()
}
