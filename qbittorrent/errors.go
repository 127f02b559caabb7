package qbittorrent

import (
	"errors"
	"fmt"
)

// Common errors returned by the qBittorrent client.
var (
	// ErrUnauthenticated is returned when a call is made without a valid
	// session, either because Login was never called or the session expired.
	ErrUnauthenticated = errors.New("not authenticated with qBittorrent")

	// ErrInvalidCredentials is returned when the WebUI rejects the login.
	ErrInvalidCredentials = errors.New("invalid qBittorrent credentials")

	// ErrBanned is returned when the WebUI has banned this IP after too many
	// failed login attempts.
	ErrBanned = errors.New("banned from qBittorrent WebUI")
)

// APIError represents a non-success response from the WebUI API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("qBittorrent API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("qBittorrent API returned status %d: %s", e.StatusCode, e.Body)
}
