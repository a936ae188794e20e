// Package speech wraps the third-party text-to-speech and transcription
// HTTP APIs and the local playback and synthesis fallbacks.
package speech

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNoAPIKey is returned before any request is made when the key is unset.
var ErrNoAPIKey = errors.New("API key is not configured")

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API returned %d: %s", e.StatusCode, e.Body)
}

// KeyFunc returns the current API key. Keys are read per request so a key
// changed in settings takes effect without rebuilding clients.
type KeyFunc func() string

func defaultClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// checkResponse turns a non-2xx response into an *APIError. The body is
// truncated so a large HTML error page does not flood the logs.
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
