package download

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cavaliercoder/grab"
)

// HTTPError is returned by Fetch when a request fails.  StatusCode is the
// HTTP status the server replied with, or 0 if we never got a reply.
type HTTPError struct {
	URL        string
	StatusCode int
	Err        error
}

func (err *HTTPError) Error() string {
	if err.StatusCode != 0 {
		return fmt.Sprintf("%s: server replied with %d", err.URL, err.StatusCode)
	}
	return fmt.Sprintf("%s: %v", err.URL, err.Err)
}

func (err *HTTPError) Unwrap() error {
	return err.Err
}

// IsNotFound returns true if err is an HTTPError for a 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// StatusCode returns the HTTP status carried by err, or 0 if there is none.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

func newHTTPError(url string, resp *http.Response, err error) *HTTPError {
	result := &HTTPError{URL: url, Err: err}

	var statusErr grab.StatusCodeError
	if errors.As(err, &statusErr) {
		result.StatusCode = int(statusErr)
	} else if resp != nil && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		result.StatusCode = resp.StatusCode
	}

	return result
}
