package visitor

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// StatusError reports a response whose status code is outside 2xx.
type StatusError struct {
	StatusCode int
	// Status is the status line the server sent, e.g. "404 Not Found".
	// It may be empty.
	Status string
	URL    string
}

// Reason is the server's reason phrase, falling back to the standard text
// for StatusCode.
func (e *StatusError) Reason() string {
	reason := strings.TrimSpace(strings.TrimPrefix(e.Status, strconv.Itoa(e.StatusCode)))
	if reason == "" {
		reason = http.StatusText(e.StatusCode)
	}
	if reason == "" {
		reason = "Unknown Status"
	}
	return reason
}

func (e *StatusError) Error() string {
	reason := e.Reason()
	switch {
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return fmt.Sprintf("%d Client Error: %s for url: %s", e.StatusCode, reason, e.URL)
	case e.StatusCode >= 500 && e.StatusCode < 600:
		return fmt.Sprintf("%d Server Error: %s for url: %s", e.StatusCode, reason, e.URL)
	default:
		return fmt.Sprintf("%d Error: %s for url: %s", e.StatusCode, reason, e.URL)
	}
}

// checkStatus returns a *StatusError unless code is 2xx.
func checkStatus(code int, status, url string) error {
	if code >= 200 && code < 300 {
		return nil
	}
	return &StatusError{StatusCode: code, Status: status, URL: url}
}
