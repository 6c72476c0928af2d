package webclient

import (
	"net/http"
	"time"
)

type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
	// Options contains backend-specific options like "idle_after": "500ms" for chromedp
	Options map[string]string
}

type Response struct {
	Request    *Request
	Headers    http.Header
	Body       []byte
	StatusCode int
	// Status is the status line as net/http reports it, e.g. "404 Not Found".
	// Empty when the backend did not see a reason phrase.
	Status    string
	FetchedAt time.Time
}
