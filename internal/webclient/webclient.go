package webclient

import (
	"context"
)

// WebClient executes requests against a concrete backend. Backends return
// the response as-is; deciding whether a status code is a failure is left to
// the caller.
type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)

	// Get is a convenience method for simple GET requests
	Get(ctx context.Context, url string) (*Response, error)

	Close() error
}
