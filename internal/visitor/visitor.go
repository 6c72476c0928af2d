// Package visitor performs a single GET against a URL and reports the
// outcome on a writer.
package visitor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/raysh454/visit/internal/logging"
	"github.com/raysh454/visit/internal/urlutil"
	"github.com/raysh454/visit/internal/webclient"
)

// RequestIDHeader carries the visit ID to the server.
const RequestIDHeader = "X-Request-Id"

// ErrorPrefix starts every failure line written by Visit.
const ErrorPrefix = "An error occurred: "

// Visitor fetches URLs through a WebClient. A Visitor holds no per-visit
// state, so successive visits do not influence each other.
type Visitor struct {
	wc     webclient.WebClient
	out    io.Writer
	logger logging.Logger
	newID  func() string
}

// Option customises a Visitor.
type Option func(*Visitor)

// WithOutput sets where bodies and error lines are written. Default os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(v *Visitor) { v.out = w }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logging.Logger) Option {
	return func(v *Visitor) { v.logger = l }
}

// WithIDGenerator replaces the UUID visit ID source.
func WithIDGenerator(f func() string) Option {
	return func(v *Visitor) { v.newID = f }
}

// New creates a Visitor using wc for every request.
func New(wc webclient.WebClient, opts ...Option) *Visitor {
	v := &Visitor{
		wc:     wc,
		out:    os.Stdout,
		logger: logging.Nop{},
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(v)
	}
	v.logger = v.logger.With(logging.Field{Key: "component", Value: "visitor"})
	return v
}

// Fetch issues one GET to url and returns the body for a 2xx response. Any
// other status yields a *StatusError; transport failures are returned
// wrapped.
func (v *Visitor) Fetch(ctx context.Context, url string) ([]byte, error) {
	if v.wc == nil {
		return nil, fmt.Errorf("visitor: webclient is nil")
	}

	id := v.newID()
	log := v.logger.With(
		logging.Field{Key: "visit_id", Value: id},
		logging.Field{Key: "url", Value: urlutil.Display(url)})

	headers := http.Header{}
	headers.Set(RequestIDHeader, id)

	start := time.Now()
	log.Debug("visiting")

	resp, err := v.wc.Do(ctx, &webclient.Request{
		Method:  http.MethodGet,
		URL:     url,
		Headers: headers,
	})
	if err != nil {
		log.Warn("visit failed", logging.Field{Key: "error", Value: urlutil.ErrorText(err)})
		return nil, err
	}

	log.Info("visit finished",
		logging.Field{Key: "status", Value: resp.StatusCode},
		logging.Field{Key: "bytes", Value: len(resp.Body)},
		logging.Field{Key: "elapsed", Value: time.Since(start).String()})

	if err := checkStatus(resp.StatusCode, resp.Status, url); err != nil {
		log.Warn("unsuccessful status", logging.Field{Key: "status", Value: resp.StatusCode})
		return nil, err
	}
	return resp.Body, nil
}

// Visit fetches url and writes the body, or a line describing the failure,
// to the configured output. It never returns an error and never panics on
// request failure.
func (v *Visitor) Visit(ctx context.Context, url string) {
	body, err := v.Fetch(ctx, url)
	if err != nil {
		v.write(ErrorPrefix + err.Error() + "\n")
		return
	}
	v.write(string(body) + "\n")
}

func (v *Visitor) write(s string) {
	if _, err := io.WriteString(v.out, s); err != nil {
		v.logger.Error("write output", logging.Field{Key: "error", Value: err.Error()})
	}
}
