// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/raysh454/visit/internal/logging"
	"github.com/raysh454/visit/internal/webclient"
)

// ─── Logger ────────────────────────────────────────────────────────────

// Entry is one recorded log call.
type Entry struct {
	Level  string
	Msg    string
	Fields []logging.Field
}

// DummyLogger implements logging.Logger with in-memory recording. Children
// created by With share the parent's record and prepend their fields.
type DummyLogger struct {
	once    sync.Once
	mu      *sync.Mutex
	entries *[]Entry
	fields  []logging.Field
}

func (l *DummyLogger) init() {
	l.once.Do(func() {
		if l.mu == nil {
			l.mu = &sync.Mutex{}
			l.entries = &[]Entry{}
		}
	})
}

func (l *DummyLogger) record(level, msg string, fields []logging.Field) {
	l.init()
	l.mu.Lock()
	defer l.mu.Unlock()
	all := append(append([]logging.Field(nil), l.fields...), fields...)
	*l.entries = append(*l.entries, Entry{Level: level, Msg: msg, Fields: all})
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) { l.record("debug", msg, fields) }
func (l *DummyLogger) Info(msg string, fields ...logging.Field)  { l.record("info", msg, fields) }
func (l *DummyLogger) Warn(msg string, fields ...logging.Field)  { l.record("warn", msg, fields) }
func (l *DummyLogger) Error(msg string, fields ...logging.Field) { l.record("error", msg, fields) }

func (l *DummyLogger) With(fields ...logging.Field) logging.Logger {
	l.init()
	return &DummyLogger{
		mu:      l.mu,
		entries: l.entries,
		fields:  append(append([]logging.Field(nil), l.fields...), fields...),
	}
}

// Entries returns a copy of everything logged so far.
func (l *DummyLogger) Entries() []Entry {
	l.init()
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), *l.entries...)
}

// Messages returns the messages logged at level.
func (l *DummyLogger) Messages(level string) []string {
	var out []string
	for _, e := range l.Entries() {
		if e.Level == level {
			out = append(out, e.Msg)
		}
	}
	return out
}

// FieldValues returns every value logged under key, in order.
func (l *DummyLogger) FieldValues(key string) []any {
	var out []any
	for _, e := range l.Entries() {
		for _, f := range e.Fields {
			if f.Key == key {
				out = append(out, f.Value)
			}
		}
	}
	return out
}

// ─── WebClient ─────────────────────────────────────────────────────────

// DummyWebClient implements webclient.WebClient.
// By default it returns body "ok:<url>" with status 200.
// Set FailURLs[url] = true to force an error, or StatusFor[url] to force a code.
type DummyWebClient struct {
	ResponseDelay time.Duration
	FailURLs      map[string]bool
	StatusFor     map[string]int
	mu            sync.Mutex
	Requests      []*webclient.Request
	Closed        bool
}

// ErrDummyFetch is returned for URLs listed in FailURLs.
var ErrDummyFetch = errors.New("dummy fetch fail")

func (d *DummyWebClient) Do(ctx context.Context, req *webclient.Request) (*webclient.Response, error) {
	if d.ResponseDelay > 0 {
		select {
		case <-time.After(d.ResponseDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	d.mu.Lock()
	d.Requests = append(d.Requests, req)
	d.mu.Unlock()

	if d.FailURLs != nil && d.FailURLs[req.URL] {
		return nil, ErrDummyFetch
	}

	status := http.StatusOK
	if code, ok := d.StatusFor[req.URL]; ok {
		status = code
	}

	return &webclient.Response{
		Request:    req,
		Body:       []byte("ok:" + req.URL),
		StatusCode: status,
		FetchedAt:  time.Now(),
	}, nil
}

func (d *DummyWebClient) Get(ctx context.Context, url string) (*webclient.Response, error) {
	return d.Do(ctx, &webclient.Request{Method: http.MethodGet, URL: url})
}

func (d *DummyWebClient) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Closed = true
	return nil
}

// RequestsSnapshot returns a copy of the recorded requests.
func (d *DummyWebClient) RequestsSnapshot() []*webclient.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*webclient.Request(nil), d.Requests...)
}
