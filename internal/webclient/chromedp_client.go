package webclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/raysh454/visit/internal/logging"
	"github.com/raysh454/visit/internal/urlutil"
)

// ChromedpClient renders pages in a headless browser and returns the final
// DOM as the response body. Only GET is supported.
type ChromedpClient struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	idleAfter   time.Duration
	timeout     time.Duration
	logger      logging.Logger
}

// NewChromedpClient prepares a browser allocator. Chrome itself is started
// lazily by the first Do.
func NewChromedpClient(cfg Config, logger logging.Logger) (*ChromedpClient, error) {
	if logger == nil {
		logger = logging.Nop{}
	}
	componentLogger := logger.With(logging.Field{Key: "backend", Value: string(ClientChromedp)})

	idleAfter := cfg.IdleAfter
	if idleAfter < 0 {
		return nil, fmt.Errorf("negative idle_after %s", idleAfter)
	}
	if idleAfter == 0 {
		idleAfter = DefaultConfig().IdleAfter
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("negative timeout %s", cfg.Timeout)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Flag("headless", cfg.Headless))
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	componentLogger.Debug("created chromedp webclient",
		logging.Field{Key: "idle_after", Value: idleAfter.String()},
		logging.Field{Key: "headless", Value: cfg.Headless})

	return &ChromedpClient{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		idleAfter:   idleAfter,
		timeout:     cfg.Timeout,
		logger:      componentLogger,
	}, nil
}

// inflight is the set of outstanding requests keyed by RequestID. Chrome
// reuses the ID across redirect hops and reports a single
// LoadingFinished/LoadingFailed at the end of the chain.
type inflight struct {
	mu   sync.Mutex
	reqs map[network.RequestID]struct{}
}

// observe applies one network event and reports whether it completed a
// request and left nothing outstanding.
func (f *inflight) observe(ev any) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reqs == nil {
		f.reqs = make(map[network.RequestID]struct{})
	}

	var done network.RequestID
	switch e := ev.(type) {
	case *network.EventRequestWillBeSent:
		f.reqs[e.RequestID] = struct{}{}
		return false
	case *network.EventLoadingFinished:
		done = e.RequestID
	case *network.EventLoadingFailed:
		done = e.RequestID
	default:
		return false
	}
	delete(f.reqs, done)
	return len(f.reqs) == 0
}

func (f *inflight) idle() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs) == 0
}

// waitNetworkIdle returns a channel that is closed once no request has been
// in flight for idleAfter, and a func that arms the idle timer by hand for
// pages that never touch the network. Must be called before navigation.
func waitNetworkIdle(ctx context.Context, idleAfter time.Duration) (<-chan struct{}, func()) {
	idleChan := make(chan struct{})
	var reqs inflight
	var timer *time.Timer
	var timerMutex sync.Mutex
	var once sync.Once

	startTimer := func() {
		timerMutex.Lock()
		defer timerMutex.Unlock()

		if timer != nil {
			timer.Stop()
		}

		timer = time.AfterFunc(idleAfter, func() {
			if reqs.idle() {
				once.Do(func() { close(idleChan) })
			}
		})
	}

	chromedp.ListenTarget(ctx, func(ev any) {
		if reqs.observe(ev) {
			startTimer()
		}
	})

	arm := func() {
		if reqs.idle() {
			startTimer()
		}
	}

	return idleChan, arm
}

// documentResponse records the status and headers of the top-level document.
type documentResponse struct {
	mu      sync.Mutex
	seen    bool
	status  int
	text    string
	headers http.Header
}

func (d *documentResponse) listen(ctx context.Context) {
	chromedp.ListenTarget(ctx, func(ev any) {
		e, ok := ev.(*network.EventResponseReceived)
		if !ok || e.Type != network.ResourceTypeDocument || e.Response == nil {
			return
		}
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.seen {
			return
		}
		d.seen = true
		d.status = int(e.Response.Status)
		d.text = e.Response.StatusText
		d.headers = make(http.Header, len(e.Response.Headers))
		for k, v := range e.Response.Headers {
			d.headers.Set(k, fmt.Sprint(v))
		}
	})
}

// result returns the code, a net/http style status line and the headers.
func (d *documentResponse) result() (int, string, http.Header) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.seen {
		// about: and data: URLs produce no network response.
		return http.StatusOK, "200 OK", http.Header{}
	}
	status := ""
	if d.text != "" {
		status = fmt.Sprintf("%d %s", d.status, d.text)
	}
	return d.status, status, d.headers
}

func (c *ChromedpClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	method := strings.ToUpper(req.Method)
	if method != "" && method != http.MethodGet {
		return nil, fmt.Errorf("method %s not supported by chromedp backend", method)
	}

	idleAfter := c.idleAfter
	if v, ok := req.Options["idle_after"]; ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse idle_after option: %w", err)
		}
		idleAfter = d
	}

	if c.timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, c.timeout)
		defer cancelTimeout()
	}

	tabCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	c.logger.Debug("navigating",
		logging.Field{Key: "url", Value: urlutil.Display(req.URL)})

	var doc documentResponse
	doc.listen(tabCtx)
	idle, armIdle := waitNetworkIdle(tabCtx, idleAfter)

	actions := []chromedp.Action{network.Enable()}
	if len(req.Headers) > 0 {
		extra := make(network.Headers, len(req.Headers))
		for k := range req.Headers {
			extra[k] = req.Headers.Get(k)
		}
		actions = append(actions, network.SetExtraHTTPHeaders(extra))
	}
	actions = append(actions, chromedp.Navigate(req.URL))

	if err := chromedp.Run(tabCtx, actions...); err != nil {
		c.logger.Warn("navigation failed",
			logging.Field{Key: "url", Value: urlutil.Display(req.URL)},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, fmt.Errorf("navigate: %w", err)
	}

	armIdle()

	select {
	case <-idle:
	case <-tabCtx.Done():
		if ctx.Err() != nil {
			return nil, fmt.Errorf("wait for network idle: %w", ctx.Err())
		}
		return nil, fmt.Errorf("wait for network idle: %w", tabCtx.Err())
	}

	var html string
	if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &html)); err != nil {
		return nil, fmt.Errorf("capture html: %w", err)
	}

	code, status, headers := doc.result()
	return &Response{
		Request:    req,
		Headers:    headers,
		Body:       []byte(html),
		StatusCode: code,
		Status:     status,
		FetchedAt:  time.Now(),
	}, nil
}

// Get is a convenience method for simple GET requests
func (c *ChromedpClient) Get(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, URL: url})
}

func (c *ChromedpClient) Close() error {
	c.logger.Debug("closing chromedp webclient")
	c.allocCancel()
	return nil
}
