package webclient

import "time"

type Client string

const (
	ClientNetHTTP  Client = "nethttp"
	ClientChromedp Client = "chromedp"
)

// Config carries what the registered constructors need. It is filled from
// config.Config by the app package so webclient does not import it.
type Config struct {
	Client Client

	// Timeout bounds a whole nethttp request. Zero keeps the net/http
	// default, which is no timeout.
	Timeout time.Duration

	// IdleAfter is how long chromedp waits with no in-flight requests
	// before capturing the page.
	IdleAfter time.Duration

	// Headless runs Chrome without a window.
	Headless bool
}

// DefaultConfig mirrors the config package defaults.
func DefaultConfig() Config {
	return Config{
		Client:    ClientNetHTTP,
		IdleAfter: 2 * time.Second,
		Headless:  true,
	}
}
