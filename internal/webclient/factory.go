package webclient

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/raysh454/visit/internal/logging"
)

// BackendConstructor builds one kind of WebClient.
type BackendConstructor func(cfg Config, logger logging.Logger) (WebClient, error)

var (
	mu       sync.RWMutex
	registry = map[string]BackendConstructor{}
)

// backendName folds a configured name onto a registry key.
func backendName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RegisterBackend adds ctor under name, replacing any earlier entry. Blank
// names and nil constructors are ignored.
func RegisterBackend(name string, ctor BackendConstructor) {
	key := backendName(name)
	if key == "" || ctor == nil {
		return
	}
	mu.Lock()
	registry[key] = ctor
	mu.Unlock()
}

func lookupBackend(key string) (BackendConstructor, bool) {
	mu.RLock()
	defer mu.RUnlock()
	ctor, ok := registry[key]
	return ctor, ok && ctor != nil
}

// NewWebClient builds the backend named by cfg.Client, nethttp when blank.
func NewWebClient(cfg Config, logger logging.Logger) (WebClient, error) {
	key := backendName(string(cfg.Client))
	if key == "" {
		key = string(ClientNetHTTP)
	}

	ctor, ok := lookupBackend(key)
	if !ok {
		return nil, fmt.Errorf("webclient backend %q not registered: available backends=%v", key, ListBackends())
	}

	wc, err := ctor(cfg, logger)
	switch {
	case err != nil:
		return nil, fmt.Errorf("failed to construct webclient backend %q: %w", key, err)
	case wc == nil:
		return nil, errors.New("webclient constructor returned nil")
	}
	return wc, nil
}

// ListBackends reports the registered names in sorted order.
func ListBackends() []string {
	mu.RLock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	mu.RUnlock()

	sort.Strings(names)
	return names
}
