package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysh454/visit/internal/webclient"
)

// chdirTemp moves into an empty directory so no stray visit.yaml is found.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "nethttp", cfg.WebClient.Backend)
	assert.Equal(t, time.Duration(0), cfg.WebClient.Timeout)
	assert.Equal(t, 2*time.Second, cfg.WebClient.IdleAfter)
	assert.True(t, cfg.WebClient.Headless)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 9999, cfg.DemoServer.Port)
}

func TestLoad_DefaultMatchesLoad(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLFileInWorkingDir(t *testing.T) {
	dir := chdirTemp(t)
	writeFile(t, filepath.Join(dir, "visit.yaml"), `
webclient:
  backend: chromedp
  idle_after: 500ms
  headless: false
logging:
  level: debug
  format: json
`)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "chromedp", cfg.WebClient.Backend)
	assert.Equal(t, 500*time.Millisecond, cfg.WebClient.IdleAfter)
	assert.False(t, cfg.WebClient.Headless)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "webclient:\n  timeout: 15s\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.WebClient.Timeout)
}

func TestLoad_ExplicitPathMissing_ReturnsError(t *testing.T) {
	dir := chdirTemp(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML_ReturnsError(t *testing.T) {
	dir := chdirTemp(t)
	writeFile(t, filepath.Join(dir, "visit.yaml"), "webclient: [unterminated\n")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	writeFile(t, filepath.Join(dir, "visit.yaml"), "logging:\n  level: info\n")
	t.Setenv("VISIT_LOGGING_LEVEL", "error")
	t.Setenv("VISIT_WEBCLIENT_TIMEOUT", "3s")
	t.Setenv("VISIT_WEBCLIENT_HEADLESS", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, 3*time.Second, cfg.WebClient.Timeout)
	assert.False(t, cfg.WebClient.Headless)
}

func TestLoad_InvalidEnv_FailsValidation(t *testing.T) {
	chdirTemp(t)
	t.Setenv("VISIT_WEBCLIENT_BACKEND", "curl")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "webclient.backend")
}

// ---------------------------------------------------------------------------
// Validate
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults ok", func(*Config) {}, ""},
		{"empty backend ok", func(c *Config) { c.WebClient.Backend = "" }, ""},
		{"unknown backend", func(c *Config) { c.WebClient.Backend = "wget" }, "webclient.backend"},
		{"negative timeout", func(c *Config) { c.WebClient.Timeout = -time.Second }, "webclient.timeout"},
		{"negative idle", func(c *Config) { c.WebClient.IdleAfter = -time.Second }, "webclient.idle_after"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"demoserver port ignored", func(c *Config) { c.DemoServer.Port = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDemoServerConfig_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, DemoServerConfig{Port: 9999}.Validate())
	assert.NoError(t, DemoServerConfig{Port: 65535}.Validate())
	assert.ErrorContains(t, DemoServerConfig{Port: 0}.Validate(), "demoserver.port")
	assert.ErrorContains(t, DemoServerConfig{Port: 70000}.Validate(), "demoserver.port")
}

func TestLoad_BadDemoServerPortDoesNotBlockVisit(t *testing.T) {
	chdirTemp(t)
	t.Setenv("VISIT_DEMOSERVER_PORT", "0")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.DemoServer.Port)
	assert.Error(t, cfg.DemoServer.Validate())
}

func TestToWebClient(t *testing.T) {
	t.Parallel()

	wc := WebClientConfig{Backend: " ChromeDP ", Timeout: time.Second, IdleAfter: time.Millisecond, Headless: true}.ToWebClient()
	assert.Equal(t, webclient.ClientChromedp, wc.Client)
	assert.Equal(t, time.Second, wc.Timeout)
	assert.Equal(t, time.Millisecond, wc.IdleAfter)
	assert.True(t, wc.Headless)
}

func TestToLogging(t *testing.T) {
	t.Parallel()

	opts := LoggingConfig{Level: "info", Format: "json"}.ToLogging("visit")
	assert.Equal(t, "info", opts.Level)
	assert.Equal(t, "json", opts.Format)
	assert.Equal(t, "visit", opts.App)
}
