package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"verbose", slog.LevelWarn, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger_JSONFormat_WritesFieldsAndApp(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	l := NewLogger(&buf, Options{Format: "json", Level: "info", App: "visit"})
	l.With(Field{Key: "component", Value: "visitor"}).Info("visit finished", Field{Key: "status", Value: 200})

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "visit finished", rec["msg"])
	assert.Equal(t, "visit", rec["app"])
	assert.Equal(t, "visitor", rec["component"])
	assert.EqualValues(t, 200, rec["status"])
}

func TestNewLogger_ComponentAppearsOnce(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	l := NewLogger(&buf, Options{Level: "debug", App: "visit"})
	l.With(Field{Key: "component", Value: "visitor"}).Debug("visiting")

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "component="), "got %q", out)
	assert.Contains(t, out, "app=visit ")
}

func TestNewLogger_DefaultLevelDropsInfo(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	l := NewLogger(&buf, Options{})
	l.Debug("hidden")
	l.Info("hidden too")
	assert.Zero(t, buf.Len())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSlogLogger_WithCarriesFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	l := NewLogger(&buf, Options{Level: "debug"})
	child := l.With(Field{Key: "backend", Value: "nethttp"})
	child.Debug("created")

	out := buf.String()
	assert.True(t, strings.Contains(out, "backend=nethttp"), "got %q", out)
}

func TestNop_DoesNotPanic(t *testing.T) {
	t.Parallel()
	var l Logger = Nop{}
	l.With(Field{Key: "k", Value: 1}).Error("ignored")
}
