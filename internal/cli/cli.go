package cli

import (
	"flag"
	"fmt"
	"io"
)

// CLIArgs are the optional command-line arguments. The target URL is not
// among them; running without arguments is the normal case.
type CLIArgs struct {
	// ConfigPath points at a YAML config file. Empty means search defaults.
	ConfigPath string

	// LogLevel overrides logging.level from config when non-empty.
	LogLevel string

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns CLIArgs. Use in tests by passing
// arbitrary slices. The function is deterministic and does not read os.Args.
// Usage text on error goes to errOut; pass nil to discard it.
func ParseArgs(name string, args []string, errOut io.Writer) (*CLIArgs, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if errOut == nil {
		errOut = io.Discard
	}
	fs.SetOutput(errOut)

	var (
		configPath = fs.String("config", "", "Path to a YAML config file")
		logLevel   = fs.String("log-level", "", "Log level override: debug|info|warn|error")
	)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return &CLIArgs{
		ConfigPath: *configPath,
		LogLevel:   *logLevel,
		RawArgs:    args,
	}, nil
}
