package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/raysh454/visit/internal/cli"
	"github.com/raysh454/visit/internal/config"
	"github.com/raysh454/visit/internal/logging"
	"github.com/raysh454/visit/internal/visitor"
	"github.com/raysh454/visit/internal/webclient"
)

// Exit codes returned by Main.
const (
	ExitOK    = 0
	ExitUsage = 2
)

// Application is the runtime state container for one invocation.
// It holds config, parsed CLI args and the services built from them.
type Application struct {
	Config *config.Config
	Args   *cli.CLIArgs
	Logger logging.Logger
	Client webclient.WebClient

	visitor *visitor.Visitor
}

// NewApplication constructs an Application from already-built parts, which
// keeps it easy to drive from tests with a dummy client.
func NewApplication(cfg *config.Config, args *cli.CLIArgs, logger logging.Logger, wc webclient.WebClient, out io.Writer) *Application {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Application{
		Config:  cfg,
		Args:    args,
		Logger:  logger,
		Client:  wc,
		visitor: visitor.New(wc, visitor.WithOutput(out), visitor.WithLogger(logger)),
	}
}

// Build loads configuration for args and constructs the configured backend.
// Logs go to errOut; visit output goes to out.
func Build(args *cli.CLIArgs, out, errOut io.Writer) (*Application, error) {
	if args == nil {
		args = &cli.CLIArgs{}
	}

	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if args.LogLevel != "" {
		if _, err := logging.ParseLevel(args.LogLevel); err != nil {
			return nil, fmt.Errorf("log level flag: %w", err)
		}
		cfg.Logging.Level = args.LogLevel
	}

	logger := logging.NewLogger(errOut, cfg.Logging.ToLogging("visit"))

	wc, err := webclient.NewWebClient(cfg.WebClient.ToWebClient(), logger)
	if err != nil {
		return nil, fmt.Errorf("build webclient: %w", err)
	}

	return NewApplication(cfg, args, logger, wc, out), nil
}

// Run performs the single visit. Request failures are printed by the
// visitor, so Run always reports ExitOK.
func (a *Application) Run(ctx context.Context, url string) int {
	a.Logger.Debug("application starting",
		logging.Field{Key: "backend", Value: a.Config.WebClient.Backend})
	a.visitor.Visit(ctx, url)
	return ExitOK
}

// Shutdown releases the web client.
func (a *Application) Shutdown() error {
	if a == nil {
		return errors.New("application is nil")
	}
	if a.Client == nil {
		return nil
	}
	return a.Client.Close()
}

// Main is the whole program behind the visit command: parse flags, build the
// application and visit url once. Only flag misuse yields a non-zero code;
// setup failures are reported the same way as request failures.
func Main(ctx context.Context, name string, argv []string, url string, out, errOut io.Writer) int {
	args, err := cli.ParseArgs(name, argv, errOut)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		fmt.Fprintln(errOut, err)
		return ExitUsage
	}

	a, err := Build(args, out, errOut)
	if err != nil {
		fmt.Fprintf(out, "%s%v\n", visitor.ErrorPrefix, err)
		return ExitOK
	}
	defer func() {
		if err := a.Shutdown(); err != nil {
			a.Logger.Warn("shutdown", logging.Field{Key: "error", Value: err.Error()})
		}
	}()

	return a.Run(ctx, url)
}
