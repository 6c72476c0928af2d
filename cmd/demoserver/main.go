// Command demoserver serves a local /spaces listing for trying out visit
// without the remote tunnel.
// Usage: go run ./cmd/demoserver [port]
// Default port: 9999, or demoserver.port from config.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/raysh454/visit/internal/config"
	"github.com/raysh454/visit/internal/demoserver"
	"github.com/raysh454/visit/internal/logging"
)

func main() {
	appCfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	cfg := demoserver.DefaultConfig()

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		appCfg.DemoServer.Port = port
	}
	if err := appCfg.DemoServer.Validate(); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	cfg.Port = appCfg.DemoServer.Port

	logOpts := appCfg.Logging.ToLogging("demoserver")
	if logOpts.Level == "warn" {
		logOpts.Level = "info"
	}
	logger := logging.NewLogger(os.Stderr, logOpts)

	fmt.Printf("Demo server on http://localhost:%d\n", cfg.Port)
	fmt.Printf("  GET /spaces        space listing\n")
	fmt.Printf("  GET /status/{code} respond with any status\n")
	fmt.Printf("  GET /health        liveness\n")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := demoserver.NewDemoServer(cfg, logger)
	if err := server.Start(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
