// Command visit sends one GET request to a fixed URL and prints the response
// body, or a line describing why the request failed.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/raysh454/visit/internal/app"
)

const targetURL = "https://chilly-states-brush.loca.lt/spaces"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := app.Main(ctx, os.Args[0], os.Args[1:], targetURL, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
