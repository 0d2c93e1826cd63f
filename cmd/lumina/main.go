package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/luminaai/lumina/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	credsPath := flag.String("creds", "", "override credentials path (optional)")
	pollSeconds := flag.Int("poll", 0, "status refresh interval in seconds (optional)")
	flag.Parse()

	// Local .env is optional; environment variables win over the config file.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, CredsPath: *credsPath}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "lumina: %v\n", err)
		return 1
	}
	return 0
}
