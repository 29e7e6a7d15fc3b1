package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/Prabhat9801/libman/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	if level, err := log.ParseLevel(config.Log.Level); err == nil {
		shared.SetLogLevel(logger, level)
	}

	httpClient := &http.Client{
		Timeout: time.Duration(config.API.TimeoutSeconds) * time.Second,
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "libman",
		Usage:    "Manage book circulation against the library service",
		Version:  "1.0.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
