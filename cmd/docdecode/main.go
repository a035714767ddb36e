// Command docdecode decodes office documents into paginated plain text.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/docdecode/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docdecode/internal/adapters/driving/cli"
	"github.com/custodia-labs/docdecode/internal/core/services"
	"github.com/custodia-labs/docdecode/internal/decoders/builtin"
	"github.com/custodia-labs/docdecode/internal/logger"
)

// version is set at build time through -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetFactory(buildServices)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// buildServices wires the config store, settings and decode stack.
func buildServices(configPath string) (*cli.Services, error) {
	var (
		store *file.ConfigStore
		err   error
	)
	if configPath != "" {
		store, err = file.Open(configPath)
	} else {
		store, err = file.NewConfigStore("")
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if settings.Logging.Verbose {
		logger.SetVerbose(true)
	}
	logger.Debug("config: %s", store.Path())

	registry := builtin.NewRegistry(settings.Decode)
	decodeService := services.NewDecodeService(registry, settings.Decode.MaxBytes)

	return &cli.Services{
		Decode:   decodeService,
		Settings: settingsService,
	}, nil
}
