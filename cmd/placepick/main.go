// Command placepick looks up places on GeoNames and turns the one picked
// into a compact stored value.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/placepick/internal/adapters/driven/config/file"
	"github.com/custodia-labs/placepick/internal/adapters/driven/geocoder/geonames"
	"github.com/custodia-labs/placepick/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/placepick/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/placepick/internal/adapters/driving/cli"
	"github.com/custodia-labs/placepick/internal/core/ports/driven"
	"github.com/custodia-labs/placepick/internal/core/services"
	"github.com/custodia-labs/placepick/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// envUsername overrides the configured GeoNames account.
const envUsername = "PLACEPICK_GEONAMES_USERNAME"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configDir, err := file.DefaultConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: locating config directory: %v\n", err)
		return err
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading settings: %v\n", err)
		return err
	}
	if username := os.Getenv(envUsername); username != "" {
		settings.GeoNames.Username = username
	}

	geocoder := geonames.NewClient(settings.GeoNames)

	selectionStore, closeStore := openSelectionStore(filepath.Join(configDir, "data"))
	defer closeStore()

	pickerService := services.NewPickerService(geocoder, settings.Picker)
	defer pickerService.Close()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Lookup:    services.NewLookupService(geocoder, settings.Picker),
		Selection: services.NewSelectionService(selectionStore),
		Settings:  settingsService,
	})
	cli.SetTUIConfig(&cli.TUIConfig{
		Picker:   pickerService,
		Settings: settingsService,
		Reloader: watchReloader{watcher: file.NewWatcher(configStore)},
		LogPath:  filepath.Join(configDir, "placepick.log"),
	})

	// cobra prints the error itself.
	return cli.Execute(ctx)
}

// openSelectionStore opens the SQLite store, falling back to an in-memory
// store so lookups keep working when the database cannot be opened.
func openSelectionStore(dataDir string) (driven.SelectionStore, func()) {
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("selections will not be kept after exit: %v", err)
		return memory.NewSelectionStore(), func() {}
	}
	return store.SelectionStore(), func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing selection store: %v", err)
		}
	}
}

// watchReloader exposes file.Watcher as a cli.ConfigReloader.
type watchReloader struct {
	watcher *file.Watcher
}

func (r watchReloader) Reloads(ctx context.Context) (<-chan error, error) {
	events, err := r.watcher.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan error)
	go func() {
		defer close(out)
		for ev := range events {
			select {
			case out <- ev.Err:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

var _ cli.ConfigReloader = watchReloader{}
