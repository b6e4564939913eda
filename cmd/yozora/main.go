package main

import (
	"fmt"
	"os"
	"time"

	"github.com/yozora-app/yozora/internal/config"
	"github.com/yozora-app/yozora/internal/log"
	"github.com/yozora-app/yozora/internal/repository/catalog"
	"github.com/yozora-app/yozora/internal/service"
	"github.com/yozora-app/yozora/internal/session"
	"github.com/yozora-app/yozora/internal/ui/tui"
	"github.com/yozora-app/yozora/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// It is unrecoverable if we cannot produce an application config
		_, _ = fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialise logger
	logger, err := log.New(log.Config{
		Level:    cfg.Logging.Level,
		FilePath: cfg.Logging.FilePath,
	})
	if err != nil {
		// Probably should let the app continue without logging, but for now this is acceptable.
		_, _ = fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	// Set the default global logger
	log.SetDefaultLogger(logger)

	log.Info("Starting up Yozora", "version", version.GetVersion(), "build_time", version.GetBuildTime())

	// The API client reads the session token lazily so that requests made after a
	// login or logout pick up the change without rebuilding the client.
	var store *session.Store
	client := catalog.NewClient(
		cfg.API.BaseURL,
		time.Duration(cfg.API.TimeoutSeconds)*time.Second,
		func() string {
			if store == nil {
				return ""
			}
			return store.Token()
		},
	)
	store = session.NewStore(client, config.NewTokenStore())
	svc := service.NewCatalogService(client)

	if err := tui.Run(cfg, store, svc); err != nil {
		log.Error("Unhandled error while running TUI", "error", err)
		os.Exit(1)
	}

	log.Info("Yozora shutting down.  Goodbye!")
}
