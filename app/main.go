package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/aladin-meta/app/aladin"
	"github.com/lysyi3m/aladin-meta/app/aladinapi"
	"github.com/lysyi3m/aladin-meta/app/api"
	"github.com/lysyi3m/aladin-meta/app/cfg"
	"github.com/lysyi3m/aladin-meta/app/database"
	"github.com/lysyi3m/aladin-meta/app/metadata"
	"github.com/lysyi3m/aladin-meta/app/prefs"
	"github.com/lysyi3m/aladin-meta/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		return
	}

	setupLogging(appCfg.Debug)

	slog.Info("Starting Aladin Meta server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	defaults, err := prefs.LoadDefaults(appCfg.PrefsFile)
	if err != nil {
		slog.Error("Failed to load preference defaults", "error", err)
		os.Exit(1)
	}

	prefsService := prefs.NewService(database.NewPreferenceRepository(db), defaults)
	current, err := prefsService.Load()
	if err != nil {
		slog.Error("Failed to load preferences", "error", err)
		os.Exit(1)
	}
	slog.Info("Preferences loaded", "store", prefs.StoreName, "mappings", len(current.GenreMappings), "max_downloads", current.MaxDownloads)

	httpClient := &http.Client{Timeout: appCfg.RequestTimeout}
	pool := tasks.NewPool(appCfg.WorkerCount, appCfg.TaskTimeout)
	cache := metadata.NewIdentifierCache()

	providers := []metadata.Provider{
		aladin.NewProvider(httpClient, pool, prefsService, cache, aladin.Options{
			UserAgent:     appCfg.UserAgent,
			MaxCandidates: appCfg.MaxCandidates,
		}),
	}
	if appCfg.TTBKey != "" {
		providers = append(providers, aladinapi.NewProvider(httpClient, cache, aladinapi.Options{
			TTBKey:    appCfg.TTBKey,
			UserAgent: appCfg.UserAgent,
		}))
	} else {
		slog.Info("Aladin API provider disabled (ALADIN_TTB_KEY not set)")
	}

	apiHandler := api.NewHandler(prefsService, cache, appCfg.Version, providers...)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: appCfg.TaskTimeout + appCfg.RequestTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port, "workers", pool.WorkerCount())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Aladin Meta server shutdown complete")
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}
