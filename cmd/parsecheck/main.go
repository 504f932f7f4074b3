package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"parsecheck/internal/core/config"
	"parsecheck/internal/shared/observability"
	"parsecheck/internal/watcher"
)

var (
	configPath = flag.String("config", "", "Path to config file")
	watch      = flag.Bool("watch", false, "Re-validate files as they change")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("parsecheck v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if paths := flag.Args(); len(paths) > 0 {
		cfg.Paths = paths
	}

	ctx := context.Background()

	if cfg.Observability.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint)
		if err != nil {
			slog.Error("failed to init tracing", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				slog.Warn("trace shutdown failed", "error", err)
			}
		}()
	}

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}

	var obs *ObservabilityServer
	if cfg.Observability.MetricsAddr != "" {
		obs = NewObservabilityServer(cfg.Observability.MetricsAddr)
		obs.Start()
		defer obs.Stop(ctx)
	}

	files, err := app.ScanDirectories(cfg.Paths)
	if err != nil {
		slog.Error("failed to scan directories", "error", err)
		os.Exit(1)
	}

	failures := app.ValidateAll(ctx, files)

	if !*watch {
		if failures > 0 {
			os.Exit(1)
		}
		return
	}

	w, err := watcher.New(cfg.Watch.Debounce, cfg.Watch.MaxRevalidates,
		cfg.Exclude.Dirs, cfg.Exclude.Files, func(paths []string) {
			app.Revalidate(ctx, paths)
		})
	if err != nil {
		slog.Error("failed to create watcher", "error", err)
		os.Exit(1)
	}
	defer w.Close()

	if err := w.Watch(cfg.Paths); err != nil {
		slog.Error("failed to watch paths", "error", err)
		os.Exit(1)
	}
	slog.Info("watching for changes", "paths", cfg.Paths)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}
