package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lawnchairsociety/delve/internal/archive"
	"github.com/lawnchairsociety/delve/internal/config"
	"github.com/lawnchairsociety/delve/internal/logger"
	"github.com/lawnchairsociety/delve/internal/preview"
)

func main() {
	configFile := flag.String("config", "data/delve.yaml", "Path to config YAML file")
	addr := flag.String("addr", "", "Listen address (default: preview.addr from config)")
	store := flag.Bool("archive", false, "Store every served dungeon in the configured archive")
	flag.Parse()

	logConfig, err := logger.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := logger.Initialize(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	if err := run(*configFile, *addr, *store); err != nil {
		logger.Error("Preview server stopped", "error", err)
		logger.Close()
		os.Exit(1)
	}
	logger.Close()
}

func run(configFile, addr string, store bool) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Preview.Addr = addr
	}

	gen, bestiary, err := cfg.NewGenerator()
	if err != nil {
		return err
	}
	logger.Info("Generator ready",
		"monsters", len(bestiary.Monsters),
		"arches", cfg.Generator.ArchCount)

	srv := preview.NewServer(gen, cfg.Preview)

	if store {
		a, err := archive.Open(cfg.Archive)
		if err != nil {
			return err
		}
		defer a.Close()
		srv.SetArchiver(a)
		logger.Info("Archiving served dungeons", "driver", cfg.Archive.Driver)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		return err
	}
	logger.Info("Preview server shut down")
	return nil
}
