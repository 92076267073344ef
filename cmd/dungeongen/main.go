package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/lawnchairsociety/delve/internal/archive"
	"github.com/lawnchairsociety/delve/internal/config"
	"github.com/lawnchairsociety/delve/internal/dice"
	"github.com/lawnchairsociety/delve/internal/dungeon"
	"github.com/lawnchairsociety/delve/internal/export"
	"github.com/lawnchairsociety/delve/internal/logger"
)

type options struct {
	configFile string
	seed       string
	outFile    string
	store      bool
	list       bool
	show       int64
}

func main() {
	var opts options
	flag.StringVar(&opts.configFile, "config", "data/delve.yaml", "Path to config YAML file")
	flag.StringVar(&opts.seed, "seed", "", "Seed: integers (e.g. 1,2,3) or a phrase (default: current time)")
	flag.StringVar(&opts.outFile, "out", "", "Write the dungeon as YAML to this file")
	flag.BoolVar(&opts.store, "archive", false, "Store the dungeon in the configured archive")
	flag.BoolVar(&opts.list, "list", false, "List archived dungeons and exit")
	flag.Int64Var(&opts.show, "show", 0, "Print an archived dungeon by id and exit")
	flag.Parse()

	logConfig, err := logger.LoadConfig(opts.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := logger.Initialize(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	err = run(context.Background(), opts)
	logger.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return err
	}

	if opts.list || opts.show != 0 {
		return browseArchive(ctx, cfg, opts.list, opts.show)
	}

	gen, _, err := cfg.NewGenerator()
	if err != nil {
		return err
	}

	seedLabel := opts.seed
	if seedLabel == "" {
		seedLabel = strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	logger.Always("Generating dungeon", "seed", seedLabel)

	d, err := gen.Generate(dice.ParseSeed(seedLabel))
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	fmt.Printf("Dungeon for seed %q (%d rooms)\n\n", seedLabel, d.RoomCount())
	printDungeon(d)

	if opts.outFile != "" {
		if err := export.WriteDungeon(opts.outFile, d, seedLabel); err != nil {
			return err
		}
		fmt.Printf("\nWrote %s\n", opts.outFile)
	}

	if opts.store {
		a, err := archive.Open(cfg.Archive)
		if err != nil {
			return err
		}
		defer a.Close()

		id, err := a.SaveDungeon(ctx, seedLabel, d)
		if err != nil {
			return err
		}
		fmt.Printf("\nArchived as dungeon %d\n", id)
	}
	return nil
}

// browseArchive lists archived dungeons or prints one of them
func browseArchive(ctx context.Context, cfg *config.Config, list bool, id int64) error {
	a, err := archive.Open(cfg.Archive)
	if err != nil {
		return err
	}
	defer a.Close()

	if list {
		summaries, err := a.ListDungeons(ctx)
		if err != nil {
			return err
		}
		for _, s := range summaries {
			fmt.Printf("%5d  %-30s %3d rooms  %s\n", s.ID, s.Seed, s.RoomCount, s.CreatedAt.Format(time.DateTime))
		}
		return nil
	}

	// Monsters print by name, so the bestiary is optional here.
	bestiary, _, err := cfg.LoadContent()
	if err != nil {
		logger.Warning("Printing archived dungeon without bestiary", "error", err)
	}
	d, err := a.LoadDungeon(ctx, id, bestiary)
	if err != nil {
		return err
	}
	printDungeon(d)
	return nil
}

func printDungeon(d *dungeon.Dungeon) {
	for i, room := range d.Rooms() {
		fmt.Printf("%3d  %s\n", i, room.Describe())
	}
}
