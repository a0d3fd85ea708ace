package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/minaorangina/memory/config"
	"github.com/minaorangina/memory/deck"
	"github.com/minaorangina/memory/engine"
	"github.com/minaorangina/memory/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "memory: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("memory", flag.ContinueOnError)
	fs.DurationVarP(&cfg.ResolutionDelay, "delay", "d", cfg.ResolutionDelay, "How long a pair stays face up before it is resolved")
	fs.Uint64VarP(&cfg.Seed, "seed", "s", cfg.Seed, "Shuffle seed (0 picks one from the clock)")
	fs.StringVarP(&cfg.Levels, "levels", "l", cfg.Levels, "Level table as name:pairs:columns:rows;...")
	fs.StringVarP(&cfg.Player, "name", "n", cfg.Player, "Player name")
	fs.StringVar(&cfg.Assets, "assets", cfg.Assets, "How faces are shown: robohash or key")
	quiet := fs.BoolP("quiet", "q", false, "Don't log engine events")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	table, err := cfg.Table()
	if err != nil {
		return err
	}
	asset, err := cfg.AssetFunc()
	if err != nil {
		return err
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if *quiet {
		logger.SetOutput(io.Discard)
	}

	ge, err := engine.NewGameEngine(engine.GameEngineOpts{
		Name:   cfg.Player,
		Levels: table,
		Delay:  cfg.ResolutionDelay,
		Rand:   deck.NewRand(cfg.Seed),
		Asset:  asset,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	games := store.NewInMemoryGameStore()
	if err := games.AddGame(ge); err != nil {
		return err
	}
	defer func() {
		if err := games.RemoveGame(ge.ID()); err != nil {
			logger.Printf("could not remove game %s: %v", ge.ID(), err)
		}
	}()

	if err := ge.Start(); err != nil {
		return err
	}

	return newTerminal(ge, os.Stdin, os.Stdout).run(ctx)
}
