package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"ombrobox/internal/app"
	"ombrobox/internal/audio"
	"ombrobox/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	// Size the world to the terminal unless the caller chose a size, leaving
	// one row for the status line.
	sw, sh := screen.Size()
	if _, ok := cfg.Options["w"]; !ok && sw > 0 {
		cfg.Options["w"] = fmt.Sprint(sw)
	}
	if _, ok := cfg.Options["h"]; !ok && sh > 1 {
		cfg.Options["h"] = fmt.Sprint(sh - 1)
	}

	world, err := cfg.NewWorld(nil)
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	session := app.NewSession(world, cfg)
	if !cfg.Mute {
		cue, err := audio.New(audio.DefaultConfig())
		if err == nil {
			defer cue.Close()
			session.OnDetonate = func(n int) { cue.Blast(n) }
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	viewer := term.New(screen, session)
	err = viewer.Run(ctx)
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
