//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"ombrobox/internal/app"
	"ombrobox/internal/audio"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	verbose := flag.Bool("v", false, "log the system schedule")
	flag.Parse()

	var logger *log.Logger
	if *verbose {
		logger = log.New(os.Stderr, "ombrobox: ", log.LstdFlags)
	}
	world, err := cfg.NewWorld(logger)
	if err != nil {
		log.Fatal(err)
	}

	session := app.NewSession(world, cfg)
	if !cfg.Mute {
		cue, err := audio.New(audio.DefaultConfig())
		if err != nil {
			log.Printf("audio disabled: %v", err)
		}
		defer cue.Close()
		session.OnDetonate = func(n int) { cue.Blast(n) }
	}

	game := app.New(session, cfg.Scale)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("ombrobox")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
