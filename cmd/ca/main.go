//go:build ebiten

package main

import (
	"errors"
	"flag"
	stdlog "log"
	"os"

	"lifetones/internal/app"
	"lifetones/internal/log"
	"lifetones/internal/playback"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := log.New(os.Stderr, log.LevelFromString(cfg.LogLevel))

	player, err := playback.New(cfg.SampleRate)
	if err != nil {
		logger.Warnf("audio unavailable, running silent: %v", err)
		player = playback.NewDiscard()
	}

	session, err := app.NewSession(cfg, player, logger)
	if err != nil {
		stdlog.Fatalf("lifetones: %v", err)
	}
	defer session.Close()

	game := app.New(session, cfg.Scale)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("lifetones - " + session.Life().RuleSet().Name)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		stdlog.Fatal(err)
	}
}
