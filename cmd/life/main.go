//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"bitlife/internal/app"
	"bitlife/internal/sim"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	ctrl, err := sim.New(cfg.SimConfig())
	if err != nil {
		log.Fatalf("start simulation: %v", err)
	}

	game := app.New(ctrl, cfg.HUDWidth)
	size := ctrl.Size()
	log.Printf("grid %dx%d (%s cells), kernel %s", size.W, size.H, sim.FormatCount(uint64(size.W)*uint64(size.H)), ctrl.Mode())

	ebiten.SetWindowTitle("bitlife")
	ebiten.SetWindowSize(cfg.WindowW, cfg.WindowH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
