// main_ebiten.go - Windowed demo run loop driven by Ebitengine's game loop

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

//go:build !headless

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	windowScaleW = 384 * 2
	windowScaleH = 288 * 2
)

// demoGame adapts a Chipset+RunLoop pair to ebiten.Game: Update drives
// the chipset forward by one frame (VSYNC to VSYNC) per tick, Draw publishes whatever
// the demo Denise sink has accumulated since the last frame.
type demoGame struct {
	c      *Chipset
	rl     *RunLoop
	denise *EbitenSink
	cancel context.CancelFunc
	ctx    context.Context
}

func (g *demoGame) Update() error {
	select {
	case <-g.ctx.Done():
		return g.ctx.Err()
	default:
	}
	if g.c.RunControlFlags()&RunStop != 0 {
		return ebiten.Termination
	}
	g.rl.RunUntilVSync()
	return nil
}

func (g *demoGame) Draw(screen *ebiten.Image) {
	g.denise.PublishFrame(screen)
}

func (g *demoGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowScaleW, windowScaleH
}

func main() {
	boilerPlate()
	cfg := parseDemoConfig()

	denise := NewEbitenSink(windowScaleW, windowScaleH)
	paula, err := NewOtoSink()
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio sink: %v\n", err)
		os.Exit(1)
	}
	defer paula.Close()

	c, _, err := buildChipset(cfg, denise, paula)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer maybeSaveSnapshot(cfg, c)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var console *InspectorConsole
	if cfg.console {
		console = NewInspectorConsole(c)
		if err := console.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "inspector console: %v\n", err)
		} else {
			defer console.Stop()
		}
	}

	ebiten.SetWindowSize(windowScaleW, windowScaleH)
	ebiten.SetWindowTitle("Intuition Engine - Amiga Chipset Core")

	game := &demoGame{c: c, rl: NewRunLoop(c), denise: denise, ctx: ctx, cancel: cancel}
	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		fmt.Fprintf(os.Stderr, "run game: %v\n", err)
		os.Exit(1)
	}
}
