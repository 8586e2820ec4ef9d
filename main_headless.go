// main_headless.go - Headless demo run loop (no window, no audio device)

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

//go:build headless

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"
)

func main() {
	boilerPlate()
	cfg := parseDemoConfig()

	denise := NewEbitenSink(0, 0)
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var console *InspectorConsole
	if cfg.console {
		console = NewInspectorConsole(c)
		if err := console.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "inspector console: %v\n", err)
			console = nil
		}
	}

	// runDone fires when the run loop exits for any reason (STOP flag,
	// ctx cancellation, or a fatal error), so the console's shutdown
	// goroutine isn't left blocked waiting on a Ctrl-C that never comes.
	runCtx, runDone := context.WithCancel(ctx)
	defer runDone()

	g := new(errgroup.Group)
	rl := NewRunLoop(c)
	frames := 0
	g.Go(func() error {
		defer runDone()
		return rl.Run(runCtx, func() { frames++ })
	})
	if console != nil {
		g.Go(func() error {
			<-runCtx.Done()
			console.Stop()
			return nil
		})
	}

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "run loop: %v\n", err)
		os.Exit(1)
	}
}
