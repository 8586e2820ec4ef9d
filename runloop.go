// runloop.go - Run-loop control flags and the single cooperative driver loop

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

package main

import "context"

// cyclesPerFrame is the master-cycle length of a long frame, an upper
// bound on any frame; RunUntilVSync does not use it and drives
// VSYNC-to-VSYNC rather than a fixed cycle budget.
const cyclesPerFrame = int64(lineCycles) * LongLines * masterCyclesPerDMA

// RunLoop drives the chipset forward in bounded slices, honouring the
// run-loop control flags of this design and the single-threaded
// cooperative model of this design: the only yield points are a
// STOP/INSPECT/SNAPSHOT/BREAKPOINT/TRACE flag or (outside the core) the
// host's VSYNC timing synchroniser.
type RunLoop struct {
	c *Chipset
}

// NewRunLoop binds a run loop to a chipset.
func NewRunLoop(c *Chipset) *RunLoop {
	return &RunLoop{c: c}
}

// Run advances the chipset in small slices until ctx is cancelled or a
// STOP/INSPECT/SNAPSHOT/BREAKPOINT/TRACE flag is observed. In warp mode
// the onVSync host timing synchroniser callback is skipped.
func (rl *RunLoop) Run(ctx context.Context, onVSync func()) error {
	rl.c.threadLock.Lock()
	defer rl.c.threadLock.Unlock()

	const slice = int64(masterCyclesPerDMA * 64)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		frameBefore := rl.c.FrameNr()
		rl.c.ExecuteUntil(rl.c.Clock() + slice)
		rl.c.TakeSnapshot()

		if rl.c.FrameNr() != frameBefore {
			if onVSync != nil && !rl.c.warpMode {
				onVSync()
			}
		}

		flags := rl.c.RunControlFlags()
		if flags&RunStop != 0 {
			rl.c.ClearRunControl(RunStop)
			return nil
		}
		if flags&(RunInspect|RunSnapshot|RunBreakpoint|RunTrace) != 0 {
			return nil
		}
	}
}

// StepOneDMACycle advances exactly one DMA cycle; useful for
// single-step debugging and deterministic tests.
func (rl *RunLoop) StepOneDMACycle() {
	rl.c.ExecuteUntil(rl.c.Clock() + masterCyclesPerDMA)
}

// RunUntilVSync advances the chipset until the frame counter
// increments, for scenario-style tests that only care about per-frame
// state (the end-to-end scenarios).
func (rl *RunLoop) RunUntilVSync() {
	start := rl.c.FrameNr()
	for rl.c.FrameNr() == start {
		rl.c.ExecuteUntil(rl.c.Clock() + masterCyclesPerDMA)
	}
}
