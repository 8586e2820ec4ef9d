// console_windows.go - Raw-stdin inspector console for Windows builds

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

//go:build windows

package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// InspectorConsole is the Windows twin of console_other.go's type: same
// raw-keystroke-to-RunControl mapping, but syscall.SetNonblock has no
// Windows equivalent, so the read loop blocks on os.Stdin.Read in its own
// goroutine instead of polling a non-blocking fd.
type InspectorConsole struct {
	c       *Chipset
	fd      int
	oldTerm *term.State
	stopCh  chan struct{}
	done    chan struct{}
	stopped sync.Once
}

// NewInspectorConsole binds a console to a chipset.
func NewInspectorConsole(c *Chipset) *InspectorConsole {
	return &InspectorConsole{
		c:      c,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start puts stdin into raw mode and begins the key-reading goroutine.
// Keys: 's' or 'q' sets STOP, 't' sets TRACE, 'i' requests INSPECT and
// prints the last snapshot, 'p' requests SNAPSHOT.
func (ic *InspectorConsole) Start() error {
	ic.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(ic.fd)
	if err != nil {
		return fmt.Errorf("inspector console: raw mode: %w", err)
	}
	ic.oldTerm = oldState

	go ic.readLoop()
	return nil
}

func (ic *InspectorConsole) readLoop() {
	defer close(ic.done)
	buf := make([]byte, 1)
	for {
		select {
		case <-ic.stopCh:
			return
		default:
		}

		n, err := os.Stdin.Read(buf)
		if n > 0 {
			ic.handleKey(buf[0])
		}
		if err != nil {
			return
		}
		if n == 0 {
			time.Sleep(5 * time.Millisecond)
		}
	}
}

func (ic *InspectorConsole) handleKey(b byte) {
	switch b {
	case 's':
		ic.c.SetRunControl(RunStop)
	case 't':
		ic.c.SetRunControl(RunTrace)
	case 'i':
		ic.c.SetRunControl(RunInspect)
		ic.printSnapshot()
	case 'p':
		ic.c.SetRunControl(RunSnapshot)
	case 'q':
		ic.c.SetRunControl(RunStop)
	}
}

func (ic *InspectorConsole) printSnapshot() {
	s := ic.c.InspectionSnapshot()
	fmt.Fprintf(os.Stderr, "\r\nframe=%d v=%d h=%d clock=%d dmacon=%04X\r\n",
		s.FrameNr, s.V, s.H, s.Clock, s.Dmacon)
}

// Stop signals the key-reading goroutine to exit and restores stdin to
// cooked mode; it does not wait for the goroutine. The pending blocking
// Read is left to return on its own (EOF or the next keystroke); Stop
// does not cancel it.
func (ic *InspectorConsole) Stop() {
	ic.stopped.Do(func() { close(ic.stopCh) })
	if ic.oldTerm != nil {
		_ = term.Restore(ic.fd, ic.oldTerm)
	}
}
