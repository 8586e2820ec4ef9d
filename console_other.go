// console_other.go - Raw-stdin inspector console driving RunControl flags

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

//go:build !windows

package main

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// InspectorConsole reads single raw keystrokes from stdin and sets
// the chipset's RunControl bits, printing the inspection snapshot on
// demand. Grounded on terminal_host.go's term.MakeRaw/SetNonblock/
// term.Restore pairing, adapted from a line-oriented MMIO feed to a
// single-keystroke debug console.
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

// Start puts stdin into raw non-blocking mode and begins the key-reading
// goroutine. Keys: 's' or 'q' sets STOP, 't' sets TRACE, 'i' requests
// INSPECT and prints the last snapshot, 'p' requests SNAPSHOT.
func (ic *InspectorConsole) Start() error {
	ic.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(ic.fd)
	if err != nil {
		return fmt.Errorf("inspector console: raw mode: %w", err)
	}
	ic.oldTerm = oldState

	if err := syscall.SetNonblock(ic.fd, true); err != nil {
		_ = term.Restore(ic.fd, ic.oldTerm)
		return fmt.Errorf("inspector console: nonblocking stdin: %w", err)
	}

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

		n, err := syscall.Read(ic.fd, buf)
		if n > 0 {
			ic.handleKey(buf[0])
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
			time.Sleep(5 * time.Millisecond)
			continue
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

// Stop restores stdin to blocking/cooked mode and waits for the
// key-reading goroutine to exit.
func (ic *InspectorConsole) Stop() {
	ic.stopped.Do(func() { close(ic.stopCh) })
	<-ic.done
	_ = syscall.SetNonblock(ic.fd, false)
	if ic.oldTerm != nil {
		_ = term.Restore(ic.fd, ic.oldTerm)
	}
}
