// beam_clock.go - Beam position, master clock and HSYNC/VSYNC handlers

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

const intreqVBL uint16 = 1 << 5

// ExecuteUntil advances the beam/clock in unit DMA cycles until no
// further whole DMA cycle fits before target, by design:
// while clock+8 <= target, run ExecuteDue(clock), step h, add 8 to
// clock. HSYNC is not a scheduled event: the loop calls hsync directly
// in place of the h step when h == HPosMax.
func (c *Chipset) ExecuteUntil(target int64) {
	for c.clock+masterCyclesPerDMA <= target {
		c.sched.ExecuteDue(c.clock)
		if c.h == HPosMax {
			c.hsync()
		} else {
			c.h++
		}
		c.clock += masterCyclesPerDMA
	}
}

// hsync performs the end-of-line work; ExecuteUntil calls it at h == HPosMax.
func (c *Chipset) hsync() {
	if c.denise != nil {
		c.denise.EndOfLine(c.v)
	}
	if c.paula != nil {
		c.paula.AudioExecuteUntil(c.clock)
	}
	if c.ciaB != nil {
		c.ciaB.IncrementTOD()
	}

	c.applyEndOfLineModulo()

	c.v++
	c.h = 0

	if c.v >= c.numLines {
		c.vsync()
	}

	if c.v == c.diwVstrt {
		c.vFlop = true
	}
	if c.v == c.diwVstop {
		c.vFlop = false
	}

	// The horizontal DIW flip-flop carries over from the previous line:
	// a valid (non -1) hFlopOff means the close trigger was armed and so
	// fired by end of line, leaving the window shut for the new line; a
	// valid hFlopOn with hFlopOff left at the -1 sentinel (never closes
	// this line) means the window is still open; if both are -1, neither
	// trigger was armed and hFlop keeps its prior value. This must read
	// the old hFlopOn/hFlopOff before they're replaced below.
	switch {
	case c.hFlopOff != -1:
		c.hFlop = false
	case c.hFlopOn != -1:
		c.hFlop = true
	}
	c.hFlopOn = c.diwHstrt
	c.hFlopOff = c.diwHstop

	c.rebuildDmaEventTable()

	for i := range c.busOwner {
		c.busOwner[i] = BusNone
		c.busValue[i] = 0
	}

	if c.denise != nil {
		c.denise.BeginOfLine(c.v)
	}

	c.scheduleFirstBplEvent()
	c.scheduleFirstDasEvent()
}

// scheduleFirstDasEvent arms SlotDAS for this line's first structural
// disk/audio/sprite slot (always present: refresh at h=0x01).
func (c *Chipset) scheduleFirstDasEvent() {
	lineStart := c.clock + masterCyclesPerDMA
	c.sched.ScheduleAbs(SlotDAS, lineStart+int64(masterCyclesPerDMA*dasSlotH(dasRefresh)), EventID(dasRefresh), 0)
}

// applyEndOfLineModulo adds bpl1mod to the odd-numbered bitplane pointers
// (BPL1/3/5, indices 0, 2, 4) and bpl2mod to the even-numbered ones
// (BPL2/4/6, indices 1, 3, 5), once per line, by design.
func (c *Chipset) applyEndOfLineModulo() {
	if c.activeBitplanes == 0 {
		return
	}
	for plane := 0; plane < c.activeBitplanes; plane++ {
		var mod int32
		if plane%2 == 0 {
			mod = int32(c.bpl1mod)
		} else {
			mod = int32(c.bpl2mod)
		}
		c.bplpt[plane] = wrapChipAddr(int32(c.bplpt[plane]) + mod)
	}
}

func wrapChipAddr(v int32) uint32 {
	const chipMask = 0x7FFFE // 19 bits, even-aligned
	for v < 0 {
		v += 0x80000
	}
	return uint32(v) & chipMask
}

// vsync implements the VSYNC handler (see below).
func (c *Chipset) vsync() {
	c.frameNr++
	c.interlaced = c.bplcon0&0x0004 != 0 // BPLCON0.LACE
	if c.interlaced {
		c.lof = !c.lof
	} else {
		c.lof = true
	}
	if c.lof {
		c.numLines = LongLines
	} else {
		c.numLines = ShortLines
	}
	c.v = 0
	c.vFlop = false

	if c.ciaA != nil {
		c.ciaA.IncrementTOD()
	}
	if c.paula != nil {
		c.paula.IntreqRaise(intreqVBL)
	}

	c.copperJump(1, c.clock+4)
}

// scheduleFirstBplEvent arms SlotBPL for this line's first structural
// event, if any, via the jump table. c.clock still holds the previous
// line's final value here; ExecuteUntil advances it by one DMA cycle
// (to the new line's h==0) immediately after hsync returns.
func (c *Chipset) scheduleFirstBplEvent() {
	first := 0
	if c.dmaEvent[0] != DmaNone {
		first = 0
	} else {
		first = c.nextDmaEvent[0]
		if first == 0 {
			return
		}
	}
	lineStart := c.clock + masterCyclesPerDMA
	c.sched.ScheduleAbs(SlotBPL, lineStart+int64(masterCyclesPerDMA*first), EventID(0), int64(first))
}
