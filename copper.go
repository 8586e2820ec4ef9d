// copper.go - Copper co-processor state machine

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

// copperCanRun reports whether Copper DMA is currently permitted to run
// at all (see below): Copper DMA enabled and master DMA enabled.
func (c *Chipset) copperCanRun() bool {
	return c.dmacon&dmaconDMAEN != 0 && c.dmacon&dmaconCOPEN != 0
}

// copperCanDoDMA reports whether the Copper may take the bus at the
// current horizontal cycle: the owner slot must be free, and cycle
// 0xE0 is always denied to the Copper by design.
func (c *Chipset) copperCanDoDMA() bool {
	if c.h == 0xE0 {
		return false
	}
	return c.busOwner[c.h] == BusNone
}

// copperJump loads coppc from COP1LC or COP2LC and schedules REQ_DMA
// four master cycles later (the JMPx transition,
// triggered by VBL or by a COPJMPx strobe write).
func (c *Chipset) copperJump(which int, at int64) {
	if which == 1 {
		c.coppc = c.cop1lc
	} else {
		c.coppc = c.cop2lc
	}
	c.copSkip = false
	c.sched.ScheduleAbs(SlotCOP, at+4, EventID(copReqDMA), 0)
}

// handleCOP dispatches the Copper's current state (see below).
func (c *Chipset) handleCOP(id EventID, _ int64, now int64) {
	switch copperState(id) {
	case copReqDMA:
		c.copperReqDMA()
	case copFetch:
		c.copperFetch()
	case copMove:
		c.copperMove()
	case copWaitSkip:
		c.copperWaitSkip()
	case copWaitBlit:
		c.copperWaitBlitRetry()
	}
}

func (c *Chipset) copperReqDMA() {
	if !c.copperCanRun() || !c.copperCanDoDMA() {
		c.sched.ScheduleRel(SlotCOP, c.clock, masterCyclesPerDMA, EventID(copReqDMA), 0)
		return
	}
	c.busOwner[c.h] = BusCopper
	c.sched.ScheduleRel(SlotCOP, c.clock, 2*masterCyclesPerDMA, EventID(copFetch), 0)
}

func (c *Chipset) copperFetch() {
	var word uint16
	if c.ram != nil {
		word = c.ram.Read16(c.coppc)
	}
	c.cop1ins = word
	c.coppc = wrapChipAddr(int32(c.coppc) + 2)
	c.extendCopEnd(c.coppc)

	if c.cop1ins&1 == 0 {
		c.sched.ScheduleRel(SlotCOP, c.clock, 2*masterCyclesPerDMA, EventID(copMove), 0)
	} else {
		c.sched.ScheduleRel(SlotCOP, c.clock, 2*masterCyclesPerDMA, EventID(copWaitSkip), 0)
	}
}

func (c *Chipset) extendCopEnd(addr uint32) {
	if c.coppc == c.cop1lc || addr > c.cop1end {
		// best-effort list-length tracking for disassembly/inspection;
		// real hardware has no notion of "list length".
		c.cop1end = addr
	}
}

// copperMove implements the MOVE transition (see below).
func (c *Chipset) copperMove() {
	var word uint16
	if c.ram != nil {
		word = c.ram.Read16(c.coppc)
	}
	c.cop2ins = word
	c.coppc = wrapChipAddr(int32(c.coppc) + 2)

	reg := c.cop1ins & 0x1FE
	minLegal := uint16(0x80)
	if c.cdang {
		minLegal = 0x40
	}
	if reg < minLegal {
		c.sched.Cancel(SlotCOP)
		return
	}

	if !c.copSkip {
		c.copperWriteRegister(reg, c.cop2ins)
	}
	c.copSkip = false
	c.sched.ScheduleRel(SlotCOP, c.clock, 2*masterCyclesPerDMA, EventID(copFetch), 0)
}

// copperWriteRegister performs a Copper MOVE's register-bus write.
// Colour registers bypass the normal register bus and post directly to
// Denise with a pixel offset of 4*h (the illegal-address
// carve-out for on-line colour changes).
func (c *Chipset) copperWriteRegister(reg uint16, value uint16) {
	if reg >= 0x180 && reg <= 0x1BE {
		if c.denise != nil {
			c.denise.RecordColorChange(reg, value, 4*c.h)
		}
		return
	}
	if id, ok := regIDForAddress(reg); ok {
		c.PokeChip(id, value, SourceCopper)
	}
}

// copperWaitSkip implements the combined WAIT/SKIP transition.
func (c *Chipset) copperWaitSkip() {
	var word uint16
	if c.ram != nil {
		word = c.ram.Read16(c.coppc)
	}
	c.cop2ins = word
	c.coppc = wrapChipAddr(int32(c.coppc) + 2)

	if c.cop2ins&1 == 0 {
		c.copperWait()
	} else {
		c.copSkip = copperComparator(c.beamValue(), c.cop1ins, c.cop2ins)
		c.sched.ScheduleRel(SlotCOP, c.clock, 2*masterCyclesPerDMA, EventID(copFetch), 0)
	}
}

func (c *Chipset) copperWait() {
	target, ok := copperNextMatch(c.beamValue(), c.cop1ins, c.cop2ins)
	if !ok {
		c.sched.Cancel(SlotCOP)
		return
	}
	bfd := c.cop2ins&0x8000 != 0
	if !bfd && c.blitter != nil && c.dmacon&dmaconBLTEN != 0 && c.blitter.IsBusy() {
		c.sched.ScheduleRel(SlotCOP, c.clock, masterCyclesPerDMA, EventID(copWaitBlit), 0)
		return
	}
	deltaCycles := beamDiff(c.beamValue(), target)
	wakeAt := c.clock + int64(masterCyclesPerDMA)*int64(deltaCycles) - 2
	c.sched.ScheduleAbs(SlotCOP, wakeAt, EventID(copReqDMA), 0)
}

func (c *Chipset) copperWaitBlitRetry() {
	bfd := c.cop2ins&0x8000 != 0
	if !bfd && c.blitter != nil && c.dmacon&dmaconBLTEN != 0 && c.blitter.IsBusy() {
		c.sched.ScheduleRel(SlotCOP, c.clock, masterCyclesPerDMA, EventID(copWaitBlit), 0)
		return
	}
	c.sched.ScheduleRel(SlotCOP, c.clock, 0, EventID(copReqDMA), 0)
}

// beamValue packs the current beam as the 17-bit (v<<8)|h value the
// comparator operates on (see below).
func (c *Chipset) beamValue() uint32 {
	return (uint32(c.v) << 8) | uint32(c.h&0xFF)
}

// copperComparator implements the trigger() predicate: vmask always includes bit 7 of V, hmask never includes bit 0 of H.
func copperComparator(beam uint32, cop1ins, cop2ins uint16) bool {
	vp := uint32(cop1ins>>8) & 0xFF
	hp := uint32(cop1ins) & 0xFE
	vm := (uint32(cop2ins>>8) & 0x7F) | 0x80
	hm := uint32(cop2ins) & 0xFE

	bv := (beam >> 8) & 0x1FF
	bh := beam & 0xFF

	if (bv & vm) > (vp & vm) {
		return true
	}
	if (bv&vm) == (vp&vm) && (bh&hm) >= (hp&hm) {
		return true
	}
	return false
}

// copperNextMatch performs the bitwise descent from 0x1FFE2 described in
// this design, clearing bits that preserve both newPos >= beam+2
// and trigger(newPos), yielding the minimum future match in O(17). It
// returns false if no match exists for the remainder of the frame.
func copperNextMatch(beam uint32, cop1ins, cop2ins uint16) (uint32, bool) {
	minPos := beam + 2
	pos := uint32(0x1FFE2)
	if pos < minPos {
		return 0, false
	}
	if !copperComparator(pos, cop1ins, cop2ins) {
		return 0, false
	}
	for bit := uint32(1 << 16); bit != 0; bit >>= 1 {
		candidate := pos &^ bit
		if candidate >= minPos && copperComparator(candidate, cop1ins, cop2ins) {
			pos = candidate
		}
	}
	return pos, true
}

// beamDiff returns the number of DMA cycles (h steps, 228 per line)
// between two packed beam values, assuming target >= from.
func beamDiff(from, target uint32) int {
	fv, fh := int(from>>8), int(from&0xFF)
	tv, th := int(target>>8), int(target&0xFF)
	lines := tv - fv
	cycles := lines*lineCycles + (th - fh)
	if cycles < 0 {
		cycles = 0
	}
	return cycles
}

// regIDForAddress maps a raw custom-chip register address (as carried
// in a Copper MOVE instruction) to the RegID the register bus expects.
// Addresses with no chipset-register counterpart in this core's scope
// report ok=false and are silently ignored, by design.
func regIDForAddress(addr uint16) (RegID, bool) {
	switch addr {
	case 0x096:
		return RegDMACON, true
	case 0x020:
		return RegDSKPTH, true
	case 0x022:
		return RegDSKPTL, true
	case 0x08E:
		return RegDIWSTRT, true
	case 0x090:
		return RegDIWSTOP, true
	case 0x092:
		return RegDDFSTRT, true
	case 0x094:
		return RegDDFSTOP, true
	case 0x0E0:
		return RegBPL1PTH, true
	case 0x0E2:
		return RegBPL1PTL, true
	case 0x0E4:
		return RegBPL2PTH, true
	case 0x0E6:
		return RegBPL2PTL, true
	case 0x0E8:
		return RegBPL3PTH, true
	case 0x0EA:
		return RegBPL3PTL, true
	case 0x0EC:
		return RegBPL4PTH, true
	case 0x0EE:
		return RegBPL4PTL, true
	case 0x0F0:
		return RegBPL5PTH, true
	case 0x0F2:
		return RegBPL5PTL, true
	case 0x0F4:
		return RegBPL6PTH, true
	case 0x0F6:
		return RegBPL6PTL, true
	case 0x108:
		return RegBPL1MOD, true
	case 0x10A:
		return RegBPL2MOD, true
	case 0x100:
		return RegBPLCON0, true
	case 0x120:
		return RegSPR0PTH, true
	case 0x122:
		return RegSPR0PTL, true
	case 0x124:
		return RegSPR1PTH, true
	case 0x126:
		return RegSPR1PTL, true
	case 0x128:
		return RegSPR2PTH, true
	case 0x12A:
		return RegSPR2PTL, true
	case 0x12C:
		return RegSPR3PTH, true
	case 0x12E:
		return RegSPR3PTL, true
	case 0x130:
		return RegSPR4PTH, true
	case 0x132:
		return RegSPR4PTL, true
	case 0x134:
		return RegSPR5PTH, true
	case 0x136:
		return RegSPR5PTL, true
	case 0x138:
		return RegSPR6PTH, true
	case 0x13A:
		return RegSPR6PTL, true
	case 0x13C:
		return RegSPR7PTH, true
	case 0x13E:
		return RegSPR7PTL, true
	case 0x02E:
		return RegCOPCON, true
	case 0x088:
		return RegCOPJMP1, true
	case 0x08A:
		return RegCOPJMP2, true
	case 0x080:
		return RegCOP1LCH, true
	case 0x082:
		return RegCOP1LCL, true
	case 0x084:
		return RegCOP2LCH, true
	case 0x086:
		return RegCOP2LCL, true
	case 0x08C:
		return RegCOPINS, true
	default:
		return 0, false
	}
}

// NotifyBlitterFinished re-schedules a Copper parked on the blitter
// interlock (the "blitter posts finished" transition).
func (c *Chipset) NotifyBlitterFinished() {
	if c.sched.IsPending(SlotCOP) && copperState(c.peekCopEventID()) == copWaitBlit {
		c.sched.ScheduleAbs(SlotCOP, c.clock, EventID(copReqDMA), 0)
	}
}

func (c *Chipset) peekCopEventID() EventID {
	return c.sched.slots[SlotCOP].id
}
