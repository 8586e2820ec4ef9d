// register_queue.go - Register bus write path (PokeChip) and the REG slot delay line

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

// RegSource identifies who issued a register write, for the REG queue.
type RegSource uint8

const (
	SourceCPU RegSource = iota
	SourceCopper
)

// RegID names the chipset registers reachable through PokeChip
// (see below); there is no register read entry point.
type RegID uint16

const (
	RegDMACONR RegID = iota
	RegDMACON
	RegDSKPTH
	RegDSKPTL
	RegDIWSTRT
	RegDIWSTOP
	RegDDFSTRT
	RegDDFSTOP
	RegBPL1PTH
	RegBPL1PTL
	RegBPL2PTH
	RegBPL2PTL
	RegBPL3PTH
	RegBPL3PTL
	RegBPL4PTH
	RegBPL4PTL
	RegBPL5PTH
	RegBPL5PTL
	RegBPL6PTH
	RegBPL6PTL
	RegBPL1MOD
	RegBPL2MOD
	RegBPLCON0
	RegSPR0PTH
	RegSPR0PTL
	RegSPR1PTH
	RegSPR1PTL
	RegSPR2PTH
	RegSPR2PTL
	RegSPR3PTH
	RegSPR3PTL
	RegSPR4PTH
	RegSPR4PTL
	RegSPR5PTH
	RegSPR5PTL
	RegSPR6PTH
	RegSPR6PTL
	RegSPR7PTH
	RegSPR7PTL
	RegCOPCON
	RegCOPJMP1
	RegCOPJMP2
	RegCOP1LCH
	RegCOP1LCL
	RegCOP2LCH
	RegCOP2LCL
	RegCOPINS
	RegVPOSR
	RegVHPOSR
)

// regQueueEntry is one entry in the REG slot's delay line: a register
// write with a delay, posted by the CPU or the Copper.
type regQueueEntry struct {
	trigger int64
	reg     RegID
	value   uint16
	source  RegSource
}

// regDelayCycles reports the registers whose effect is deferred through
// the REG slot rather than applied immediately; by design:
// DIWSTRT/STOP (2 DMA cycles), BPLxPTH/L and BPL1MOD/BPL2MOD.
func regDelayCycles(reg RegID) (delay int64, delayed bool) {
	switch reg {
	case RegDIWSTRT, RegDIWSTOP:
		return 2 * masterCyclesPerDMA, true
	case RegBPL1PTH, RegBPL1PTL, RegBPL2PTH, RegBPL2PTL,
		RegBPL3PTH, RegBPL3PTL, RegBPL4PTH, RegBPL4PTL,
		RegBPL5PTH, RegBPL5PTL, RegBPL6PTH, RegBPL6PTL,
		RegBPL1MOD, RegBPL2MOD:
		return 2 * masterCyclesPerDMA, true
	default:
		return 0, false
	}
}

// PokeChip is the register bus write entry point (see below). Most
// registers apply immediately; the delayed subset is pushed onto the
// REG queue instead.
func (c *Chipset) PokeChip(reg RegID, value uint16, source RegSource) {
	if delay, delayed := regDelayCycles(reg); delayed {
		c.postRegQueueEntry(regQueueEntry{
			trigger: c.clock + delay,
			reg:     reg,
			value:   value,
			source:  source,
		})
		return
	}
	c.applyRegisterWrite(reg, value, source)
}

// postRegQueueEntry appends a delayed write and, if it is now the
// earliest pending one, re-arms SlotREG (at most one
// pending scheduler event per slot — the queue itself, not the slot,
// is what may hold several writes).
func (c *Chipset) postRegQueueEntry(e regQueueEntry) {
	c.regQueue = append(c.regQueue, e)
	c.armRegSlot()
}

func (c *Chipset) armRegSlot() {
	if len(c.regQueue) == 0 {
		c.sched.Cancel(SlotREG)
		return
	}
	earliest := c.regQueue[0].trigger
	idx := 0
	for i, e := range c.regQueue {
		if e.trigger < earliest {
			earliest = e.trigger
			idx = i
		}
	}
	if idx != 0 {
		c.regQueue[0], c.regQueue[idx] = c.regQueue[idx], c.regQueue[0]
	}
	c.sched.ScheduleAbs(SlotREG, earliest, EventID(0), 0)
}

// handleREG is the REG slot's dispatch target: apply the head-of-queue
// write (clamping a past-due trigger to now per the
// failure rule) and re-arm for the next queued entry.
func (c *Chipset) handleREG(_ EventID, _ int64, now int64) {
	if len(c.regQueue) == 0 {
		return
	}
	e := c.regQueue[0]
	c.regQueue = c.regQueue[1:]
	if e.trigger < now {
		// advance-to-now by design failure rule; already
		// reflected by ExecuteDue's lateCount bookkeeping.
	}
	c.applyRegisterWrite(e.reg, e.value, e.source)
	c.armRegSlot()
}

// applyRegisterWrite performs the actual state mutation for a register,
// applying the BPLxPT skip rule of this design where relevant.
func (c *Chipset) applyRegisterWrite(reg RegID, value uint16, source RegSource) {
	switch reg {
	case RegDMACON:
		old := c.dmacon
		c.applyDmaconWrite(old, value)
	case RegDSKPTH:
		c.dskpt = (c.dskpt &^ (0x7 << 16)) | (uint32(value&0x7) << 16)
	case RegDSKPTL:
		c.dskpt = (c.dskpt &^ 0xFFFE) | uint32(value&0xFFFE)
	case RegDIWSTRT:
		c.applyDiwstrt(value)
	case RegDIWSTOP:
		c.applyDiwstop(value)
	case RegDDFSTRT:
		c.ddfstrt = uint8(value & 0xFC)
		c.onDdfMidLinePoke()
	case RegDDFSTOP:
		c.ddfstop = uint8(value & 0xFC)
		c.onDdfMidLinePoke()
	case RegBPL1PTH, RegBPL2PTH, RegBPL3PTH, RegBPL4PTH, RegBPL5PTH, RegBPL6PTH:
		c.applyBplPtHalf(bplPlaneForReg(reg), value, true)
	case RegBPL1PTL, RegBPL2PTL, RegBPL3PTL, RegBPL4PTL, RegBPL5PTL, RegBPL6PTL:
		c.applyBplPtHalf(bplPlaneForReg(reg), value, false)
	case RegBPL1MOD:
		c.bpl1mod = int16(value &^ 1)
	case RegBPL2MOD:
		c.bpl2mod = int16(value &^ 1)
	case RegBPLCON0:
		c.bplcon0 = value
		c.activeBitplanes = int((value >> 12) & 0x7)
		c.hires = value&0x8000 != 0
	case RegSPR0PTH, RegSPR1PTH, RegSPR2PTH, RegSPR3PTH, RegSPR4PTH, RegSPR5PTH, RegSPR6PTH, RegSPR7PTH:
		ch := sprChannelForReg(reg)
		c.sprpt[ch] = (c.sprpt[ch] &^ (0x7 << 16)) | (uint32(value&0x7) << 16)
	case RegSPR0PTL, RegSPR1PTL, RegSPR2PTL, RegSPR3PTL, RegSPR4PTL, RegSPR5PTL, RegSPR6PTL, RegSPR7PTL:
		ch := sprChannelForReg(reg)
		c.sprpt[ch] = (c.sprpt[ch] &^ 0xFFFE) | uint32(value&0xFFFE)
	case RegCOPCON:
		c.copcon = value
		c.cdang = value&0x0002 != 0
	case RegCOPJMP1:
		c.copperJump(1, c.clock)
	case RegCOPJMP2:
		c.copperJump(2, c.clock)
	case RegCOP1LCH:
		c.cop1lc = (c.cop1lc &^ (0x7 << 16)) | (uint32(value&0x7) << 16)
	case RegCOP1LCL:
		c.cop1lc = (c.cop1lc &^ 0xFFFE) | uint32(value&0xFFFE)
	case RegCOP2LCH:
		c.cop2lc = (c.cop2lc &^ (0x7 << 16)) | (uint32(value&0x7) << 16)
	case RegCOP2LCL:
		c.cop2lc = (c.cop2lc &^ 0xFFFE) | uint32(value&0xFFFE)
	default:
		// Unrecognised writes (including read-only registers) are no-ops
		// by design.
	}
}

func (c *Chipset) applyDmaconWrite(old, value uint16) {
	var newDmacon uint16
	if value&0x8000 != 0 {
		newDmacon = old | (value &^ 0x8000)
	} else {
		newDmacon = old &^ value
	}
	c.dmacon = newDmacon
	if c.blitter != nil {
		c.blitter.DmaconUpdate(old, newDmacon)
	}
}

func (c *Chipset) applyDiwstrt(value uint16) {
	c.diwstrt = value
	c.diwVstrt = int(value >> 8)
	c.diwHstrt = int(value & 0xFF)
	if c.diwHstrt < 2 {
		c.diwHstrt = -1
	}
}

func (c *Chipset) applyDiwstop(value uint16) {
	c.diwstop = value
	hi := int(value >> 8)
	if value&0x8000 == 0 {
		c.diwVstop = hi | 0x100
	} else {
		c.diwVstop = hi
	}
	c.diwHstop = int(value&0xFF) | 0x100
	if c.diwHstop > 0x1C7 {
		c.diwHstop = -1
	}
}

func bplPlaneForReg(reg RegID) int {
	switch reg {
	case RegBPL1PTH, RegBPL1PTL:
		return 0
	case RegBPL2PTH, RegBPL2PTL:
		return 1
	case RegBPL3PTH, RegBPL3PTL:
		return 2
	case RegBPL4PTH, RegBPL4PTL:
		return 3
	case RegBPL5PTH, RegBPL5PTL:
		return 4
	default:
		return 5
	}
}

func sprChannelForReg(reg RegID) int {
	return int((reg - RegSPR0PTH) / 2)
}

// applyBplPtHalf applies one half of a bitplane pointer write, honouring
// the BPLxPT skip rule of this design: if the next cycle is a BPLx
// event for this same plane and the cycle after that is NONE, the write
// is lost.
func (c *Chipset) applyBplPtHalf(plane int, value uint16, high bool) {
	if c.bplPtWriteIsLost(plane) {
		return
	}
	if high {
		c.bplpt[plane] = (c.bplpt[plane] &^ (0x7 << 16)) | (uint32(value&0x7) << 16)
	} else {
		c.bplpt[plane] = (c.bplpt[plane] &^ 0xFFFE) | uint32(value&0xFFFE)
	}
}

func (c *Chipset) bplPtWriteIsLost(plane int) bool {
	h := c.h
	if h+2 >= len(c.dmaEvent) {
		return false
	}
	nextKind := c.dmaEvent[h+1]
	afterKind := c.dmaEvent[h+2]
	return planeIndexForKind(nextKind) == plane && afterKind == DmaNone
}
