// dma_slot_table.go - Per-line DMA slot table and DAS lookup tables

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

// dasEventID tags the fixed structural disk/audio/sprite slot positions
// of a line (the DAS sub-table).
type dasEventID uint8

const (
	dasNone dasEventID = iota
	dasRefresh
	dasDisk0
	dasDisk1
	dasDisk2
	dasAudio0
	dasAudio1
	dasAudio2
	dasAudio3
	dasSprite0
	dasSprite1
	dasSprite2
	dasSprite3
	dasSprite4
	dasSprite5
	dasSprite6
	dasSprite7
	dasIDCount
)

// dasMaskSize bounds the 6-bit DMA enable projection the lookup table is
// keyed on: DMAEN, DSKEN, AU0EN, AU1EN, AU2EN, AU3EN. Sprite DMA is
// gated live against SPREN and per-channel sprDmaState at dispatch time
// rather than folded into this mask, since 8 independent sprite enables
// would not fit a 6-bit projection; the structural slot sequence is
// unaffected by whether a given sprite channel is currently attached.
const dasMaskSize = 64

const (
	dasMaskDMAEN = 1 << 0
	dasMaskDSKEN = 1 << 1
	dasMaskAU0EN = 1 << 2
	dasMaskAU1EN = 1 << 3
	dasMaskAU2EN = 1 << 4
	dasMaskAU3EN = 1 << 5
)

// dasSlotH gives the fixed horizontal cycle of each structural DAS id,
// by design: refresh at 0x01, disk at 0x07/0x09/0x0B, audio
// at 0x0D/0x0F/0x11/0x13, sprite pairs from 0x15 through 0x33. Each
// sprite channel n has one slot, at 0x15+4n, the first cycle of its
// pair; the pair's second cycle (0x17+4n) has no scheduled fetch.
func dasSlotH(id dasEventID) int {
	switch id {
	case dasRefresh:
		return 0x01
	case dasDisk0:
		return 0x07
	case dasDisk1:
		return 0x09
	case dasDisk2:
		return 0x0B
	case dasAudio0:
		return 0x0D
	case dasAudio1:
		return 0x0F
	case dasAudio2:
		return 0x11
	case dasAudio3:
		return 0x13
	default:
		if id >= dasSprite0 && id <= dasSprite7 {
			return 0x15 + 4*int(id-dasSprite0)
		}
		return -1
	}
}

// dasSlotOrder is the fixed sequence of structural DAS ids within a line.
var dasSlotOrder = [...]dasEventID{
	dasRefresh,
	dasDisk0, dasDisk1, dasDisk2,
	dasAudio0, dasAudio1, dasAudio2, dasAudio3,
	dasSprite0, dasSprite1, dasSprite2, dasSprite3,
	dasSprite4, dasSprite5, dasSprite6, dasSprite7,
}

func dasRequired(id dasEventID, mask int) bool {
	switch id {
	case dasDisk0, dasDisk1, dasDisk2:
		return mask&dasMaskDMAEN != 0 && mask&dasMaskDSKEN != 0
	case dasAudio0:
		return mask&dasMaskDMAEN != 0 && mask&dasMaskAU0EN != 0
	case dasAudio1:
		return mask&dasMaskDMAEN != 0 && mask&dasMaskAU1EN != 0
	case dasAudio2:
		return mask&dasMaskDMAEN != 0 && mask&dasMaskAU2EN != 0
	case dasAudio3:
		return mask&dasMaskDMAEN != 0 && mask&dasMaskAU3EN != 0
	case dasRefresh:
		return mask&dasMaskDMAEN != 0
	default:
		// Sprite slots: gated live, not by this projected mask.
		return mask&dasMaskDMAEN != 0
	}
}

// buildDASTables precomputes nextDASEvent/nextDASDelay for every
// (current id, enable mask) pair so the bus arbiter never rescans the
// slot sequence at runtime (see below).
func (c *Chipset) buildDASTables() {
	for mask := 0; mask < dasMaskSize; mask++ {
		for idx, id := range dasSlotOrder {
			next, delay := dasNone, 0
			for j := 1; j <= len(dasSlotOrder); j++ {
				k := (idx + j) % len(dasSlotOrder)
				cand := dasSlotOrder[k]
				if dasRequired(cand, mask) {
					next = cand
					h0 := dasSlotH(id)
					h1 := dasSlotH(cand)
					if k <= idx {
						delay = (lineCycles - h0) + h1
					} else {
						delay = h1 - h0
					}
					break
				}
			}
			c.nextDASEvent[id][mask] = next
			c.nextDASDelay[id][mask] = delay
		}
	}
}

func (c *Chipset) currentDASMask() int {
	mask := 0
	if c.dmacon&dmaconDMAEN != 0 {
		mask |= dasMaskDMAEN
	}
	if c.dmacon&dmaconDSKEN != 0 {
		mask |= dasMaskDSKEN
	}
	if c.dmacon&dmaconAU0EN != 0 {
		mask |= dasMaskAU0EN
	}
	if c.dmacon&dmaconAU1EN != 0 {
		mask |= dasMaskAU1EN
	}
	if c.dmacon&dmaconAU2EN != 0 {
		mask |= dasMaskAU2EN
	}
	if c.dmacon&dmaconAU3EN != 0 {
		mask |= dasMaskAU3EN
	}
	return mask
}

// bplSubTableLores returns, for a lores line with bpu active bitplanes,
// the BPL event kind at offset o (0..7) within an 8-cycle fetch unit, or
// DmaNone if plane o's role exceeds bpu or o has no role at all. Per
// this design: +1:L4, +2:L6, +3:L2, +5:L3, +6:L5, +7:L1.
func bplSubTableLores(bpu int, o int) DmaEventKind {
	switch o {
	case 1:
		if bpu >= 4 {
			return DmaBplL4
		}
	case 2:
		if bpu >= 6 {
			return DmaBplL6
		}
	case 3:
		if bpu >= 2 {
			return DmaBplL2
		}
	case 5:
		if bpu >= 3 {
			return DmaBplL3
		}
	case 6:
		if bpu >= 5 {
			return DmaBplL5
		}
	case 7:
		if bpu >= 1 {
			return DmaBplL1
		}
	}
	return DmaNone
}

// bplSubTableHires returns the BPL event kind at offset o (0..7) for a
// hires line with bpu active bitplanes:
// +0,+4:H4 · +1,+5:H2 · +2,+6:H3 · +3,+7:H1.
func bplSubTableHires(bpu int, o int) DmaEventKind {
	switch o % 4 {
	case 0:
		if bpu >= 4 {
			return DmaBplH4
		}
	case 1:
		if bpu >= 2 {
			return DmaBplH2
		}
	case 2:
		if bpu >= 3 {
			return DmaBplH3
		}
	case 3:
		if bpu >= 1 {
			return DmaBplH1
		}
	}
	return DmaNone
}

// planeIndexForKind maps a BPL event kind back to its zero-based plane
// index, used by the bus arbiter to select bplpt[plane].
func planeIndexForKind(k DmaEventKind) int {
	switch k {
	case DmaBplL1, DmaBplH1:
		return 0
	case DmaBplL2, DmaBplH2:
		return 1
	case DmaBplL3, DmaBplH3:
		return 2
	case DmaBplL4, DmaBplH4:
		return 3
	case DmaBplL5:
		return 4
	case DmaBplL6:
		return 5
	default:
		return -1
	}
}

// bitplaneDmaGate reports whether bitplane DMA is active this line, per
// the gate in this design: vFlop && v in [26, numLines-1) &&
// activeBitplanes>0 && DMAEN && BPLEN.
func (c *Chipset) bitplaneDmaGate() bool {
	return c.vFlop &&
		c.v >= 26 && c.v < c.numLines-1 &&
		c.activeBitplanes > 0 &&
		c.dmacon&dmaconDMAEN != 0 &&
		c.dmacon&dmaconBPLEN != 0
}

// rebuildDmaEventTable recomputes dmaEvent[] and the jump table for the
// current line from DDFSTRT/STOP, BPLCON0 and DMACON. It is called on
// HSYNC (hsyncActions applying the latched DDF
// window) and whenever DDFSTRT/STOP are poked mid-line.
func (c *Chipset) rebuildDmaEventTable() {
	for i := range c.dmaEvent {
		c.dmaEvent[i] = DmaNone
	}
	c.dmaFirstBpl1Event = -1
	c.dmaLastBpl1Event = -1

	c.recomputeDdfWindow()

	if !c.bitplaneDmaGate() {
		c.updateJumpTable()
		return
	}

	bpu := c.activeBitplanes
	if c.hires {
		for h := c.dmaStrtHires; h < c.dmaStopHires; h++ {
			c.dmaEvent[h] = bplSubTableHires(bpu, h-c.dmaStrtHires)
		}
		for h := c.dmaStrtHires; h < c.dmaStopHires; h++ {
			if c.dmaEvent[h] == DmaBplH1 {
				if c.dmaFirstBpl1Event < 0 {
					c.dmaFirstBpl1Event = h
				}
				c.dmaLastBpl1Event = h
			}
		}
	} else {
		for h := c.dmaStrtLores; h < c.dmaStopLores; h++ {
			c.dmaEvent[h] = bplSubTableLores(bpu, (h-c.dmaStrtLores)%8)
		}
		for h := c.dmaStrtLores; h < c.dmaStopLores; h++ {
			if c.dmaEvent[h] == DmaBplL1 {
				if c.dmaFirstBpl1Event < 0 {
					c.dmaFirstBpl1Event = h
				}
				c.dmaLastBpl1Event = h
			}
		}
	}

	c.updateJumpTable()
}

// recomputeDdfWindow derives dmaStrt/StopLores/Hires from DDFSTRT/STOP
// per the alignment rule.
func (c *Chipset) recomputeDdfWindow() {
	ddfstrt := int(c.ddfstrt)
	ddfstop := int(c.ddfstop)

	c.dmaStrtHires = ddfstrt
	shift := ddfstrt & 0b100
	c.dmaStrtLores = ddfstrt + shift

	stop := ddfstop
	if stop > 0xD8 {
		stop = 0xD8
	}
	fetchUnits := ((stop - ddfstrt) + 15) >> 3
	if fetchUnits < 0 {
		fetchUnits = 0
	}

	lstop := c.dmaStrtLores + 8*fetchUnits
	if lstop > 0xE0 {
		lstop = 0xE0
	}
	hstop := c.dmaStrtHires + 8*fetchUnits
	if hstop > 0xE0 {
		hstop = 0xE0
	}
	c.dmaStopLores = lstop
	c.dmaStopHires = hstop

	if c.dmaStrtLores < 0 {
		c.dmaStrtLores = 0
	}
	if c.dmaStrtHires < 0 {
		c.dmaStrtHires = 0
	}
	if c.dmaStrtLores >= lineCycles {
		c.dmaStrtLores = lineCycles - 1
	}
	if c.dmaStrtHires >= lineCycles {
		c.dmaStrtHires = lineCycles - 1
	}
}

// updateJumpTable sweeps right-to-left filling nextDmaEvent[h] with the
// smallest h' > h where dmaEvent[h'] != NONE, or 0 if none. Two
// consecutive calls yield identical output.
func (c *Chipset) updateJumpTable() {
	next := 0
	for h := len(c.dmaEvent) - 1; h >= 0; h-- {
		c.nextDmaEvent[h] = next
		if c.dmaEvent[h] != DmaNone {
			next = h
		}
	}
}
