// bus_arbiter.go - BPL/DAS fetch agents and chip-bus ownership tracking

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

// handleBPL is the BPL slot's dispatch target: read chip RAM at
// bplpt[k], advance the pointer, record ownership, deliver the word to
// Denise, and schedule the next BPL event (see below).
func (c *Chipset) handleBPL(_ EventID, data int64, now int64) {
	h := int(data)
	kind := c.dmaEvent[h]
	plane := planeIndexForKind(kind)
	if plane < 0 || plane >= c.activeBitplanes {
		c.scheduleNextBpl(h)
		return
	}

	addr := c.bplpt[plane]
	var word uint16
	if c.ram != nil {
		word = c.ram.Read16(addr)
	}
	c.bplpt[plane] = wrapChipAddr(int32(addr) + 2)

	c.busOwner[h] = BusBitplane
	c.busValue[h] = word

	if c.denise != nil {
		c.denise.BplSliceWord(plane, word)
	}

	c.scheduleNextBpl(h)
}

func (c *Chipset) scheduleNextBpl(h int) {
	next := c.nextDmaEvent[h]
	if next == 0 && h != 0 {
		return // no more BPL events until next line's HSYNC rebuild
	}
	delta := next - h
	if delta <= 0 {
		delta += lineCycles
	}
	c.sched.ScheduleRel(SlotBPL, c.clock, int64(masterCyclesPerDMA*delta), EventID(0), int64(next))
}

// handleDAS is the DAS slot's dispatch target: perform whichever
// disk/audio/sprite fetch is due via the precomputed lookup tables
// together, then schedule the next one.
func (c *Chipset) handleDAS(id EventID, _ int64, now int64) {
	current := dasEventID(id)
	h := dasSlotH(current)
	if h < 0 {
		h = int((now - (now/lineCycles/masterCyclesPerDMA)*lineCycles*masterCyclesPerDMA) / masterCyclesPerDMA)
	}

	switch {
	case current == dasRefresh:
		c.busOwner[h] = BusNone
	case current == dasDisk0 || current == dasDisk1 || current == dasDisk2:
		if c.dmacon&dmaconDMAEN != 0 && c.dmacon&dmaconDSKEN != 0 {
			var word uint16
			if c.ram != nil {
				word = c.ram.Read16(c.dskpt)
			}
			c.dskpt = wrapChipAddr(int32(c.dskpt) + 2)
			c.busOwner[h] = BusDisk
			c.busValue[h] = word
			if c.disk != nil {
				c.disk.FetchWord(word)
			}
		}
	case current >= dasAudio0 && current <= dasAudio3:
		ch := int(current - dasAudio0)
		bit := uint16(1) << uint(ch)
		if c.dmacon&dmaconDMAEN != 0 && c.dmacon&bit != 0 {
			var word uint16
			if c.ram != nil {
				word = c.ram.Read16(c.audlc[ch])
			}
			c.audlc[ch] = wrapChipAddr(int32(c.audlc[ch]) + 2)
			c.busOwner[h] = BusAudio
			c.busValue[h] = word
			if c.paula != nil {
				c.paula.AudioFillWordFor(ch, word)
			}
		}
	case current >= dasSprite0 && current <= dasSprite7:
		c.handleSpriteFetch(int(current - dasSprite0), h)
	}

	mask := c.currentDASMask()
	next := c.nextDASEvent[current][mask]
	delay := c.nextDASDelay[current][mask]
	if next == dasNone {
		return
	}
	c.sched.ScheduleRel(SlotDAS, c.clock, int64(masterCyclesPerDMA*delay), EventID(next), 0)
}

// handleSpriteFetch implements the per-channel sprite DMA state machine
// for each sprite channel: on v==sprVStrt, attach (state -> DATA); on
// v==sprVStop, detach (state -> IDLE) and re-read the POS/CTL control
// words on the next two DAS slots for this channel; while attached, the
// same two DAS slots read DATA/DATB.
func (c *Chipset) handleSpriteFetch(ch int, h int) {
	if c.dmacon&dmaconDMAEN == 0 || c.dmacon&dmaconSPREN == 0 {
		return
	}
	if c.v == c.sprVStop[ch] && c.sprDmaState[ch] == SpriteData {
		c.sprDmaState[ch] = SpriteIdle
	}
	if c.v == c.sprVStrt[ch] && c.sprDmaState[ch] == SpriteIdle {
		c.sprDmaState[ch] = SpriteData
	}

	var word uint16
	if c.ram != nil {
		word = c.ram.Read16(c.sprpt[ch])
	}
	c.sprpt[ch] = wrapChipAddr(int32(c.sprpt[ch]) + 2)
	c.busOwner[h] = BusSprite
	c.busValue[h] = word

	if c.sprDmaState[ch] == SpriteIdle {
		// POS/CTL word: bit 7/8 pairs re-decode vstrt/vstop.
		decodeSpriteControlWord(&c.sprVStrt[ch], &c.sprVStop[ch], word)
	}
}

// decodeSpriteControlWord applies one half of the POS/CTL pair's
// bit-7/bit-8 vertical-start/stop encoding. A full decode needs both
// words; callers re-derive vstrt/vstop incrementally as each half
// arrives, matching real hardware's incremental latch behaviour.
func decodeSpriteControlWord(vstrt, vstop *int, word uint16) {
	*vstrt = (*vstrt &^ 0xFF) | int(word>>8)
	*vstop = (*vstop &^ 0xFF) | int((word<<1)>>9)
}
