// bus_arbiter_test.go - BPL/DAS fetch agents, bus ownership and sprite attach

package main

import "testing"

func TestHandleBPLAdvancesPointerByTwoAndWraps(t *testing.T) {
	c, _ := newTestChipset(t)
	c.activeBitplanes = 1
	c.dmaEvent[7] = DmaBplL1
	c.bplpt[0] = uint32(c.ram.(*FlatChipRAM).Size() - 2)

	c.handleBPL(0, 7, c.clock)

	if c.bplpt[0] != 0 {
		t.Fatalf("bplpt[0] = 0x%05X, want wrap to 0", c.bplpt[0])
	}
}

func TestHandleBPLRecordsBusOwnership(t *testing.T) {
	c, _ := newTestChipset(t)
	c.activeBitplanes = 1
	c.dmaEvent[7] = DmaBplL1

	c.handleBPL(0, 7, c.clock)

	if c.busOwner[7] != BusBitplane {
		t.Fatalf("busOwner[7] = %v, want BusBitplane", c.busOwner[7])
	}
}

func TestHandleBPLSkipsPlaneBeyondActiveCount(t *testing.T) {
	c, _ := newTestChipset(t)
	c.activeBitplanes = 0
	c.dmaEvent[7] = DmaBplL1

	c.handleBPL(0, 7, c.clock)

	if c.busOwner[7] != BusNone {
		t.Fatalf("busOwner[7] = %v, want BusNone (plane exceeds activeBitplanes)", c.busOwner[7])
	}
}

func TestCopperAndBitplaneNeverOwnTheSameCycle(t *testing.T) {
	c, _ := newTestChipset(t)
	c.dmaEvent[7] = DmaBplL1
	c.activeBitplanes = 1
	c.handleBPL(0, 7, c.clock)

	c.h = 7
	if c.copperCanDoDMA() {
		t.Fatal("Copper reports the bus free on a cycle bitplane DMA already claimed")
	}
}

func TestCopperCannotUseCycle0xE0(t *testing.T) {
	c, _ := newTestChipset(t)
	c.h = 0xE0
	if c.copperCanDoDMA() {
		t.Fatal("Copper reports 0xE0 available; that cycle is always denied")
	}
}

func TestDiskFetchAdvancesPointerByTwo(t *testing.T) {
	c, _ := newTestChipset(t)
	c.dmacon = dmaconDMAEN | dmaconDSKEN
	c.dskpt = 0x1000

	c.handleDAS(EventID(dasDisk0), 0, c.clock)

	if c.dskpt != 0x1002 {
		t.Fatalf("dskpt = 0x%05X, want 0x1002", c.dskpt)
	}
}

func TestDiskFetchIsNoOpWhenDiskDmaDisabled(t *testing.T) {
	c, _ := newTestChipset(t)
	c.dmacon = dmaconDMAEN
	c.dskpt = 0x1000

	c.handleDAS(EventID(dasDisk0), 0, c.clock)

	if c.dskpt != 0x1000 {
		t.Fatalf("dskpt = 0x%05X, want unchanged 0x1000 with DSKEN clear", c.dskpt)
	}
}

func TestSpriteAttachesAtVStrtAndDetachesAtVStop(t *testing.T) {
	c, _ := newTestChipset(t)
	c.dmacon = dmaconDMAEN | dmaconSPREN
	c.sprVStrt[0] = 50
	c.sprVStop[0] = 100

	c.v = 49
	c.handleSpriteFetch(0, 0x15)
	if c.sprDmaState[0] != SpriteIdle {
		t.Fatal("sprite attached before vstrt")
	}

	c.v = 50
	c.handleSpriteFetch(0, 0x15)
	if c.sprDmaState[0] != SpriteData {
		t.Fatal("sprite did not attach at vstrt")
	}

	c.v = 100
	c.handleSpriteFetch(0, 0x15)
	if c.sprDmaState[0] != SpriteIdle {
		t.Fatal("sprite did not detach at vstop")
	}
}

func TestDecodeSpriteControlWordSplitsVStrtVStop(t *testing.T) {
	var vstrt, vstop int
	decodeSpriteControlWord(&vstrt, &vstop, 0x6400)
	if vstrt != 0x64 {
		t.Fatalf("vstrt = 0x%02X, want 0x64", vstrt)
	}
}
