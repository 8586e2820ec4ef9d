// register_queue_test.go - REG delay queue timing and the BPLxPT skip rule

package main

import "testing"

func TestPokeChipAppliesImmediateRegistersWithoutDelay(t *testing.T) {
	c, _ := newTestChipset(t)
	c.PokeChip(RegBPLCON0, 0x1000, SourceCPU)
	if c.activeBitplanes != 1 {
		t.Fatalf("activeBitplanes = %d, want 1 (BPLCON0 applies immediately)", c.activeBitplanes)
	}
}

func TestPokeChipDelaysDiwstrtByTwoDmaCycles(t *testing.T) {
	c, _ := newTestChipset(t)
	before := c.diwVstrt
	c.PokeChip(RegDIWSTRT, 0x2C00, SourceCPU)

	if c.diwVstrt != before {
		t.Fatal("DIWSTRT applied immediately, want deferred through the REG slot")
	}
	if !c.sched.IsPending(SlotREG) {
		t.Fatal("SlotREG not armed after a delayed register write")
	}
	if got := c.sched.Trigger(SlotREG); got != 2*masterCyclesPerDMA {
		t.Fatalf("SlotREG trigger = %d, want %d", got, 2*masterCyclesPerDMA)
	}

	c.ExecuteUntil(3 * masterCyclesPerDMA)
	if c.diwVstrt == before {
		t.Fatal("DIWSTRT never applied after its delay elapsed")
	}
}

func TestRegQueuePreservesFIFOOrderAcrossTwoWrites(t *testing.T) {
	c, _ := newTestChipset(t)
	c.PokeChip(RegDIWSTRT, 0x1000, SourceCPU)
	c.ExecuteUntil(masterCyclesPerDMA) // one cycle later, still pending
	c.PokeChip(RegDIWSTOP, 0x2000, SourceCPU)

	c.ExecuteUntil(4 * masterCyclesPerDMA)

	if c.diwVstrt != 0x10 {
		t.Fatalf("diwVstrt = 0x%02X, want 0x10 (first write applied)", c.diwVstrt)
	}
	if c.diwstop != 0x2000 {
		t.Fatalf("diwstop = 0x%04X, want 0x2000 (second write applied)", c.diwstop)
	}
}

func TestApplyDmaconWriteSetBitPattern(t *testing.T) {
	c, _ := newTestChipset(t)
	c.PokeChip(RegDMACON, 0x8200, SourceCPU) // set bit, DMAEN
	if c.dmacon&dmaconDMAEN == 0 {
		t.Fatalf("dmacon = 0x%04X, want DMAEN set", c.dmacon)
	}
	c.PokeChip(RegDMACON, 0x0200, SourceCPU) // clear bit, DMAEN
	if c.dmacon&dmaconDMAEN != 0 {
		t.Fatalf("dmacon = 0x%04X, want DMAEN cleared", c.dmacon)
	}
}

func TestBplPtWriteAppliesWhenNotInTheLossWindow(t *testing.T) {
	c, _ := newTestChipset(t)
	c.h = 0
	for i := range c.dmaEvent {
		c.dmaEvent[i] = DmaNone
	}
	c.applyBplPtHalf(0, 0x0007, true)
	if c.bplpt[0]>>16 != 0x7 {
		t.Fatalf("bplpt[0] high bits = 0x%X, want 0x7", c.bplpt[0]>>16)
	}
}

func TestBplPtWriteIsLostInSkipWindow(t *testing.T) {
	c, _ := newTestChipset(t)
	c.h = 5
	for i := range c.dmaEvent {
		c.dmaEvent[i] = DmaNone
	}
	c.dmaEvent[6] = DmaBplL1 // next cycle is this plane's BPL event
	c.dmaEvent[7] = DmaNone  // cycle after that is NONE -> loss window

	before := c.bplpt[0]
	c.applyBplPtHalf(0, 0x0007, true)

	if c.bplpt[0] != before {
		t.Fatalf("bplpt[0] changed to 0x%X, want unchanged 0x%X (write lost per skip rule)", c.bplpt[0], before)
	}
}

func TestBplPtWriteSurvivesWhenFollowingCycleIsNotNone(t *testing.T) {
	c, _ := newTestChipset(t)
	c.h = 5
	for i := range c.dmaEvent {
		c.dmaEvent[i] = DmaNone
	}
	c.dmaEvent[6] = DmaBplL1
	c.dmaEvent[7] = DmaBplL2 // not NONE -> write survives

	c.applyBplPtHalf(0, 0x0007, true)
	if c.bplpt[0]>>16 != 0x7 {
		t.Fatal("write was lost even though the cycle after the BPL event is not NONE")
	}
}

func TestBplPtWriteSurvivesWhenNextCycleIsDifferentPlane(t *testing.T) {
	c, _ := newTestChipset(t)
	c.h = 5
	for i := range c.dmaEvent {
		c.dmaEvent[i] = DmaNone
	}
	c.dmaEvent[6] = DmaBplL2 // different plane
	c.dmaEvent[7] = DmaNone

	c.applyBplPtHalf(0, 0x0007, true)
	if c.bplpt[0]>>16 != 0x7 {
		t.Fatal("write lost even though the next event is a different plane")
	}
}

func TestSprChannelForRegMapsPointerPairsSequentially(t *testing.T) {
	if got := sprChannelForReg(RegSPR0PTH); got != 0 {
		t.Fatalf("sprChannelForReg(SPR0PTH) = %d, want 0", got)
	}
	if got := sprChannelForReg(RegSPR3PTL); got != 3 {
		t.Fatalf("sprChannelForReg(SPR3PTL) = %d, want 3", got)
	}
	if got := sprChannelForReg(RegSPR7PTH); got != 7 {
		t.Fatalf("sprChannelForReg(SPR7PTH) = %d, want 7", got)
	}
}
