// dma_slot_table_test.go - Jump-table correctness, idempotence and DAS lookup

package main

import "testing"

func TestUpdateJumpTableIsIdempotent(t *testing.T) {
	c, _ := newTestChipset(t)
	c.dmaEvent[10] = DmaBplL1
	c.dmaEvent[50] = DmaBplL2
	c.dmaEvent[200] = DmaBplEOL

	c.updateJumpTable()
	var first [lineCycles]int
	copy(first[:], c.nextDmaEvent[:])

	c.updateJumpTable()
	for i := range first {
		if c.nextDmaEvent[i] != first[i] {
			t.Fatalf("updateJumpTable not idempotent at h=%d: %d != %d", i, c.nextDmaEvent[i], first[i])
		}
	}
}

func TestJumpTableFindsNextSetEntry(t *testing.T) {
	c, _ := newTestChipset(t)
	c.dmaEvent[10] = DmaBplL1
	c.dmaEvent[50] = DmaBplL2
	c.updateJumpTable()

	if got := c.nextDmaEvent[0]; got != 10 {
		t.Fatalf("nextDmaEvent[0] = %d, want 10", got)
	}
	if got := c.nextDmaEvent[9]; got != 10 {
		t.Fatalf("nextDmaEvent[9] = %d, want 10", got)
	}
	if got := c.nextDmaEvent[10]; got != 50 {
		t.Fatalf("nextDmaEvent[10] = %d, want 50 (lookup is strictly-greater)", got)
	}
	if got := c.nextDmaEvent[50]; got != 0 {
		t.Fatalf("nextDmaEvent[50] = %d, want 0 (no further entries this line)", got)
	}
	if got := c.nextDmaEvent[lineCycles-1]; got != 0 {
		t.Fatalf("nextDmaEvent[last] = %d, want 0", got)
	}
}

func TestJumpTableWithNoEventsIsAllZero(t *testing.T) {
	c, _ := newTestChipset(t)
	c.updateJumpTable()
	for h, next := range c.nextDmaEvent {
		if next != 0 {
			t.Fatalf("nextDmaEvent[%d] = %d, want 0 with no events scheduled", h, next)
		}
	}
}

func TestBplSubTableLoresAssignsExpectedOffsets(t *testing.T) {
	cases := []struct {
		offset int
		bpu    int
		want   DmaEventKind
	}{
		{7, 1, DmaBplL1},
		{3, 2, DmaBplL2},
		{5, 3, DmaBplL3},
		{1, 4, DmaBplL4},
		{6, 5, DmaBplL5},
		{2, 6, DmaBplL6},
		{7, 0, DmaNone},
		{0, 6, DmaNone},
	}
	for _, tc := range cases {
		if got := bplSubTableLores(tc.bpu, tc.offset); got != tc.want {
			t.Errorf("bplSubTableLores(bpu=%d, o=%d) = %v, want %v", tc.bpu, tc.offset, got, tc.want)
		}
	}
}

func TestBplSubTableHiresRepeatsEveryFourCycles(t *testing.T) {
	for _, base := range []int{0, 4} {
		if got := bplSubTableHires(4, base); got != DmaBplH4 {
			t.Errorf("bplSubTableHires(4, %d) = %v, want H4", base, got)
		}
	}
	if got := bplSubTableHires(1, 3); got != DmaBplH1 {
		t.Errorf("bplSubTableHires(1, 3) = %v, want H1", got)
	}
	if got := bplSubTableHires(1, 0); got != DmaNone {
		t.Errorf("bplSubTableHires(1, 0) = %v, want NONE (bpu too small for H4 slot)", got)
	}
}

func TestPlaneIndexForKindCoversAllPlaneKinds(t *testing.T) {
	cases := map[DmaEventKind]int{
		DmaBplL1: 0, DmaBplH1: 0,
		DmaBplL2: 1, DmaBplH2: 1,
		DmaBplL3: 2, DmaBplH3: 2,
		DmaBplL4: 3, DmaBplH4: 3,
		DmaBplL5: 4,
		DmaBplL6: 5,
	}
	for kind, want := range cases {
		if got := planeIndexForKind(kind); got != want {
			t.Errorf("planeIndexForKind(%v) = %d, want %d", kind, got, want)
		}
	}
	if got := planeIndexForKind(DmaNone); got != -1 {
		t.Errorf("planeIndexForKind(DmaNone) = %d, want -1", got)
	}
}

func TestBuildDASTablesNeverPointsAtAnUnrequiredSlot(t *testing.T) {
	c, _ := newTestChipset(t)
	c.buildDASTables()
	for mask := 0; mask < dasMaskSize; mask++ {
		for _, id := range dasSlotOrder {
			next := c.nextDASEvent[id][mask]
			if next == dasNone {
				continue
			}
			if !dasRequired(next, mask) {
				t.Fatalf("mask=%06b id=%v: nextDASEvent points at unrequired slot %v", mask, id, next)
			}
		}
	}
}

func TestBitplaneDmaGateRespectsVerticalWindowAndEnables(t *testing.T) {
	c, _ := newTestChipset(t)
	c.activeBitplanes = 2
	c.dmacon = dmaconDMAEN | dmaconBPLEN
	c.vFlop = true

	c.v = 25
	if c.bitplaneDmaGate() {
		t.Fatal("gate open before vertical display window (v=25)")
	}
	c.v = 26
	if !c.bitplaneDmaGate() {
		t.Fatal("gate closed at v=26, want open")
	}
	c.v = c.numLines - 1
	if c.bitplaneDmaGate() {
		t.Fatal("gate open on the last line, want closed")
	}

	c.v = 100
	c.vFlop = false
	if c.bitplaneDmaGate() {
		t.Fatal("gate open with vFlop false")
	}
}
