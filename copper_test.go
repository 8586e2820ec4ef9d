// copper_test.go - Copper comparator, next-match descent and register decode

package main

import "testing"

func TestCopperComparatorMatchesExactBeamPosition(t *testing.T) {
	cop1ins := uint16(0x5000) // vp=0x50, hp=0x00
	cop2ins := uint16(0xFF00) // vm=0x7F, hm=0x00 -> any h matches once v matches
	beam := (uint32(0x50) << 8) | 0x00
	if !copperComparator(beam, cop1ins, cop2ins) {
		t.Fatal("comparator false at exact target position")
	}
}

func TestCopperComparatorFalseBeforeTarget(t *testing.T) {
	cop1ins := uint16(0x5000)
	cop2ins := uint16(0xFF00)
	beam := (uint32(0x4F) << 8) | 0x00
	if copperComparator(beam, cop1ins, cop2ins) {
		t.Fatal("comparator true before target line")
	}
}

func TestCopperComparatorVMaskAlwaysIncludesBit7(t *testing.T) {
	// vm field in cop2ins is 0x00, but bit 7 of V is forced into the mask
	// regardless, by design.
	cop1ins := uint16(0x0000)
	cop2ins := uint16(0x0000)
	beamAtBit7 := uint32(0x80) << 8
	if !copperComparator(beamAtBit7, cop1ins, cop2ins) {
		t.Fatal("comparator false when V bit 7 set and target V bit 7 clear (mask should force bit 7 compare)")
	}
}

func TestCopperComparatorHMaskNeverIncludesBit0(t *testing.T) {
	// hm is ANDed with 0xFE unconditionally, so an odd target h still
	// matches an even beam h at the same coarse position.
	cop1ins := uint16(0x0001) // hp = 0x01
	cop2ins := uint16(0xFF01) // hm field = 0x01 -> masked to 0x00
	beam := uint32(0x00) << 8 // v=0, h=0
	if !copperComparator(beam, cop1ins, cop2ins) {
		t.Fatal("comparator false when bit 0 of H should have been masked out")
	}
}

func TestCopperNextMatchFindsMinimumFutureMatch(t *testing.T) {
	cop1ins := uint16(0x6400) // vp = 0x64
	cop2ins := uint16(0xFF00) // any h
	beam := uint32(0x10) << 8 // currently well before v=0x64

	target, ok := copperNextMatch(beam, cop1ins, cop2ins)
	if !ok {
		t.Fatal("copperNextMatch reported no match, want a match at v=0x64")
	}
	if gotV := target >> 8; gotV != 0x64 {
		t.Fatalf("matched v = 0x%02X, want 0x64", gotV)
	}
	if !copperComparator(target, cop1ins, cop2ins) {
		t.Fatal("reported match does not itself satisfy the comparator")
	}
}

func TestCopperNextMatchRespectsMinimumAdvance(t *testing.T) {
	cop1ins := uint16(0x0000)
	cop2ins := uint16(0xFF00) // matches everywhere once v>=0
	beam := uint32(0x10) << 8

	target, ok := copperNextMatch(beam, cop1ins, cop2ins)
	if !ok {
		t.Fatal("expected a match")
	}
	if target < beam+2 {
		t.Fatalf("target 0x%X is not at least beam+2 (0x%X)", target, beam+2)
	}
}

func TestCopperNextMatchNoMatchForRestOfFrame(t *testing.T) {
	// vp = 0xFF, hp = 0x00 with full masks; the beam already sits past
	// 0x1FFE2, the last position the search can reach this frame.
	cop1ins := uint16(0xFF00)
	cop2ins := uint16(0xFF00)
	beam := uint32(0x1FFE2) + 4
	if _, ok := copperNextMatch(beam, cop1ins, cop2ins); ok {
		t.Fatal("expected no match past the representable beam ceiling")
	}
}

func TestBeamDiffComputesCyclesAcrossLines(t *testing.T) {
	from := uint32(10)<<8 | 5
	target := uint32(11)<<8 | 5
	if got := beamDiff(from, target); got != lineCycles {
		t.Fatalf("beamDiff across one line = %d, want %d", got, lineCycles)
	}
}

func TestBeamDiffSameLine(t *testing.T) {
	from := uint32(10)<<8 | 5
	target := uint32(10)<<8 | 20
	if got := beamDiff(from, target); got != 15 {
		t.Fatalf("beamDiff same line = %d, want 15", got)
	}
}

func TestRegIDForAddressKnownAndUnknown(t *testing.T) {
	if id, ok := regIDForAddress(0x096); !ok || id != RegDMACON {
		t.Fatalf("regIDForAddress(0x096) = (%v, %v), want (RegDMACON, true)", id, ok)
	}
	if id, ok := regIDForAddress(0x100); !ok || id != RegBPLCON0 {
		t.Fatalf("regIDForAddress(0x100) = (%v, %v), want (RegBPLCON0, true)", id, ok)
	}
	if _, ok := regIDForAddress(0xFFF); ok {
		t.Fatal("regIDForAddress(0xFFF) reported ok, want unknown address rejected")
	}
}

func TestCopperWriteRegisterColourBypassesRegisterBus(t *testing.T) {
	c, _ := newTestChipset(t)
	denise := &fakeDenise{}
	c.denise = denise
	c.h = 3

	c.copperWriteRegister(0x180, 0x0F00)

	if len(denise.colorChanges) != 1 {
		t.Fatalf("got %d color changes, want 1", len(denise.colorChanges))
	}
	if denise.colorChanges[0].pixelOff != 12 {
		t.Fatalf("pixelOff = %d, want 12 (4*h)", denise.colorChanges[0].pixelOff)
	}
}

func TestCopperMoveRejectsIllegalAddressBelowMinLegal(t *testing.T) {
	c, _ := newTestChipset(t)
	c.cdang = false
	c.coppc = 0
	c.cop1ins = 0x0010 // reg 0x010 < 0x80 minLegal, not colour range
	c.sched.ScheduleAbs(SlotCOP, 1000, EventID(copFetch), 0)

	c.copperMove()

	if c.sched.IsPending(SlotCOP) {
		t.Fatal("Copper still scheduled after an illegal-address MOVE, want it stopped")
	}
}

func TestCopperMoveWritesRegisterBusForLegalAddress(t *testing.T) {
	c, ram := newTestChipset(t)
	c.cdang = false
	c.coppc = 0x1000
	c.cop1ins = 0x0096 // DMACON

	ram.Write16(0x1000, 0x8200) // set DMAEN via the Copper's MOVE data word

	c.copperMove()

	if c.dmacon&dmaconDMAEN == 0 {
		t.Fatalf("dmacon = 0x%04X, want DMAEN set after MOVE to DMACON", c.dmacon)
	}
}

type colorChange struct {
	reg, value uint16
	pixelOff   int
}

type fakeDenise struct {
	colorChanges []colorChange
}

func (f *fakeDenise) BeginOfLine(v int)                {}
func (f *fakeDenise) EndOfLine(v int)                  {}
func (f *fakeDenise) SetFirstLastCanvasPixel(a, b int) {}
func (f *fakeDenise) BplSliceWord(plane int, word uint16) {}
func (f *fakeDenise) RecordColorChange(reg uint16, value uint16, pixelOff int) {
	f.colorChanges = append(f.colorChanges, colorChange{reg, value, pixelOff})
}
func (f *fakeDenise) BplconBPU() int    { return 0 }
func (f *fakeDenise) Hires() bool      { return false }
func (f *fakeDenise) BplconLace() bool { return false }
