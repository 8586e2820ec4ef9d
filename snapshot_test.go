// snapshot_test.go - snapshot save/restore reproduces chipset state exactly

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func mutateChipsetForSnapshot(c *Chipset) {
	c.PokeChip(RegDMACON, 0x8200, SourceCPU)
	c.PokeChip(RegBPLCON0, 0x4200, SourceCPU)
	c.PokeChip(RegDDFSTRT, 0x0038, SourceCPU)
	c.PokeChip(RegDDFSTOP, 0x00D0, SourceCPU)
	c.ExecuteUntil(16 * masterCyclesPerDMA)
	c.PokeChip(RegDIWSTRT, 0x2C81, SourceCPU)
	c.ExecuteUntil(32 * masterCyclesPerDMA)
}

func TestSnapshotInMemoryRoundTripPreservesBeamAndClock(t *testing.T) {
	c, _ := newTestChipset(t)
	mutateChipsetForSnapshot(c)

	want := c.TakeSnapshot()

	fresh, _ := newTestChipset(t)
	fresh.RestoreSnapshot(want)
	got := fresh.TakeSnapshot()

	if got.Clock != want.Clock {
		t.Fatalf("Clock = %d, want %d", got.Clock, want.Clock)
	}
	if got.V != want.V || got.H != want.H {
		t.Fatalf("beam = (%d,%d), want (%d,%d)", got.V, got.H, want.V, want.H)
	}
	if got.FrameNr != want.FrameNr {
		t.Fatalf("FrameNr = %d, want %d", got.FrameNr, want.FrameNr)
	}
	if got.Dmacon != want.Dmacon {
		t.Fatalf("Dmacon = 0x%04X, want 0x%04X", got.Dmacon, want.Dmacon)
	}
	if got.ActiveBitplanes != want.ActiveBitplanes {
		t.Fatalf("ActiveBitplanes = %d, want %d", got.ActiveBitplanes, want.ActiveBitplanes)
	}
	if got.DmaEvent != want.DmaEvent {
		t.Fatal("DmaEvent array differs after restore")
	}
	if got.NextDmaEvent != want.NextDmaEvent {
		t.Fatal("NextDmaEvent array differs after restore")
	}
}

func TestSnapshotRestorePreservesSlotTriggers(t *testing.T) {
	c, _ := newTestChipset(t)
	c.PokeChip(RegDIWSTRT, 0x2C81, SourceCPU) // arms SlotREG two DMA cycles out
	want := c.TakeSnapshot()

	fresh, _ := newTestChipset(t)
	fresh.RestoreSnapshot(want)

	for slot := Slot(0); slot < numSlots; slot++ {
		if got, w := fresh.sched.Trigger(slot), c.sched.Trigger(slot); got != w {
			t.Fatalf("slot %v trigger = %d, want %d", slot, got, w)
		}
	}
}

func TestSnapshotFileRoundTripMatchesInMemorySnapshot(t *testing.T) {
	c, _ := newTestChipset(t)
	mutateChipsetForSnapshot(c)
	want := c.TakeSnapshot()

	path := filepath.Join(t.TempDir(), "snap.achp")
	if err := SaveSnapshotToFile(path, want); err != nil {
		t.Fatalf("SaveSnapshotToFile: %v", err)
	}

	got, err := LoadSnapshotFromFile(path)
	if err != nil {
		t.Fatalf("LoadSnapshotFromFile: %v", err)
	}

	if got != want {
		t.Fatal("loaded snapshot does not equal the saved snapshot byte-for-byte")
	}
}

func TestLoadSnapshotFromFileRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.achp")
	if err := SaveSnapshotToFile(path, Snapshot{}); err != nil {
		t.Fatalf("SaveSnapshotToFile: %v", err)
	}

	// Corrupt the magic bytes in place.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back snapshot file: %v", err)
	}
	data[0] = 'X'
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("rewrite corrupted snapshot file: %v", err)
	}

	if _, err := LoadSnapshotFromFile(path); err == nil {
		t.Fatal("LoadSnapshotFromFile accepted a corrupted magic, want an error")
	}
}

func TestRestoreSnapshotThenRunStillHoldsBeamInvariant(t *testing.T) {
	c, _ := newTestChipset(t)
	mutateChipsetForSnapshot(c)
	snap := c.TakeSnapshot()

	fresh, _ := newTestChipset(t)
	fresh.RestoreSnapshot(snap)

	for i := 0; i < 50; i++ {
		fresh.ExecuteUntil(fresh.Clock() + masterCyclesPerDMA)
		v, h := fresh.Beam()
		if h < 0 || h > HPosMax {
			t.Fatalf("h = %d out of bounds after restore", h)
		}
		if v < 0 || v >= fresh.NumLines() {
			t.Fatalf("v = %d out of bounds after restore", v)
		}
	}
}
