// snapshot.go - Chipset state snapshot format (save/load round-trip)

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

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	snapshotMagic   = "ACHP"
	snapshotVersion = uint32(1)
)

// Snapshot is the contiguous byte-stream payload of a save file,
// visiting the persistent items in the documented fixed order. Integer
// endianness is little-endian, per DESIGN.md's Open Question decision.
type Snapshot struct {
	SlotTriggers [numSlots]int64

	Clock      int64
	FrameNr    uint64
	Interlaced bool
	NumLines   int32
	LOF        bool
	V, H       int32

	Diwstrt, Diwstop   uint16
	DiwVstrt, DiwVstop int32
	DiwHstrt, DiwHstop int32
	Ddfstrt, Ddfstop   uint8

	Dmacon uint16
	Dskpt  uint32
	Audlc  [4]uint32

	Bplpt           [6]uint32
	Bpl1mod         int16
	Bpl2mod         int16
	ActiveBitplanes int32

	Sprpt       [8]uint32
	SprVStrt    [8]int32
	SprVStop    [8]int32
	SprDmaState [8]uint8

	DmaEvent          [lineCycles]uint8
	NextDmaEvent      [lineCycles]int32
	DmaFirstBpl1Event int32
	DmaLastBpl1Event  int32

	HsyncActions bool
}

// TakeSnapshot copies every persistent field into a Snapshot value,
// guarded by the inspection mutex so a concurrent reader always sees a
// coherent copy (the inspection-snapshot guarantee).
func (c *Chipset) TakeSnapshot() Snapshot {
	var s Snapshot
	for slot := Slot(0); slot < numSlots; slot++ {
		s.SlotTriggers[slot] = c.sched.Trigger(slot)
	}
	s.Clock = c.clock
	s.FrameNr = c.frameNr
	s.Interlaced = c.interlaced
	s.NumLines = int32(c.numLines)
	s.LOF = c.lof
	s.V, s.H = int32(c.v), int32(c.h)

	s.Diwstrt, s.Diwstop = c.diwstrt, c.diwstop
	s.DiwVstrt, s.DiwVstop = int32(c.diwVstrt), int32(c.diwVstop)
	s.DiwHstrt, s.DiwHstop = int32(c.diwHstrt), int32(c.diwHstop)
	s.Ddfstrt, s.Ddfstop = c.ddfstrt, c.ddfstop

	s.Dmacon = c.dmacon
	s.Dskpt = c.dskpt
	s.Audlc = c.audlc

	s.Bplpt = c.bplpt
	s.Bpl1mod, s.Bpl2mod = c.bpl1mod, c.bpl2mod
	s.ActiveBitplanes = int32(c.activeBitplanes)

	s.Sprpt = c.sprpt
	for i := 0; i < 8; i++ {
		s.SprVStrt[i] = int32(c.sprVStrt[i])
		s.SprVStop[i] = int32(c.sprVStop[i])
		s.SprDmaState[i] = uint8(c.sprDmaState[i])
	}

	for i := range c.dmaEvent {
		s.DmaEvent[i] = uint8(c.dmaEvent[i])
		s.NextDmaEvent[i] = int32(c.nextDmaEvent[i])
	}
	s.DmaFirstBpl1Event = int32(c.dmaFirstBpl1Event)
	s.DmaLastBpl1Event = int32(c.dmaLastBpl1Event)

	s.HsyncActions = !c.ddfstrtReached

	c.inspectMu.Lock()
	c.inspect = s
	c.inspectMu.Unlock()
	return s
}

// InspectionSnapshot returns the most recently published inspection
// snapshot without touching live chipset state, for a concurrent reader
// (e.g. a GUI or console goroutine).
func (c *Chipset) InspectionSnapshot() Snapshot {
	c.inspectMu.RLock()
	defer c.inspectMu.RUnlock()
	return c.inspect
}

// RestoreSnapshot writes every field of s back into the chipset,
// rebuilding the derived lookup tables afterward (DAS tables depend
// only on code, not on loaded state, but the jump table depends on the
// restored dmaEvent array).
func (c *Chipset) RestoreSnapshot(s Snapshot) {
	for slot := Slot(0); slot < numSlots; slot++ {
		if s.SlotTriggers[slot] == NeverCycle {
			c.sched.Cancel(slot)
		} else {
			c.sched.ScheduleAbs(slot, s.SlotTriggers[slot], 0, 0)
		}
	}
	c.clock = s.Clock
	c.frameNr = s.FrameNr
	c.interlaced = s.Interlaced
	c.numLines = int(s.NumLines)
	c.lof = s.LOF
	c.v, c.h = int(s.V), int(s.H)

	c.diwstrt, c.diwstop = s.Diwstrt, s.Diwstop
	c.diwVstrt, c.diwVstop = int(s.DiwVstrt), int(s.DiwVstop)
	c.diwHstrt, c.diwHstop = int(s.DiwHstrt), int(s.DiwHstop)
	c.ddfstrt, c.ddfstop = s.Ddfstrt, s.Ddfstop

	c.dmacon = s.Dmacon
	c.dskpt = s.Dskpt
	c.audlc = s.Audlc

	c.bplpt = s.Bplpt
	c.bpl1mod, c.bpl2mod = s.Bpl1mod, s.Bpl2mod
	c.activeBitplanes = int(s.ActiveBitplanes)

	c.sprpt = s.Sprpt
	for i := 0; i < 8; i++ {
		c.sprVStrt[i] = int(s.SprVStrt[i])
		c.sprVStop[i] = int(s.SprVStop[i])
		c.sprDmaState[i] = SpriteDmaState(s.SprDmaState[i])
	}

	for i := range c.dmaEvent {
		c.dmaEvent[i] = DmaEventKind(s.DmaEvent[i])
		c.nextDmaEvent[i] = int(s.NextDmaEvent[i])
	}
	c.dmaFirstBpl1Event = int(s.DmaFirstBpl1Event)
	c.dmaLastBpl1Event = int(s.DmaLastBpl1Event)
	c.ddfstrtReached = !s.HsyncActions

	c.recomputeDdfWindow()
	c.updateJumpTable()
}

// SaveSnapshotToFile serialises s and writes it to path, following
// debug_snapshot.go's magic+version+gzip-compressed-body layout.
func SaveSnapshotToFile(path string, s Snapshot) error {
	var body bytes.Buffer
	if err := binary.Write(&body, binary.LittleEndian, s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(snapshotMagic); err != nil {
		return fmt.Errorf("write snapshot magic: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, snapshotVersion); err != nil {
		return fmt.Errorf("write snapshot version: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(body.Len())); err != nil {
		return fmt.Errorf("write snapshot uncompressed length: %w", err)
	}

	gz := gzip.NewWriter(f)
	if _, err := gz.Write(body.Bytes()); err != nil {
		return fmt.Errorf("compress snapshot body: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("finalise snapshot body: %w", err)
	}
	return nil
}

// LoadSnapshotFromFile reverses SaveSnapshotToFile. A magic or version
// mismatch is a fatal configuration error;
// the chipset itself is left untouched by a failed load.
func LoadSnapshotFromFile(path string) (Snapshot, error) {
	var s Snapshot
	f, err := os.Open(path)
	if err != nil {
		return s, fmt.Errorf("open snapshot file: %w", err)
	}
	defer f.Close()

	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(f, magic); err != nil {
		return s, fmt.Errorf("read snapshot magic: %w", err)
	}
	if string(magic) != snapshotMagic {
		return s, fmt.Errorf("snapshot magic mismatch: got %q want %q", magic, snapshotMagic)
	}

	var version uint32
	if err := binary.Read(f, binary.LittleEndian, &version); err != nil {
		return s, fmt.Errorf("read snapshot version: %w", err)
	}
	if version != snapshotVersion {
		return s, fmt.Errorf("snapshot version mismatch: got %d want %d", version, snapshotVersion)
	}

	var uncompressedLen uint32
	if err := binary.Read(f, binary.LittleEndian, &uncompressedLen); err != nil {
		return s, fmt.Errorf("read snapshot length: %w", err)
	}

	gz, err := gzip.NewReader(f)
	if err != nil {
		return s, fmt.Errorf("open snapshot gzip body: %w", err)
	}
	defer gz.Close()

	body, err := io.ReadAll(gz)
	if err != nil {
		return s, fmt.Errorf("read snapshot body: %w", err)
	}
	if uint32(len(body)) != uncompressedLen {
		return s, fmt.Errorf("snapshot size mismatch: got %d bytes want %d", len(body), uncompressedLen)
	}

	if err := binary.Read(bytes.NewReader(body), binary.LittleEndian, &s); err != nil {
		return s, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
