// chipset.go - Root chipset component: wiring, constants and state

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

import "sync"

// Horizontal/vertical geometry constants (PAL OCS).
const (
	HPosMax    = 227 // h in [0, HPosMax]; HSYNC fires at h == HPosMax
	lineCycles = HPosMax + 1
	LongLines  = 313
	ShortLines = 312

	masterCyclesPerDMA = 8
)

// DmaEventKind tags a slot-table entry (see below).
type DmaEventKind uint8

const (
	DmaNone DmaEventKind = iota
	DmaBplL1
	DmaBplL2
	DmaBplL3
	DmaBplL4
	DmaBplL5
	DmaBplL6
	DmaBplH1
	DmaBplH2
	DmaBplH3
	DmaBplH4
	DmaBplSR
	DmaBplEOL
)

// BusOwner tags who held the chip bus during a given horizontal cycle.
type BusOwner uint8

const (
	BusNone BusOwner = iota
	BusCPU
	BusDisk
	BusAudio
	BusBitplane
	BusSprite
	BusCopper
	BusBlitter
)

// SpriteDmaState is a channel's attach-state machine (see below).
type SpriteDmaState uint8

const (
	SpriteIdle SpriteDmaState = iota
	SpriteData
)

// copperState enumerates the event ids posted to SlotCOP (see below).
type copperState EventID

const (
	copReqDMA copperState = iota
	copFetch
	copMove
	copWaitSkip
	copJmp1
	copJmp2
	copWaitBlit
	copVBlank
)

// RunControl is the outer driver's bitset (see below).
type RunControl uint32

const (
	RunSnapshot   RunControl = 1 << 0
	RunInspect    RunControl = 1 << 1
	RunTrace      RunControl = 1 << 2
	RunBreakpoint RunControl = 1 << 3
	RunStop       RunControl = 1 << 4
)

// dmaMask bit positions within DMACON, as consulted by the DAS table
// and bitplane gating.
const (
	dmaconBBUSY  uint16 = 1 << 14
	dmaconBZERO  uint16 = 1 << 13
	dmaconDMAEN  uint16 = 1 << 9
	dmaconBPLEN  uint16 = 1 << 8
	dmaconCOPEN  uint16 = 1 << 7
	dmaconBLTEN  uint16 = 1 << 6
	dmaconSPREN  uint16 = 1 << 5
	dmaconDSKEN  uint16 = 1 << 4
	dmaconAU0EN  uint16 = 1 << 0
	dmaconAU1EN  uint16 = 1 << 1
	dmaconAU2EN  uint16 = 1 << 2
	dmaconAU3EN  uint16 = 1 << 3
)

// Chipset is the root component: it owns
// the scheduler, beam clock, DMA table, bus arbiter, Copper, register
// queue and DIW/DDF geometry, plus narrow collaborator handles set once
// at construction. No component holds a back-pointer to Chipset; all
// cross-component calls go through the scheduler or these handles.
type Chipset struct {
	threadLock sync.Mutex

	sched *Scheduler

	// Beam / clock / frame (see below).
	v, h       int
	clock      int64
	frameNr    uint64
	interlaced bool
	numLines   int
	lof        bool

	// DMA slot table (see below).
	dmaEvent           [lineCycles]DmaEventKind
	nextDmaEvent       [lineCycles]int
	dmaFirstBpl1Event  int
	dmaLastBpl1Event   int
	dmaStrtLores       int
	dmaStopLores       int
	dmaStrtHires       int
	dmaStopHires       int
	ddfstrtReached     bool
	hsyncComputeDDF    bool

	// DAS lookup tables.
	nextDASEvent [dasIDCount][dasMaskSize]dasEventID
	nextDASDelay [dasIDCount][dasMaskSize]int

	// Bus ownership (see below).
	busOwner [lineCycles]BusOwner
	busValue [lineCycles]uint16

	// Copper state (see below).
	coppc      uint32
	cop1lc     uint32
	cop2lc     uint32
	cop1end    uint32
	cop2end    uint32
	cop1ins    uint16
	cop2ins    uint16
	cdang      bool
	copSkip    bool
	copServicing bool
	copcon     uint16

	// Sprite DMA (see below).
	sprpt       [8]uint32
	sprVStrt    [8]int
	sprVStop    [8]int
	sprDmaState [8]SpriteDmaState

	// Bitplane configuration (see below).
	activeBitplanes int
	hires           bool
	bplcon0         uint16
	bplpt           [6]uint32
	bpl1mod         int16
	bpl2mod         int16

	// DIW/DDF geometry ().
	diwstrt, diwstop   uint16
	diwVstrt, diwVstop int
	diwHstrt, diwHstop int
	ddfstrt, ddfstop   uint8

	vFlop              bool
	hFlop               bool
	hFlopOn, hFlopOff   int

	// DMACON and disk/audio pointers.
	dmacon uint16
	dskpt  uint32
	audlc  [4]uint32

	// Register-change queue (see below).
	regQueue []regQueueEntry

	lastFrameSyncWarn bool
	warpMode          bool

	// Collaborators ( design notes — dependency
	// injection, no back-pointers).
	ram     ChipRAM
	denise  DeniseSink
	paula   PaulaSink
	ciaA    CIASink
	ciaB    CIASink
	blitter BlitterSink
	disk    DiskSink

	runCtrl   RunControl
	inspectMu sync.RWMutex
	inspect   Snapshot
}

// ChipsetOption configures a Chipset at construction time.
type ChipsetOption func(*Chipset)

// WithChipRAM wires the chip-RAM collaborator.
func WithChipRAM(ram ChipRAM) ChipsetOption {
	return func(c *Chipset) { c.ram = ram }
}

// WithDenise wires the Denise collaborator.
func WithDenise(d DeniseSink) ChipsetOption {
	return func(c *Chipset) { c.denise = d }
}

// WithPaula wires the Paula collaborator.
func WithPaula(p PaulaSink) ChipsetOption {
	return func(c *Chipset) { c.paula = p }
}

// WithCIAA wires the CIA-A collaborator (ticked on VSYNC).
func WithCIAA(a CIASink) ChipsetOption {
	return func(c *Chipset) { c.ciaA = a }
}

// WithCIAB wires the CIA-B collaborator (ticked on HSYNC).
func WithCIAB(b CIASink) ChipsetOption {
	return func(c *Chipset) { c.ciaB = b }
}

// WithBlitter wires the Blitter collaborator.
func WithBlitter(b BlitterSink) ChipsetOption {
	return func(c *Chipset) { c.blitter = b }
}

// WithDisk wires the disk collaborator.
func WithDisk(d DiskSink) ChipsetOption {
	return func(c *Chipset) { c.disk = d }
}

// WithWarpMode disables host timing synchronisation at VSYNC.
func WithWarpMode(warp bool) ChipsetOption {
	return func(c *Chipset) { c.warpMode = warp }
}

// NewChipset constructs a chipset at power-on state with the given
// collaborators wired in. Collaborators left nil behave as no-ops; this
// lets tests exercise the core without a real Denise/Paula/CIA/Blitter.
func NewChipset(opts ...ChipsetOption) *Chipset {
	c := &Chipset{sched: NewScheduler()}
	for _, opt := range opts {
		opt(c)
	}
	c.wireHandlers()
	c.Reset()
	return c
}

func (c *Chipset) wireHandlers() {
	c.sched.SetHandler(SlotREG, c.handleREG)
	c.sched.SetHandler(SlotBPL, c.handleBPL)
	c.sched.SetHandler(SlotDAS, c.handleDAS)
	c.sched.SetHandler(SlotCOP, c.handleCOP)
	c.sched.SetHandler(SlotCIAA, func(EventID, int64, int64) {})
	c.sched.SetHandler(SlotCIAB, func(EventID, int64, int64) {})
}

// Reset restores power-on state: long frame, beam at origin, all DMA
// disabled, Copper stopped. Follows component_reset.go's convention of
// a per-component Reset() restoring constructor defaults.
func (c *Chipset) Reset() {
	c.sched.Reset()
	c.v, c.h = 0, 0
	c.clock = 0
	c.frameNr = 0
	c.interlaced = false
	c.numLines = LongLines
	c.lof = true

	for i := range c.dmaEvent {
		c.dmaEvent[i] = DmaNone
		c.nextDmaEvent[i] = 0
		c.busOwner[i] = BusNone
		c.busValue[i] = 0
	}
	c.buildDASTables()

	c.coppc, c.cop1lc, c.cop2lc = 0, 0, 0
	c.cop1end, c.cop2end = 0, 0
	c.cop1ins, c.cop2ins = 0, 0
	c.cdang, c.copSkip, c.copServicing = false, false, false
	c.copcon = 0

	for i := range c.sprpt {
		c.sprpt[i] = 0
		c.sprVStrt[i] = 0
		c.sprVStop[i] = 0
		c.sprDmaState[i] = SpriteIdle
	}

	c.activeBitplanes = 0
	c.hires = false
	c.bplcon0 = 0
	for i := range c.bplpt {
		c.bplpt[i] = 0
	}
	c.bpl1mod, c.bpl2mod = 0, 0

	c.diwstrt, c.diwstop = 0, 0
	c.diwVstrt, c.diwVstop = 0, 0
	c.diwHstrt, c.diwHstop = -1, -1
	c.ddfstrt, c.ddfstop = 0, 0
	c.vFlop, c.hFlop = false, false
	c.hFlopOn, c.hFlopOff = -1, -1

	c.dmacon = 0
	c.dskpt = 0
	for i := range c.audlc {
		c.audlc[i] = 0
	}

	c.regQueue = nil
	c.runCtrl = 0

	c.inspectMu.Lock()
	c.inspect = Snapshot{}
	c.inspectMu.Unlock()
}

// Clock returns the current master-cycle count.
func (c *Chipset) Clock() int64 { return c.clock }

// Beam returns the current beam position.
func (c *Chipset) Beam() (v, h int) { return c.v, c.h }

// NumLines returns the line count of the current frame.
func (c *Chipset) NumLines() int { return c.numLines }

// FrameNr returns the VSYNC-incremented frame counter.
func (c *Chipset) FrameNr() uint64 { return c.frameNr }

// SetRunControl ORs bits into the run-loop control flags.
func (c *Chipset) SetRunControl(bits RunControl) {
	c.runCtrl |= bits
}

// ClearRunControl ANDs bits out of the run-loop control flags.
func (c *Chipset) ClearRunControl(bits RunControl) {
	c.runCtrl &^= bits
}

// RunControlFlags returns the current run-loop control flags.
func (c *Chipset) RunControlFlags() RunControl {
	return c.runCtrl
}
