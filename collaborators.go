// collaborators.go - Narrow external-collaborator interfaces for the chipset core

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

// ChipRAM is the 19-bit even-aligned memory the bus arbiter, Copper and
// register queue fetch from and write to. A real implementation is
// chip_ram.go's flat byte slice; tests may substitute a smaller fake.
type ChipRAM interface {
	Read16(addr uint32) uint16
	Write16(addr uint32, value uint16)
}

// DeniseSink receives the per-cycle bitplane/colour stream the arbiter
// and Copper produce. Denise's own pixel serialisation is out of scope;
// this is only the narrow feed a real Denise (or a demo renderer) consumes.
type DeniseSink interface {
	BeginOfLine(v int)
	EndOfLine(v int)
	SetFirstLastCanvasPixel(first, last int)
	RecordColorChange(reg uint16, value uint16, pixelOff int)
	BplSliceWord(plane int, word uint16)

	BplconBPU() int
	Hires() bool
	BplconLace() bool
}

// PaulaSink receives audio DMA events and interrupt requests. Paula's
// own audio/UART/disk-FIFO internals are out of scope.
type PaulaSink interface {
	AudioEnableDMA(ch int)
	AudioDisableDMA(ch int)
	AudioExecuteUntil(clock int64)
	AudioFillWordFor(ch int, word uint16)
	IntreqRaise(mask uint16)
}

// CIASink receives the time-of-day tick driven by HSYNC (CIA-B) and
// VSYNC (CIA-A). CIA internals proper are out of scope.
type CIASink interface {
	IncrementTOD()
}

// BlitterSink is the narrow view the Copper needs of the Blitter: bus
// cycles it consumes are accounted for by the arbiter directly, but the
// Copper's WAIT/SKIP interlock needs busy/zero status and notification
// of DMACON transitions. Blitter internals proper are out of scope.
type BlitterSink interface {
	DmaconUpdate(old, new uint16)
	IsBusy() bool
	IsZero() bool
}

// DiskSink is the narrow collaborator for disk DMA fetches; floppy MFM
// encode/decode and the drive mechanics are out of scope.
type DiskSink interface {
	FetchWord(word uint16)
}
