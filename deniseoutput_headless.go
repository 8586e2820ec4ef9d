// deniseoutput_headless.go - No-op demo DeniseSink for headless test builds

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

//go:build headless

package main

// EbitenSink is the headless stand-in used by scenario tests and CI,
// grounded on video_backend_headless.go's no-window counterpart to
// video_backend_ebiten.go. It records the same fields an inspector might
// want without opening a window.
type EbitenSink struct {
	bpu     int
	hires   bool
	lace    bool
	palette [32]uint16
	frames  int
}

// NewEbitenSink returns a headless sink; scaleW/scaleH are accepted for
// call-site parity with the windowed build but otherwise unused.
func NewEbitenSink(scaleW, scaleH int) *EbitenSink {
	return &EbitenSink{}
}

func (s *EbitenSink) BeginOfLine(v int)                 {}
func (s *EbitenSink) EndOfLine(v int)                   { s.frames++ }
func (s *EbitenSink) SetFirstLastCanvasPixel(a, b int)  {}
func (s *EbitenSink) BplSliceWord(plane int, word uint16) {}

func (s *EbitenSink) RecordColorChange(reg uint16, value uint16, pixelOff int) {
	idx := (reg - 0x180) / 2
	if int(idx) < len(s.palette) {
		s.palette[idx] = value
	}
}

func (s *EbitenSink) BplconBPU() int    { return s.bpu }
func (s *EbitenSink) Hires() bool      { return s.hires }
func (s *EbitenSink) BplconLace() bool { return s.lace }

func (s *EbitenSink) SetBitplaneMode(bpu int, hires, lace bool) {
	s.bpu, s.hires, s.lace = bpu, hires, lace
}
