// deniseoutput_ebiten.go - Windowed demo DeniseSink backed by Ebitengine

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

//go:build !headless

package main

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

const (
	deniseCanvasW = 384
	deniseCanvasH = 288
)

// amigaColor decodes a 12-bit OCS colour register value (0x0RGB) to RGBA.
func amigaColor(value uint16) color.RGBA {
	r := uint8((value>>8)&0xF) * 17
	g := uint8((value>>4)&0xF) * 17
	b := uint8(value&0xF) * 17
	return color.RGBA{r, g, b, 0xFF}
}

// EbitenSink is a demo DeniseSink: it accumulates the bitplane word
// stream into a planar framebuffer and paints it into an ebiten window,
// scaled with golang.org/x/image/draw's bilinear scaler. Grounded on
// video_backend_ebiten.go's EbitenOutput struct shape and video_chip.go's
// double-buffer idea, narrowed to the DeniseSink contract; it is a thin
// stand-in exercising the narrow collaborator interface, not a real
// Denise pixel-serialisation implementation.
type EbitenSink struct {
	mu sync.Mutex

	palette [32]color.RGBA
	planes  [6][]byte // one bit per displayed pixel, packed per line
	lineBuf [deniseCanvasW]color.RGBA

	front *image.RGBA
	back  *image.RGBA

	bpu   int
	hires bool
	lace  bool

	curLine    int
	firstPixel int
	lastPixel  int

	scaled *ebiten.Image
	window *ebiten.Image

	scaleW, scaleH int
}

// NewEbitenSink constructs a demo sink with scaleW x scaleH window
// dimensions.
func NewEbitenSink(scaleW, scaleH int) *EbitenSink {
	s := &EbitenSink{scaleW: scaleW, scaleH: scaleH}
	s.front = image.NewRGBA(image.Rect(0, 0, deniseCanvasW, deniseCanvasH))
	s.back = image.NewRGBA(image.Rect(0, 0, deniseCanvasW, deniseCanvasH))
	for i := range s.planes {
		s.planes[i] = make([]byte, deniseCanvasW/8)
	}
	for i := range s.palette {
		s.palette[i] = color.RGBA{0, 0, 0, 0xFF}
	}
	return s
}

func (s *EbitenSink) BeginOfLine(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.curLine = v
	for i := range s.planes {
		for j := range s.planes[i] {
			s.planes[i][j] = 0
		}
	}
}

func (s *EbitenSink) EndOfLine(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v < 0 || v >= deniseCanvasH {
		return
	}
	for px := 0; px < deniseCanvasW; px++ {
		idx := 0
		byteIdx, bitIdx := px/8, 7-px%8
		for p := 0; p < s.bpu && p < 6; p++ {
			if s.planes[p][byteIdx]&(1<<uint(bitIdx)) != 0 {
				idx |= 1 << uint(p)
			}
		}
		s.back.SetRGBA(px, v, s.palette[idx&0x1F])
	}
}

func (s *EbitenSink) SetFirstLastCanvasPixel(first, last int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.firstPixel, s.lastPixel = first, last
}

func (s *EbitenSink) RecordColorChange(reg uint16, value uint16, pixelOff int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := (reg - 0x180) / 2
	if int(idx) < len(s.palette) {
		s.palette[idx] = amigaColor(value)
	}
}

func (s *EbitenSink) BplSliceWord(plane int, word uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if plane < 0 || plane >= len(s.planes) {
		return
	}
	for bit := 0; bit < 16; bit++ {
		px := bit
		if px >= deniseCanvasW {
			break
		}
		byteIdx, bitIdx := px/8, 7-px%8
		if word&(1<<uint(15-bit)) != 0 {
			s.planes[plane][byteIdx] |= 1 << uint(bitIdx)
		}
	}
}

func (s *EbitenSink) BplconBPU() int    { s.mu.Lock(); defer s.mu.Unlock(); return s.bpu }
func (s *EbitenSink) Hires() bool      { s.mu.Lock(); defer s.mu.Unlock(); return s.hires }
func (s *EbitenSink) BplconLace() bool { s.mu.Lock(); defer s.mu.Unlock(); return s.lace }

// SetBitplaneMode lets the demo driver tell the sink how many planes to
// composite and whether hires/interlace applies, since the narrow
// DeniseSink contract is a push interface from the core's point of view.
func (s *EbitenSink) SetBitplaneMode(bpu int, hires, lace bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bpu, s.hires, s.lace = bpu, hires, lace
}

// PublishFrame swaps the back buffer to front and uploads it to the
// ebiten window, scaled with draw.BiLinear.
func (s *EbitenSink) PublishFrame(window *ebiten.Image) {
	s.mu.Lock()
	s.front, s.back = s.back, s.front
	src := s.front
	s.mu.Unlock()

	if s.scaled == nil {
		s.scaled = ebiten.NewImage(s.scaleW, s.scaleH)
	}
	dst := image.NewRGBA(image.Rect(0, 0, s.scaleW, s.scaleH))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	s.scaled.WritePixels(dst.Pix)
	window.DrawImage(s.scaled, nil)
}
