// paulaoutput_oto.go - Demo PaulaSink backed by ebitengine/oto v3

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
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

const otoSampleRate = 44100

// OtoSink is a demo PaulaSink: the four DMA audio channels are mixed
// into a single float32 ring buffer that oto's player goroutine drains
// on its own schedule, decoupling the host audio callback from the
// chipset's cooperative run loop. Grounded on audio_backend_oto.go's
// OtoPlayer/ring-buffer split, narrowed to the PaulaSink contract - it
// is a demo mixdown, not a sample-exact Paula channel model.
type OtoSink struct {
	mu sync.Mutex

	ctx    *oto.Context
	player *oto.Player

	ring     []float32
	ringHead int
	ringTail int

	enabled    [4]bool
	lastIntreq uint16
}

// NewOtoSink opens an oto playback context and starts streaming silence
// until AudioFillWordFor begins pushing samples.
func NewOtoSink() (*OtoSink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   otoSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	})
	if err != nil {
		return nil, fmt.Errorf("paula sink: open audio context: %w", err)
	}
	<-ready

	s := &OtoSink{ctx: ctx, ring: make([]float32, otoSampleRate)}
	s.player = ctx.NewPlayer(s)
	s.player.Play()
	return s, nil
}

// Read implements io.Reader for oto's pull model, draining the ring
// buffer and padding with silence on underrun.
func (s *OtoSink) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(p) / 4
	for i := 0; i < n; i++ {
		var v float32
		if s.ringHead != s.ringTail {
			v = s.ring[s.ringHead]
			s.ringHead = (s.ringHead + 1) % len(s.ring)
		}
		putFloat32LE(p[i*4:i*4+4], v)
	}
	return n * 4, nil
}

func putFloat32LE(b []byte, f float32) {
	bits := math.Float32bits(f)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}

func (s *OtoSink) AudioEnableDMA(channel int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if channel >= 0 && channel < 4 {
		s.enabled[channel] = true
	}
}

func (s *OtoSink) AudioDisableDMA(channel int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if channel >= 0 && channel < 4 {
		s.enabled[channel] = false
	}
}

// AudioExecuteUntil is a no-op for the demo sink: mixdown happens
// eagerly in AudioFillWordFor rather than being scheduled against the
// master clock.
func (s *OtoSink) AudioExecuteUntil(clock int64) {}

// AudioFillWordFor converts a fetched 8-bit signed sample pair into the
// mixed float32 stream and appends it to the ring buffer.
func (s *OtoSink) AudioFillWordFor(channel int, word uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if channel < 0 || channel >= 4 || !s.enabled[channel] {
		return
	}
	hi := int8(byte(word >> 8))
	lo := int8(byte(word))
	mix := (float32(hi) + float32(lo)) / 256.0

	next := (s.ringTail + 1) % len(s.ring)
	if next == s.ringHead {
		return
	}
	s.ring[s.ringTail] = mix
	s.ringTail = next
}

// IntreqRaise records the most recently raised interrupt mask; the
// demo sink has no interrupt controller of its own to forward it to.
func (s *OtoSink) IntreqRaise(mask uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastIntreq = mask
}

// Close stops playback and releases the oto player.
func (s *OtoSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player != nil {
		_ = s.player.Close()
	}
	return nil
}
