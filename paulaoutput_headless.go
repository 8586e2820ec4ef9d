// paulaoutput_headless.go - No-op demo PaulaSink for headless test builds

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

import "sync"

// OtoSink is the headless stand-in for paulaoutput_oto.go's real audio
// player, grounded on audio_backend_headless.go's no-device counterpart
// to audio_backend_oto.go. It appends fetched samples to an in-memory
// slice so scenario tests can assert on mixdown without opening an audio
// device.
type OtoSink struct {
	mu         sync.Mutex
	enabled    [4]bool
	lastIntreq uint16
	samples    []float32
}

// NewOtoSink returns a headless sink that records samples in memory.
func NewOtoSink() (*OtoSink, error) {
	return &OtoSink{}, nil
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

func (s *OtoSink) AudioExecuteUntil(clock int64) {}

func (s *OtoSink) AudioFillWordFor(channel int, word uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if channel < 0 || channel >= 4 || !s.enabled[channel] {
		return
	}
	hi := int8(byte(word >> 8))
	lo := int8(byte(word))
	s.samples = append(s.samples, (float32(hi)+float32(lo))/256.0)
}

func (s *OtoSink) IntreqRaise(mask uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastIntreq = mask
}

// Samples returns a copy of the recorded sample stream, for test
// assertions.
func (s *OtoSink) Samples() []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]float32, len(s.samples))
	copy(out, s.samples)
	return out
}

func (s *OtoSink) Close() error { return nil }
