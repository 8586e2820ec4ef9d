// chip_ram.go - Flat chip-RAM implementation of the ChipRAM collaborator

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
	"encoding/binary"
	"fmt"
	"sync"
)

// ChipMemSize is the 19-bit chip-RAM address span (512 KiB), the
// largest OCS chip-RAM configuration.
const ChipMemSize = 1 << 19

// FlatChipRAM is a contiguous byte slice implementing ChipRAM, grounded
// on machine_bus.go's MachineBus: a mutex-guarded buffer with
// binary.LittleEndian 16-bit accessors. Unlike MachineBus this core
// drops the multi-CPU sign-extension and page-bitmap machinery, since
// chip RAM here is a single flat 19-bit space with no addressing-width
// variants to serve.
type FlatChipRAM struct {
	mu   sync.RWMutex
	data []byte
}

// NewFlatChipRAM allocates size bytes of chip RAM. A size of zero or
// less, or above ChipMemSize, is an error; odd sizes are rounded down.
func NewFlatChipRAM(size int) (*FlatChipRAM, error) {
	if size <= 0 || size > ChipMemSize {
		return nil, fmt.Errorf("chip ram: invalid size %d (max %d)", size, ChipMemSize)
	}
	return &FlatChipRAM{data: make([]byte, size&^1)}, nil
}

// Read16 reads a little-endian word at addr, wrapping into range.
func (r *FlatChipRAM) Read16(addr uint32) uint16 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a := int(addr) % len(r.data)
	a &^= 1
	return binary.LittleEndian.Uint16(r.data[a : a+2])
}

// Write16 writes a little-endian word at addr, wrapping into range.
func (r *FlatChipRAM) Write16(addr uint32, value uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := int(addr) % len(r.data)
	a &^= 1
	binary.LittleEndian.PutUint16(r.data[a:a+2], value)
}

// Load copies program bytes into chip RAM starting at addr.
func (r *FlatChipRAM) Load(addr uint32, program []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(addr)+len(program) > len(r.data) {
		return fmt.Errorf("chip ram: load of %d bytes at 0x%05X exceeds %d-byte ram", len(program), addr, len(r.data))
	}
	copy(r.data[addr:], program)
	return nil
}

// Reset zeroes the entire chip-RAM buffer.
func (r *FlatChipRAM) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.data {
		r.data[i] = 0
	}
}

// Size returns the configured chip-RAM size in bytes.
func (r *FlatChipRAM) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
