// scenario.go - Lua-scripted end-to-end scenario driver

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
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// scenarioRegNames maps the textual register mnemonics a scenario script
// uses onto RegID, so scripts read as register mnemonics rather than raw
// addresses.
var scenarioRegNames = map[string]RegID{
	"DMACON":   RegDMACON,
	"DSKPTH":   RegDSKPTH,
	"DSKPTL":   RegDSKPTL,
	"DIWSTRT":  RegDIWSTRT,
	"DIWSTOP":  RegDIWSTOP,
	"DDFSTRT":  RegDDFSTRT,
	"DDFSTOP":  RegDDFSTOP,
	"BPL1PTH":  RegBPL1PTH,
	"BPL1PTL":  RegBPL1PTL,
	"BPL2PTH":  RegBPL2PTH,
	"BPL2PTL":  RegBPL2PTL,
	"BPL3PTH":  RegBPL3PTH,
	"BPL3PTL":  RegBPL3PTL,
	"BPL4PTH":  RegBPL4PTH,
	"BPL4PTL":  RegBPL4PTL,
	"BPL5PTH":  RegBPL5PTH,
	"BPL5PTL":  RegBPL5PTL,
	"BPL6PTH":  RegBPL6PTH,
	"BPL6PTL":  RegBPL6PTL,
	"BPL1MOD":  RegBPL1MOD,
	"BPL2MOD":  RegBPL2MOD,
	"BPLCON0":  RegBPLCON0,
	"COPCON":   RegCOPCON,
	"COPJMP1":  RegCOPJMP1,
	"COPJMP2":  RegCOPJMP2,
	"COP1LCH":  RegCOP1LCH,
	"COP1LCL":  RegCOP1LCL,
	"COP2LCH":  RegCOP2LCH,
	"COP2LCL":  RegCOP2LCL,
	"COPINS":   RegCOPINS,
}

// ScenarioRunner drives a Chipset from a Lua script, so end-to-end
// register-timing scenarios can be written as short data files rather
// than hand-rolled Go setup in every test. Built on gopher-lua, following
// its own documented embedding patterns.
type ScenarioRunner struct {
	c *Chipset
	L *lua.LState
}

// NewScenarioRunner binds a scenario runner to c and registers the poke,
// run_cycles, run_until_vsync and beam globals a scenario script uses.
func NewScenarioRunner(c *Chipset) *ScenarioRunner {
	sr := &ScenarioRunner{c: c, L: lua.NewState()}
	sr.L.SetGlobal("poke", sr.L.NewFunction(sr.luaPoke))
	sr.L.SetGlobal("run_cycles", sr.L.NewFunction(sr.luaRunCycles))
	sr.L.SetGlobal("run_until_vsync", sr.L.NewFunction(sr.luaRunUntilVSync))
	sr.L.SetGlobal("beam_v", sr.L.NewFunction(sr.luaBeamV))
	sr.L.SetGlobal("beam_h", sr.L.NewFunction(sr.luaBeamH))
	sr.L.SetGlobal("poke_mem", sr.L.NewFunction(sr.luaPokeMem))
	return sr
}

// SetBeamFlopsForTest forces the vertical and horizontal display-window
// flip-flops open without waiting for a DIWSTRT/DIWSTOP-driven HSYNC
// transition. It does not move the beam: bitplane DMA still needs v in
// [26, numLines-1), so on the first line after reset (v=0) the table
// stays empty.
func (sr *ScenarioRunner) SetBeamFlopsForTest(vOpen, hOpen bool) {
	sr.c.vFlop = vOpen
	sr.c.hFlop = hOpen
}

func (sr *ScenarioRunner) luaPokeMem(L *lua.LState) int {
	addr := uint32(L.CheckInt(1))
	value := uint16(L.CheckInt(2))
	sr.c.ram.Write16(addr, value)
	return 0
}

func (sr *ScenarioRunner) luaPoke(L *lua.LState) int {
	name := L.CheckString(1)
	value := L.CheckInt(2)
	reg, ok := scenarioRegNames[name]
	if !ok {
		L.RaiseError("scenario: unknown register %q", name)
		return 0
	}
	sr.c.PokeChip(reg, uint16(value), SourceCPU)
	return 0
}

func (sr *ScenarioRunner) luaRunCycles(L *lua.LState) int {
	n := int64(L.CheckInt(1))
	sr.c.ExecuteUntil(sr.c.Clock() + n)
	return 0
}

func (sr *ScenarioRunner) luaRunUntilVSync(L *lua.LState) int {
	rl := NewRunLoop(sr.c)
	rl.RunUntilVSync()
	return 0
}

func (sr *ScenarioRunner) luaBeamV(L *lua.LState) int {
	v, _ := sr.c.Beam()
	L.Push(lua.LNumber(v))
	return 1
}

func (sr *ScenarioRunner) luaBeamH(L *lua.LState) int {
	_, h := sr.c.Beam()
	L.Push(lua.LNumber(h))
	return 1
}

// RunFile loads and executes a scenario script. The script drives the
// chipset purely through the poke/poke_mem/run_cycles/run_until_vsync/
// beam_* globals; assertions are made by the calling Go test afterward against
// the chipset's exported accessors and DiwGeometry/DdfGeometry.
func (sr *ScenarioRunner) RunFile(path string) error {
	if err := sr.L.DoFile(path); err != nil {
		return fmt.Errorf("scenario %s: %w", path, err)
	}
	return nil
}

// RunString executes scenario source directly, for scenarios embedded
// in _test.go files rather than loaded from testdata.
func (sr *ScenarioRunner) RunString(src string) error {
	if err := sr.L.DoString(src); err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	return nil
}

// Close releases the Lua interpreter state.
func (sr *ScenarioRunner) Close() {
	sr.L.Close()
}
