// beam_clock_test.go - HSYNC beam/flip-flop advance behaviour

package main

import "testing"

// hsync's horizontal DIW flip-flop carries state from the previous line:
// a valid (non -1) hFlopOff means the close trigger armed and fired by
// end of line, so the new line starts closed; a valid hFlopOn with
// hFlopOff left at -1 means the window stayed open; if both are -1,
// neither trigger armed and hFlop keeps its prior value.
func TestHsyncCarriesOverHFlopFromPreviousLine(t *testing.T) {
	tests := []struct {
		name           string
		hFlopBefore    bool
		hFlopOnBefore  int
		hFlopOffBefore int
		wantHFlopAfter bool
	}{
		{"hFlopOff fired closes the window", true, 100, 200, false},
		{"only hFlopOn fired opens the window", false, 100, -1, true},
		{"neither fired carries hFlop unchanged (true)", true, -1, -1, true},
		{"neither fired carries hFlop unchanged (false)", false, -1, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestChipset(t)
			c.v = 100
			c.h = HPosMax
			c.hFlop = tt.hFlopBefore
			c.hFlopOn = tt.hFlopOnBefore
			c.hFlopOff = tt.hFlopOffBefore
			c.diwHstrt = 0x40
			c.diwHstop = 0x180

			c.hsync()

			if c.hFlop != tt.wantHFlopAfter {
				t.Fatalf("hFlop after hsync = %v, want %v", c.hFlop, tt.wantHFlopAfter)
			}
			if c.hFlopOn != c.diwHstrt {
				t.Fatalf("hFlopOn after hsync = %d, want %d (this line's diwHstrt)", c.hFlopOn, c.diwHstrt)
			}
			if c.hFlopOff != c.diwHstop {
				t.Fatalf("hFlopOff after hsync = %d, want %d (this line's diwHstop)", c.hFlopOff, c.diwHstop)
			}
		})
	}
}
