// event_scheduler.go - Multi-slot event scheduler for the chipset timing core

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

// Slot names the fixed set of scheduler slots. Identity is stable, not
// numeric order; new secondary slots are appended, never renumbered.
type Slot int

const (
	SlotREG Slot = iota
	SlotCIAA
	SlotCIAB
	SlotBPL
	SlotDAS
	SlotCOP
	SlotBLT
	SlotSEC
	SlotAudio0
	SlotAudio1
	SlotAudio2
	SlotAudio3
	SlotDiskRotation
	SlotKeyboard
	SlotPotgo
	SlotInterrupt
	SlotInspector
	numSlots
)

func (s Slot) String() string {
	switch s {
	case SlotREG:
		return "REG"
	case SlotCIAA:
		return "CIAA"
	case SlotCIAB:
		return "CIAB"
	case SlotBPL:
		return "BPL"
	case SlotDAS:
		return "DAS"
	case SlotCOP:
		return "COP"
	case SlotBLT:
		return "BLT"
	case SlotSEC:
		return "SEC"
	case SlotAudio0, SlotAudio1, SlotAudio2, SlotAudio3:
		return "AUDIO"
	case SlotDiskRotation:
		return "DISK_ROTATION"
	case SlotKeyboard:
		return "KEYBOARD"
	case SlotPotgo:
		return "POTGO"
	case SlotInterrupt:
		return "INTERRUPT"
	case SlotInspector:
		return "INSPECTOR"
	default:
		return "UNKNOWN_SLOT"
	}
}

// NeverCycle is the sentinel trigger meaning "this slot is not pending".
// It must be preserved through arithmetic: any attempt to offset it
// saturates back to NeverCycle rather than wrapping.
const NeverCycle int64 = 1<<63 - 1

// EventID tags what a dispatched event means to its slot's handler. The
// bit pattern is opaque to the scheduler; only the handler interprets it.
type EventID int32

// pendingEvent is the one-event-per-slot record the scheduler tracks.
type pendingEvent struct {
	trigger int64
	id      EventID
	data    int64
}

// HandlerFunc is invoked by execute_due for a slot whose trigger has
// arrived. now is the master-cycle value execute_due was called with
// (not necessarily equal to trigger, since execute_due only guarantees
// trigger <= now).
type HandlerFunc func(id EventID, data int64, now int64)

// Scheduler is the multi-slot timer backing the chipset's event loop:
// each named slot holds at most one pending event, and ExecuteDue
// dispatches every slot whose trigger has arrived in the fixed order
// REG, BPL, DAS, COP, BLT, with the remaining slots
// trailing in declaration order.
type Scheduler struct {
	slots       [numSlots]pendingEvent
	handlers    [numSlots]HandlerFunc
	nextTrigger int64
	lateCount   uint64
}

// dispatchOrder is the fixed order of simultaneously-due slots required
// within a tick: REG before the arbiter-driven slots, and among
// those BPL before DAS before COP before BLT, because pending register
// writes must take effect before the cycle they gate and the real chip
// bus priority is bitplane > DAS > sprite > Copper > Blitter > CPU.
var dispatchOrder = [...]Slot{
	SlotREG, SlotBPL, SlotDAS, SlotCOP, SlotBLT,
	SlotCIAA, SlotCIAB, SlotSEC,
	SlotAudio0, SlotAudio1, SlotAudio2, SlotAudio3,
	SlotDiskRotation, SlotKeyboard, SlotPotgo, SlotInterrupt, SlotInspector,
}

// NewScheduler returns a scheduler with every slot inactive.
func NewScheduler() *Scheduler {
	s := &Scheduler{}
	s.Reset()
	return s
}

// Reset restores every slot to inactive and clears the late-event counter.
func (s *Scheduler) Reset() {
	for i := range s.slots {
		s.slots[i] = pendingEvent{trigger: NeverCycle}
	}
	s.nextTrigger = NeverCycle
	s.lateCount = 0
}

// SetHandler installs the dispatch function for a slot. Handlers are
// wired once at chipset construction and never change afterwards.
func (s *Scheduler) SetHandler(slot Slot, h HandlerFunc) {
	s.handlers[slot] = h
}

func saturatingAdd(trigger int64, delta int64) int64 {
	if trigger >= NeverCycle-delta {
		return NeverCycle
	}
	return trigger + delta
}

// ScheduleAbs arms slot to fire at the given absolute master-cycle trigger.
func (s *Scheduler) ScheduleAbs(slot Slot, when int64, id EventID, data int64) {
	s.slots[slot] = pendingEvent{trigger: when, id: id, data: data}
	s.recomputeNextTrigger()
}

// ScheduleRel arms slot to fire delta master cycles from now.
func (s *Scheduler) ScheduleRel(slot Slot, now int64, delta int64, id EventID, data int64) {
	s.ScheduleAbs(slot, saturatingAdd(now, delta), id, data)
}

// RescheduleInc nudges an already-pending slot's trigger forward by
// delta master cycles, preserving its id/data, so a caller can back an
// event off without re-specifying its payload.
func (s *Scheduler) RescheduleInc(slot Slot, delta int64) {
	e := &s.slots[slot]
	if e.trigger == NeverCycle {
		return
	}
	e.trigger = saturatingAdd(e.trigger, delta)
	s.recomputeNextTrigger()
}

// Cancel deactivates slot; its next IsPending call reports false.
func (s *Scheduler) Cancel(slot Slot) {
	s.slots[slot].trigger = NeverCycle
	s.recomputeNextTrigger()
}

// IsPending reports whether slot currently holds a live event.
func (s *Scheduler) IsPending(slot Slot) bool {
	return s.slots[slot].trigger != NeverCycle
}

// Trigger returns slot's current trigger cycle, or NeverCycle if inactive.
func (s *Scheduler) Trigger(slot Slot) int64 {
	return s.slots[slot].trigger
}

// NextTrigger returns the cached minimum trigger across active slots,
// across active slots.
func (s *Scheduler) NextTrigger() int64 {
	return s.nextTrigger
}

// LateEvents returns the number of events ExecuteDue dispatched after
// their trigger (trigger strictly before the dispatch cycle); a late
// event gets a warning counter rather than a rejected schedule.
func (s *Scheduler) LateEvents() uint64 {
	return s.lateCount
}

func (s *Scheduler) recomputeNextTrigger() {
	min := NeverCycle
	for i := range s.slots {
		if t := s.slots[i].trigger; t < min {
			min = t
		}
	}
	s.nextTrigger = min
}

// ExecuteDue dispatches every slot whose trigger has arrived (trigger
// <= now), in the fixed dispatchOrder, clearing each slot before
// invoking its handler so that a handler which immediately
// reschedules the same slot does not appear still-pending to a
// handler later in the same pass. The scheduling calls store a past
// trigger as given; such an event is dispatched on the next ExecuteDue
// call, never dropped, and counted in LateEvents.
func (s *Scheduler) ExecuteDue(now int64) {
	for _, slot := range dispatchOrder {
		e := &s.slots[slot]
		if e.trigger == NeverCycle || e.trigger > now {
			continue
		}
		if e.trigger < now {
			s.lateCount++
		}
		id, data := e.id, e.data
		e.trigger = NeverCycle
		if h := s.handlers[slot]; h != nil {
			h(id, data, now)
		}
	}
	s.recomputeNextTrigger()
}
