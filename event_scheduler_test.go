// event_scheduler_test.go - Scheduler slot invariants and dispatch order

package main

import "testing"

func TestSchedulerResetLeavesEverySlotInactive(t *testing.T) {
	s := NewScheduler()
	for slot := Slot(0); slot < numSlots; slot++ {
		if s.IsPending(slot) {
			t.Fatalf("slot %v pending after Reset", slot)
		}
	}
	if got := s.NextTrigger(); got != NeverCycle {
		t.Fatalf("NextTrigger() = %d, want NeverCycle", got)
	}
}

func TestScheduleAbsArmsExactlyOneSlot(t *testing.T) {
	s := NewScheduler()
	s.ScheduleAbs(SlotCOP, 100, EventID(1), 0)

	if !s.IsPending(SlotCOP) {
		t.Fatal("SlotCOP not pending after ScheduleAbs")
	}
	for slot := Slot(0); slot < numSlots; slot++ {
		if slot == SlotCOP {
			continue
		}
		if s.IsPending(slot) {
			t.Fatalf("slot %v unexpectedly pending", slot)
		}
	}
}

func TestNextTriggerTracksMinimumAcrossSlots(t *testing.T) {
	s := NewScheduler()
	s.ScheduleAbs(SlotCOP, 500, EventID(1), 0)
	s.ScheduleAbs(SlotBPL, 100, EventID(2), 0)
	s.ScheduleAbs(SlotDAS, 300, EventID(3), 0)

	if got := s.NextTrigger(); got != 100 {
		t.Fatalf("NextTrigger() = %d, want 100", got)
	}

	s.Cancel(SlotBPL)
	if got := s.NextTrigger(); got != 300 {
		t.Fatalf("NextTrigger() after cancel = %d, want 300", got)
	}
}

func TestSaturatingAddNeverOverflowsPastNeverCycle(t *testing.T) {
	got := saturatingAdd(NeverCycle-1, 10)
	if got != NeverCycle {
		t.Fatalf("saturatingAdd near ceiling = %d, want NeverCycle", got)
	}
	got = saturatingAdd(NeverCycle, 1)
	if got != NeverCycle {
		t.Fatalf("saturatingAdd(NeverCycle, 1) = %d, want NeverCycle", got)
	}
}

func TestRescheduleIncIsNoOpOnInactiveSlot(t *testing.T) {
	s := NewScheduler()
	s.RescheduleInc(SlotCOP, 50)
	if s.IsPending(SlotCOP) {
		t.Fatal("RescheduleInc armed an inactive slot")
	}
}

func TestExecuteDueDispatchesInFixedOrder(t *testing.T) {
	s := NewScheduler()
	var fired []Slot

	record := func(slot Slot) HandlerFunc {
		return func(id EventID, data int64, now int64) {
			fired = append(fired, slot)
		}
	}
	for _, slot := range []Slot{SlotBLT, SlotCOP, SlotDAS, SlotBPL, SlotREG} {
		s.SetHandler(slot, record(slot))
	}

	// Arm in an order unrelated to dispatch priority.
	s.ScheduleAbs(SlotBLT, 10, 0, 0)
	s.ScheduleAbs(SlotREG, 10, 0, 0)
	s.ScheduleAbs(SlotDAS, 10, 0, 0)
	s.ScheduleAbs(SlotCOP, 10, 0, 0)
	s.ScheduleAbs(SlotBPL, 10, 0, 0)

	s.ExecuteDue(10)

	want := []Slot{SlotREG, SlotBPL, SlotDAS, SlotCOP, SlotBLT}
	if len(fired) != len(want) {
		t.Fatalf("fired = %v, want %v", fired, want)
	}
	for i, slot := range want {
		if fired[i] != slot {
			t.Fatalf("fired[%d] = %v, want %v (full: %v)", i, fired[i], slot, fired)
		}
	}
}

func TestExecuteDueClearsSlotBeforeInvokingHandler(t *testing.T) {
	s := NewScheduler()
	var sawPending bool
	s.SetHandler(SlotCOP, func(id EventID, data int64, now int64) {
		sawPending = s.IsPending(SlotCOP)
	})
	s.ScheduleAbs(SlotCOP, 5, 0, 0)
	s.ExecuteDue(5)
	if sawPending {
		t.Fatal("slot still reported pending inside its own handler")
	}
}

func TestExecuteDueLeavesFutureEventsPending(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.SetHandler(SlotCOP, func(id EventID, data int64, now int64) { fired = true })
	s.ScheduleAbs(SlotCOP, 100, 0, 0)
	s.ExecuteDue(50)
	if fired {
		t.Fatal("handler fired before its trigger cycle")
	}
	if !s.IsPending(SlotCOP) {
		t.Fatal("future event lost pending state")
	}
}

func TestExecuteDueCountsLateEvents(t *testing.T) {
	s := NewScheduler()
	s.SetHandler(SlotCOP, func(id EventID, data int64, now int64) {})
	s.ScheduleAbs(SlotCOP, 10, 0, 0)
	if got := s.LateEvents(); got != 0 {
		t.Fatalf("LateEvents() = %d before any late dispatch", got)
	}
	s.ExecuteDue(25)
	if got := s.LateEvents(); got != 1 {
		t.Fatalf("LateEvents() = %d, want 1", got)
	}
}

func TestHandlerDataRoundTripsThroughDispatch(t *testing.T) {
	s := NewScheduler()
	var gotID EventID
	var gotData int64
	s.SetHandler(SlotCOP, func(id EventID, data int64, now int64) {
		gotID, gotData = id, data
	})
	s.ScheduleAbs(SlotCOP, 1, EventID(42), 777)
	s.ExecuteDue(1)
	if gotID != 42 || gotData != 777 {
		t.Fatalf("got id=%d data=%d, want id=42 data=777", gotID, gotData)
	}
}
