package scheduler

import "testing"

func TestScheduler_Order(t *testing.T) {
	s := NewScheduler()
	var fired []EventType
	s.RegisterEvent(LineStart, func() { fired = append(fired, LineStart) })
	s.RegisterEvent(HBlank, func() { fired = append(fired, HBlank) })

	s.ScheduleEvent(HBlank, 10)
	s.ScheduleEvent(LineStart, 5)
	s.Tick(5)
	if len(fired) != 0 {
		t.Fatalf("expected an event at the target cycle to wait, got %v", fired)
	}
	s.Tick(6)
	if len(fired) != 2 || fired[0] != LineStart || fired[1] != HBlank {
		t.Errorf("expected LineStart then HBlank, got %v", fired)
	}
	if s.Cycle() != 11 {
		t.Errorf("expected cycle 11, got %d", s.Cycle())
	}
}

func TestScheduler_Reschedule(t *testing.T) {
	s := NewScheduler()
	count := 0
	var at []uint64
	s.RegisterEvent(LineStart, func() {
		count++
		at = append(at, s.Cycle())
		s.ScheduleEvent(LineStart, 100)
	})
	s.ScheduleEvent(LineStart, 0)
	s.Tick(1000)
	if count != 10 {
		t.Errorf("expected 10 events, got %d", count)
	}
	if at[3] != 300 {
		t.Errorf("expected the handler to observe its own cycle, got %d", at[3])
	}
	if d, ok := s.Until(); !ok || d != 0 {
		t.Errorf("expected the next event due now, got %d %v", d, ok)
	}
}

func TestScheduler_Deschedule(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.RegisterEvent(HBlank, func() { fired = true })
	s.ScheduleEvent(HBlank, 10)
	s.ScheduleEvent(LineStart, 20)
	s.DescheduleEvent(HBlank)
	s.Tick(50)
	if fired {
		t.Errorf("expected the descheduled event not to fire")
	}

	// rescheduling replaces the pending event
	s.ScheduleEvent(HBlank, 10)
	s.ScheduleEvent(HBlank, 30)
	s.Tick(20)
	if fired {
		t.Errorf("expected the replaced event not to fire")
	}
	s.Tick(20)
	if !fired {
		t.Errorf("expected the event to fire")
	}
}
