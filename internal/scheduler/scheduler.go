package scheduler

import (
	"fmt"
	"strings"
)

// Scheduler is a simple event scheduler that can be used to schedule events
// to be executed at a specific cycle.
//
// The scheduler is a linked list of events, sorted by the cycle at which
// they should be executed. When an event is scheduled, it is inserted into
// the list in the correct position, and when the scheduler is ticked, every
// event the clock passes is executed and removed from the list.
type Scheduler struct {
	cycles uint64
	root   *Event

	eventHandlers [eventTypes]func()
	events        [eventTypes]*Event // only one event of each type can be scheduled at a time
}

func NewScheduler() *Scheduler {
	s := &Scheduler{}

	// preallocate one event per type to avoid allocating
	// each time an event is scheduled
	for i := range s.events {
		s.events[i] = &Event{eventType: EventType(i)}
	}

	return s
}

// Cycle returns the current cycle.
func (s *Scheduler) Cycle() uint64 {
	return s.cycles
}

// RegisterEvent registers a function of the EventType to be called when
// the event is scheduled for execution. This is to avoid the cost of
// having to allocate a function for each event, despite the functions
// always performing the same task.
func (s *Scheduler) RegisterEvent(eventType EventType, fn func()) {
	s.eventHandlers[eventType] = fn
}

// Tick advances the scheduler by c cycles, executing every event
// scheduled before the new cycle count in order. While a handler runs the
// clock reads the cycle of its event, so events it schedules are relative
// to that point.
func (s *Scheduler) Tick(c uint64) {
	target := s.cycles + c
	for s.root != nil && s.root.cycle < target {
		event := s.root
		s.root = event.next
		event.next = nil
		event.scheduled = false

		s.cycles = event.cycle
		if fn := s.eventHandlers[event.eventType]; fn != nil {
			fn()
		}
	}
	s.cycles = target
}

// Until returns the number of cycles until the next event, and false
// when nothing is scheduled.
func (s *Scheduler) Until() (uint64, bool) {
	if s.root == nil {
		return 0, false
	}
	return s.root.cycle - s.cycles, true
}

// ScheduleEvent schedules an event to be executed cycle cycles from now,
// replacing a pending event of the same type. Events scheduled for the
// same cycle execute in the order they were scheduled.
func (s *Scheduler) ScheduleEvent(eventType EventType, cycle uint64) {
	s.DescheduleEvent(eventType)

	this := s.events[eventType]
	this.cycle = s.cycles + cycle
	this.scheduled = true

	if s.root == nil || this.cycle < s.root.cycle {
		this.next = s.root
		s.root = this
		return
	}

	event := s.root
	for event.next != nil && event.next.cycle <= this.cycle {
		event = event.next
	}
	this.next = event.next
	event.next = this
}

// DescheduleEvent removes a pending event of the type.
func (s *Scheduler) DescheduleEvent(eventType EventType) {
	this := s.events[eventType]
	if !this.scheduled {
		return
	}

	var prev *Event
	for event := s.root; event != nil; event = event.next {
		if event == this {
			if prev == nil {
				s.root = event.next
			} else {
				prev.next = event.next
			}
			break
		}
		prev = event
	}
	this.Reset()
}

func (s *Scheduler) String() string {
	var b strings.Builder
	for event := s.root; event != nil; event = event.next {
		fmt.Fprintf(&b, "%s:%d->", event.eventType, event.cycle)
	}
	return b.String()
}
