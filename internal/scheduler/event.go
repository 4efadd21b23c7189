package scheduler

// EventType identifies a scheduled event. Only one event of each type
// can be pending at a time.
type EventType int

const (
	// LineStart fires at the first cycle of every scanline.
	LineStart EventType = iota
	// HBlank fires when a scanline enters horizontal blanking.
	HBlank

	eventTypes
)

func (t EventType) String() string {
	switch t {
	case LineStart:
		return "LineStart"
	case HBlank:
		return "HBlank"
	}
	return "Unknown"
}

type Event struct {
	cycle     uint64
	eventType EventType
	scheduled bool
	next      *Event
}

func (e *Event) Reset() {
	e.cycle = 0
	e.scheduled = false
	e.next = nil
}
