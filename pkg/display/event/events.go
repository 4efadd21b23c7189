// Package event defines the various event types that can
// be sent to a display.Driver. This package is separate from
// the display package to avoid circular dependencies.
package event

// Type defines the various event types
// that can be sent to a display.Driver. The event type
// indicates to the display.Driver what action should be
// taken.
type Type int

const (
	// Quit is sent when the emulator has closed and the
	// display.Driver should shut down.
	Quit Type = iota
	// FrameTime is periodically sent to the display.Driver
	// with the recent frame times as a []time.Duration.
	FrameTime
	// Title is sent to the display.Driver to change the
	// title of the window. This can be used to display
	// custom information in the title bar, such as the
	// current scene, or FPS.
	Title
	// Stats is sent after every frame with the gpu.Stats
	// of that frame.
	Stats
	// Error is sent when the scene fails; Data holds the error.
	Error
)

func (t Type) String() string {
	switch t {
	case Quit:
		return "Quit"
	case FrameTime:
		return "FrameTime"
	case Title:
		return "Title"
	case Stats:
		return "Stats"
	case Error:
		return "Error"
	}
	return "Unknown"
}

// Event is the data structure that is sent to the display.Driver
// to indicate an event has occurred. Data may or may not
// contain any data, depending on the event type.
type Event struct {
	// Type is the type of event
	Type Type
	// Data is the data of the event
	Data interface{}
}
