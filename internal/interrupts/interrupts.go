// Package interrupts provides the interrupt flags raised by the display
// pipeline and a small service that collects them for the host.
package interrupts

// Flag is a bit of the ARM9 interrupt flag register (IF).
type Flag uint32

const (
	// VBlankFlag is requested when the display enters VBlank (line
	// 192), if enabled in DISPSTAT.
	VBlankFlag Flag = 1 << 0
	// HBlankFlag is requested when a scanline enters HBlank, if enabled
	// in DISPSTAT.
	HBlankFlag Flag = 1 << 1
	// VCounterFlag is requested when VCOUNT matches the DISPSTAT
	// setting, if enabled.
	VCounterFlag Flag = 1 << 2
	// GXFIFOFlag is requested by the geometry command FIFO according
	// to the IRQ mode of GXSTAT.
	GXFIFOFlag Flag = 1 << 21
)

func (f Flag) String() string {
	switch f {
	case VBlankFlag:
		return "VBlank"
	case HBlankFlag:
		return "HBlank"
	case VCounterFlag:
		return "VCounter"
	case GXFIFOFlag:
		return "GXFIFO"
	}
	return "Unknown"
}

// Service collects requested interrupts. The pipeline requests them; the
// host acknowledges them by writing ones, the way IF works.
type Service struct {
	Flag   Flag // interrupt flags (IF)
	Enable Flag // interrupt enable (IE)

	// Counts holds how many times each flag was requested.
	Counts map[Flag]int
}

// NewService returns a new Service.
func NewService() *Service {
	return &Service{Counts: make(map[Flag]int)}
}

// Request requests the specified interrupt, by setting the corresponding
// bit in the Flag register.
func (s *Service) Request(flag Flag) {
	s.Flag |= flag
	s.Counts[flag]++
}

// Acknowledge clears the flags set in value.
func (s *Service) Acknowledge(value Flag) {
	s.Flag &^= value
}

// HasInterrupts returns true if there are any interrupts that are
// requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag != 0
}
