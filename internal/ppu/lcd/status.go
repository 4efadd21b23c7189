package lcd

import "github.com/thelolagemann/gomeds/pkg/bits"

// Status represents the display status register. It reports the blanking
// state of the current scanline and configures the display interrupts.
// Its value is stored in DISPSTAT (0x04000004) as follows:
//
//	Bit 0    V-Blank flag     (Read only) (1=VBlank, lines 192-261)
//	Bit 1    H-Blank flag     (Read only) (1=HBlank)
//	Bit 2    V-Counter flag   (Read only) (1=VCOUNT matches the setting)
//	Bit 3    V-Blank IRQ Enable
//	Bit 4    H-Blank IRQ Enable
//	Bit 5    V-Counter IRQ Enable
//	Bit 7    V-Count Setting MSB (bit 8)
//	Bit 8-15 V-Count Setting LSBs (bits 0-7)
type Status struct {
	// VBlank is set during lines 192-261.
	VBlank bool
	// HBlank is set during the horizontal blanking period.
	HBlank bool
	// Coincidence is set while VCOUNT equals LYC.
	Coincidence bool
	// VBlankIRQ enables the VBlank interrupt.
	VBlankIRQ bool
	// HBlankIRQ enables the HBlank interrupt.
	HBlankIRQ bool
	// CoincidenceIRQ enables the V-Counter match interrupt.
	CoincidenceIRQ bool
	// LYC is the 9-bit V-Count setting.
	LYC uint16
}

// Write writes the value to the status register. The blanking and match
// flags are read only.
func (s *Status) Write(value uint16) {
	s.VBlankIRQ = bits.Test(value, 3)
	s.HBlankIRQ = bits.Test(value, 4)
	s.CoincidenceIRQ = bits.Test(value, 5)
	s.LYC = value>>8 | uint16(bits.Val(value, 7))<<8
}

// Read returns the value of the status register.
func (s *Status) Read() uint16 {
	return bits.From[uint16](s.VBlank, 0) |
		bits.From[uint16](s.HBlank, 1) |
		bits.From[uint16](s.Coincidence, 2) |
		bits.From[uint16](s.VBlankIRQ, 3) |
		bits.From[uint16](s.HBlankIRQ, 4) |
		bits.From[uint16](s.CoincidenceIRQ, 5) |
		(s.LYC>>8&1)<<7 |
		(s.LYC&0xFF)<<8
}

// Compare updates the match flag for line and reports whether it rose.
func (s *Status) Compare(line uint16) bool {
	was := s.Coincidence
	s.Coincidence = line == s.LYC
	return s.Coincidence && !was
}
