package types

const (
	Bit0 = 1 << iota // 0b0000_0001
	Bit1             // 0b0000_0010
	Bit2             // 0b0000_0100
	Bit3             // 0b0000_1000
	Bit4             // 0b0001_0000
	Bit5             // 0b0010_0000
	Bit6             // 0b0100_0000
	Bit7             // 0b1000_0000
	Bit8
	Bit9
	Bit10
	Bit11
	Bit12
	Bit13
	Bit14
	Bit15
)

const (
	// ScreenWidth is the width of each screen in pixels.
	ScreenWidth = 256
	// ScreenHeight is the number of visible scanlines of each screen.
	ScreenHeight = 192
	// TotalScanlines is the number of scanlines in a frame, including
	// the vertical blanking period.
	TotalScanlines = 263
	// CyclesPerScanline is the number of 33MHz bus cycles per scanline
	// (355 dots × 6).
	CyclesPerScanline = 2130
	// HBlankStart is the cycle within a scanline at which HBlank begins.
	HBlankStart = 1606
)

// Engine identifies one of the two 2D engines.
type Engine int

const (
	// EngineA drives the main screen and can display the 3D layer.
	EngineA Engine = iota
	// EngineB drives the sub screen.
	EngineB
)

func (e Engine) String() string {
	if e == EngineA {
		return "A"
	}
	return "B"
}
