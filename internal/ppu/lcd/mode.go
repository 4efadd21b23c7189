package lcd

// DisplayMode selects the source of the displayed image.
type DisplayMode uint8

const (
	// DisplayOff shows a blank white screen.
	DisplayOff DisplayMode = iota
	// DisplayGraphics shows the composed BG/OBJ/3D image.
	DisplayGraphics
	// DisplayVRAM shows a bitmap straight from an LCDC mapped bank
	// (engine A only).
	DisplayVRAM
	// DisplayMainMemory shows pixels streamed through the main memory
	// display FIFO (engine A only).
	DisplayMainMemory
)

func (m DisplayMode) String() string {
	switch m {
	case DisplayOff:
		return "off"
	case DisplayGraphics:
		return "graphics"
	case DisplayVRAM:
		return "vram"
	case DisplayMainMemory:
		return "main memory"
	}
	return "unknown"
}
