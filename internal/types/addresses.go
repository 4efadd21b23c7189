package types

// Address is a memory mapped IO address on the ARM9 bus.
type Address = uint32

// EngineBOffset is added to an engine A 2D register address to obtain
// the matching engine B register.
const EngineBOffset Address = 0x1000

// 2D engine registers (engine A, add EngineBOffset for engine B).
const (
	// DISPCNT is the display control register.
	//
	//	Bit 0-2   BG Mode
	//	Bit 3     BG0 2D/3D Selection (engine A only)
	//	Bit 4     Tile OBJ Mapping (0=2D, 1=1D)
	//	Bit 5     Bitmap OBJ 2D-Dimension (0=128x512, 1=256x256)
	//	Bit 6     Bitmap OBJ Mapping (0=2D, 1=1D)
	//	Bit 7     Forced Blank
	//	Bit 8-11  Screen Display BG0-BG3
	//	Bit 12    Screen Display OBJ
	//	Bit 13-14 Window 0/1 Display Flag
	//	Bit 15    OBJ Window Display Flag
	//	Bit 16-17 Display Mode (engine B: 0-1 only)
	//	Bit 18-19 VRAM block (engine A only)
	//	Bit 20-21 Tile OBJ 1D-Boundary
	//	Bit 22    Bitmap OBJ 1D-Boundary (engine A only)
	//	Bit 23    OBJ Processing during H-Blank
	//	Bit 24-26 Character Base (engine A only)
	//	Bit 27-29 Screen Base (engine A only)
	//	Bit 30    BG Extended Palettes
	//	Bit 31    OBJ Extended Palettes
	DISPCNT Address = 0x04000000
	// DISPSTAT is the display status register.
	DISPSTAT Address = 0x04000004
	// VCOUNT is the current scanline.
	VCOUNT Address = 0x04000006
	// BG0CNT to BG3CNT are the background control registers.
	BG0CNT Address = 0x04000008
	BG1CNT Address = 0x0400000A
	BG2CNT Address = 0x0400000C
	BG3CNT Address = 0x0400000E
	// BG0HOFS is the first of the BG scroll registers, which are laid
	// out as HOFS/VOFS pairs for BG0-BG3.
	BG0HOFS Address = 0x04000010
	BG0VOFS Address = 0x04000012
	BG3VOFS Address = 0x0400001E
	// BG2PA to BG2PD are the BG2 rotation/scaling parameters.
	BG2PA Address = 0x04000020
	BG2PD Address = 0x04000026
	// BG2X and BG2Y are the BG2 reference point (20.8 fixed point, 28 bits).
	BG2X  Address = 0x04000028
	BG2Y  Address = 0x0400002C
	BG3PA Address = 0x04000030
	BG3PD Address = 0x04000036
	BG3X  Address = 0x04000038
	BG3Y  Address = 0x0400003C
	// WIN0H and WIN1H are the horizontal window dimensions (X1<<8 | X2).
	WIN0H Address = 0x04000040
	WIN1H Address = 0x04000042
	// WIN0V and WIN1V are the vertical window dimensions (Y1<<8 | Y2).
	WIN0V Address = 0x04000044
	WIN1V Address = 0x04000046
	// WININ controls layer enables inside windows 0 and 1.
	WININ Address = 0x04000048
	// WINOUT controls layer enables outside windows and inside the OBJ
	// window.
	WINOUT Address = 0x0400004A
	// MOSAIC is the mosaic size register.
	MOSAIC Address = 0x0400004C
	// BLDCNT selects blend targets and the colour special effect.
	BLDCNT Address = 0x04000050
	// BLDALPHA holds the alpha blending coefficients EVA and EVB.
	BLDALPHA Address = 0x04000052
	// BLDY holds the brightness coefficient EVY.
	BLDY Address = 0x04000054
	// DISPCAPCNT is the display capture control register (engine A only).
	DISPCAPCNT Address = 0x04000064
	// DISPMMEMFIFO is the main memory display FIFO (engine A only).
	DISPMMEMFIFO Address = 0x04000068
	// MASTERBRIGHT is the master brightness register.
	MASTERBRIGHT Address = 0x0400006C
)

// 3D engine registers.
const (
	// DISP3DCNT is the 3D display control register.
	DISP3DCNT Address = 0x04000060
	// RDLINESCOUNT reports the minimum number of buffered render lines.
	RDLINESCOUNT Address = 0x04000320
	// EDGECOLOR is the start of the eight edge marking colours.
	EDGECOLOR Address = 0x04000330
	// ALPHATESTREF is the alpha test reference value.
	ALPHATESTREF Address = 0x04000340
	// CLEARCOLOR is the rear plane colour, alpha, fog and polygon id.
	CLEARCOLOR Address = 0x04000350
	// CLEARDEPTH is the rear plane depth.
	CLEARDEPTH Address = 0x04000354
	// CLRIMAGEOFFSET is the rear plane bitmap scroll.
	CLRIMAGEOFFSET Address = 0x04000356
	// FOGCOLOR is the fog colour and alpha.
	FOGCOLOR Address = 0x04000358
	// FOGOFFSET is the fog depth offset.
	FOGOFFSET Address = 0x0400035C
	// FOGTABLE is the start of the 32 entry fog density table.
	FOGTABLE Address = 0x04000360
	// TOONTABLE is the start of the 32 entry toon table.
	TOONTABLE Address = 0x04000380
	// GXFIFO is the packed command port (mirrored up to 0x0400043F).
	GXFIFO Address = 0x04000400
	// GXCMDBASE is the first direct command port; the opcode of a direct
	// port is (address-GXFIFO)>>2.
	GXCMDBASE Address = 0x04000440
	// GXCMDEND is the last direct command port.
	GXCMDEND Address = 0x040005FC
	// GXSTAT is the geometry engine status register.
	GXSTAT Address = 0x04000600
	// RAMCOUNT reports the polygon and vertex counts of the last frame.
	RAMCOUNT Address = 0x04000604
	// DISP1DOTDEPTH is the 1-dot polygon depth threshold.
	DISP1DOTDEPTH Address = 0x04000610
	// POSRESULT is the start of the four position test result words.
	POSRESULT Address = 0x04000620
	// VECRESULT is the start of the three vector test result halfwords.
	VECRESULT Address = 0x04000630
	// CLIPMTXRESULT is the start of the 16 clip matrix words.
	CLIPMTXRESULT Address = 0x04000640
	// VECMTXRESULT is the start of the 9 direction matrix words.
	VECMTXRESULT Address = 0x04000680
)
