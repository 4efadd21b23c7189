// Package trace reads and writes binary recordings of the writes a host
// makes to the display pipeline, so a scene can be replayed frame by
// frame without the program that produced it.
//
// A trace starts with the 4 byte magic "GXT1", followed by 9 byte little
// endian records:
//
//	Byte 0    Kind
//	Byte 1-4  Address
//	Byte 5-8  Value
package trace

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/thelolagemann/gomeds/internal/types"
	"github.com/thelolagemann/gomeds/pkg/utils"
)

// Magic identifies a trace file.
const Magic = "GXT1"

const recordSize = 9

// Kind is the type of a record.
type Kind uint8

const (
	// Reg16 writes Value to the 16-bit register at Address.
	Reg16 Kind = iota
	// Reg32 writes Value to the 32-bit register at Address.
	Reg32
	// FIFO writes Value to the packed command port.
	FIFO
	// FrameEnd marks the end of a frame.
	FrameEnd
	// FIFODirect writes Value to the direct command port at Address.
	FIFODirect
	// Palette sets palette entry Address&0xFFFF of engine Address>>16.
	Palette
	// BG writes a halfword of background VRAM at offset Address&0xFFFFFF
	// of engine Address>>24.
	BG
	// OBJ writes a halfword of sprite VRAM, addressed like BG.
	OBJ
	// OAM writes a halfword of OAM, addressed like BG.
	OAM
	// Texture writes a halfword of texture VRAM.
	Texture
	// TexturePalette writes a halfword of texture palette VRAM.
	TexturePalette

	kinds
)

var kindNames = [...]string{
	Reg16:          "reg16",
	Reg32:          "reg32",
	FIFO:           "fifo",
	FrameEnd:       "frame",
	FIFODirect:     "fifo-direct",
	Palette:        "palette",
	BG:             "bg",
	OBJ:            "obj",
	OAM:            "oam",
	Texture:        "texture",
	TexturePalette: "texture-palette",
}

func (k Kind) String() string {
	if k < kinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

var (
	// ErrMagic is returned when data does not start with Magic.
	ErrMagic = errors.New("trace: bad magic")
	// ErrTruncated is returned when the data ends inside a record.
	ErrTruncated = errors.New("trace: truncated record")
)

// Record is one recorded write.
type Record struct {
	Kind    Kind
	Address uint32
	Value   uint32
}

func (r Record) String() string {
	return fmt.Sprintf("%s %08X=%08X", r.Kind, r.Address, r.Value)
}

// Encode returns records as a trace.
func Encode(records []Record) []byte {
	var b bytes.Buffer
	w := NewWriter(&b)
	for _, r := range records {
		_ = w.Write(r)
	}
	return b.Bytes()
}

// Decode parses a trace.
func Decode(data []byte) ([]Record, error) {
	if len(data) < len(Magic) || string(data[:len(Magic)]) != Magic {
		return nil, ErrMagic
	}
	data = data[len(Magic):]
	if len(data)%recordSize != 0 {
		return nil, ErrTruncated
	}

	records := make([]Record, 0, len(data)/recordSize)
	for i := 0; i < len(data); i += recordSize {
		r := Record{
			Kind:    Kind(data[i]),
			Address: binary.LittleEndian.Uint32(data[i+1:]),
			Value:   binary.LittleEndian.Uint32(data[i+5:]),
		}
		if r.Kind >= kinds {
			return nil, fmt.Errorf("trace: record %d: unknown kind %d", i/recordSize, uint8(r.Kind))
		}
		records = append(records, r)
	}
	return records, nil
}

// Load reads the trace at path, which may be compressed or archived.
func Load(path string) ([]Record, error) {
	data, err := utils.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load trace: %w", err)
	}
	records, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Writer streams records to an io.Writer.
type Writer struct {
	w       io.Writer
	started bool
	buf     [recordSize]byte
}

// NewWriter returns a Writer that writes the magic before the first
// record.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write appends r to the trace.
func (w *Writer) Write(r Record) error {
	if !w.started {
		if _, err := io.WriteString(w.w, Magic); err != nil {
			return err
		}
		w.started = true
	}
	w.buf[0] = uint8(r.Kind)
	binary.LittleEndian.PutUint32(w.buf[1:], r.Address)
	binary.LittleEndian.PutUint32(w.buf[5:], r.Value)
	_, err := w.w.Write(w.buf[:])
	return err
}

// Engine returns the engine an addressed memory record targets.
func (r Record) Engine() types.Engine {
	if r.Kind == Palette {
		return types.Engine(r.Address >> 16 & 1)
	}
	return types.Engine(r.Address >> 24 & 1)
}

// Offset returns the memory offset or palette index of r.
func (r Record) Offset() uint32 {
	if r.Kind == Palette {
		return r.Address & 0xFFFF
	}
	return r.Address & 0xFFFFFF
}
