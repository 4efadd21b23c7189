package web

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/gomeds/pkg/display"
)

const (
	pixels    = display.Width * display.Height
	cacheSize = 64
)

// settings controls how frames are encoded.
type settings struct {
	Compression      bool
	CompressionLevel int
	FramePatching    bool
	// FramePatchRatio is the share of the frame, in eighths, below
	// which changed pixels are sent as a patch.
	FramePatchRatio int
	FrameSkipping   bool
}

func defaultSettings() settings {
	return settings{
		Compression:      true,
		CompressionLevel: 7,
		FramePatching:    true,
		FramePatchRatio:  2,
		FrameSkipping:    true,
	}
}

// info packs the settings into a byte:
//
//	Bit 0: Compression enabled
//	Bit 1: Frame patching enabled
//	Bit 2: Frame skipping enabled
//	Bit 3: Paused
func (s settings) info(paused bool) byte {
	var info byte
	if s.Compression {
		info |= 1 << 0
	}
	if s.FramePatching {
		info |= 1 << 1
	}
	if s.FrameSkipping {
		info |= 1 << 2
	}
	if paused {
		info |= 1 << 3
	}
	return info
}

// encoder turns successive RGBA frames into messages, sending only the
// changed pixels or a cache index where it can.
type encoder struct {
	current, dirty         []byte
	patchCache, frameCache *cache
	skipped                int
}

func newEncoder() *encoder {
	return &encoder{
		current:    make([]byte, pixels*4),
		dirty:      make([]byte, pixels*4),
		patchCache: newCache(cacheSize),
		frameCache: newCache(cacheSize),
	}
}

// reset forgets the caches, for example when the settings change.
func (e *encoder) reset() {
	e.patchCache.reset()
	e.frameCache.reset()
	e.skipped = 0
}

func message(t Type, data []byte) []byte {
	return append([]byte{t}, data...)
}

// encode returns the messages describing frame.
func (e *encoder) encode(frame []byte, s settings) ([][]byte, error) {
	dirtyCount := 0
	for i := range e.dirty {
		e.dirty[i] = 0
	}
	for i := 0; i < pixels; i++ {
		o := i * 4
		r, g, b := frame[o], frame[o+1], frame[o+2]
		if e.current[o] != r || e.current[o+1] != g || e.current[o+2] != b || e.current[o+3] != 0xFF {
			e.dirty[o], e.dirty[o+1], e.dirty[o+2], e.dirty[o+3] = r, g, b, 0xFF
			dirtyCount++
		}
		e.current[o], e.current[o+1], e.current[o+2], e.current[o+3] = r, g, b, 0xFF
	}

	var out [][]byte
	if dirtyCount == 0 && s.FrameSkipping {
		e.skipped++
		return nil, nil
	}
	if e.skipped > 0 {
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(e.skipped))
		out = append(out, message(FrameSkip, buf))
		e.skipped = 0
	}

	t, buffer, c := Frame, e.current, e.frameCache
	if s.FramePatching && dirtyCount < s.FramePatchRatio*pixels/8 {
		t, buffer, c = FramePatch, e.dirty, e.patchCache
	}

	output := buffer
	if s.Compression {
		var err error
		if output, err = compress(buffer, s.CompressionLevel); err != nil {
			return out, err
		}
	} else {
		output = append([]byte(nil), buffer...)
	}

	c.Lock()
	defer c.Unlock()
	idx := make([]byte, 2)
	hash := xxhash.Sum64(output)
	if i := c.index(hash); i != -1 {
		binary.LittleEndian.PutUint16(idx, uint16(i))
		cached := PatchCache
		if t == Frame {
			cached = FrameCache
		}
		return append(out, message(cached, idx)), nil
	}
	binary.LittleEndian.PutUint16(idx, uint16(c.add(hash, output)))
	return append(out, message(t, append(idx, output...))), nil
}

// sync returns the message bringing a new client up to date.
func (e *encoder) sync(s settings) ([]byte, error) {
	data := e.current
	if s.Compression {
		var err error
		if data, err = compress(e.current, 9); err != nil {
			return nil, err
		}
	}
	return message(FrameSync, data), nil
}
