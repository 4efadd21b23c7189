// Package io provides the memory mapped register bus of the display
// pipeline. Components reserve the addresses they own together with read
// and write handlers; the bus only decodes addresses and widths.
package io

import (
	"fmt"
	"sort"

	"github.com/thelolagemann/gomeds/internal/types"
	"github.com/thelolagemann/gomeds/pkg/log"
	"github.com/thelolagemann/gomeds/pkg/utils"
)

// WriteHandler handles a 16-bit write to a reserved address.
type WriteHandler func(uint16)

// ReadHandler returns the packed value of a reserved 16-bit register.
type ReadHandler func() uint16

// WordWriteHandler handles a 32-bit write to a reserved word port.
type WordWriteHandler func(address types.Address, value uint32)

// WordReadHandler returns the value of a reserved word port.
type WordReadHandler func(address types.Address) uint32

type halfRegister struct {
	read  ReadHandler
	write WriteHandler
}

type wordPort struct {
	start, end types.Address // inclusive, word aligned
	read       WordReadHandler
	write      WordWriteHandler
}

type Bus struct {
	half  map[types.Address]halfRegister
	words []wordPort

	log log.Logger
}

// NewBus returns an empty Bus that logs unmapped accesses to l.
func NewBus(l log.Logger) *Bus {
	if l == nil {
		l = log.NewNullLogger()
	}
	return &Bus{
		half: make(map[types.Address]halfRegister),
		log:  l,
	}
}

// ReserveAddress reserves a 16-bit register on the bus. Either handler
// may be nil for write-only or read-only registers.
func (b *Bus) ReserveAddress(addr types.Address, read ReadHandler, write WriteHandler) {
	addr &^= 1
	// check to make sure address hasn't already been reserved
	if _, ok := b.half[addr]; ok {
		panic(fmt.Sprintf("address %08X has already been reserved", addr))
	}
	b.half[addr] = halfRegister{read: read, write: write}
}

// ReserveWords reserves the word aligned range [start, end] as 32-bit
// ports. Halfword writes into a port are widened by merging with the
// current value when the port is readable.
func (b *Bus) ReserveWords(start, end types.Address, read WordReadHandler, write WordWriteHandler) {
	start &^= 3
	end &^= 3
	for _, p := range b.words {
		if start <= p.end && end >= p.start {
			panic(fmt.Sprintf("range %08X-%08X overlaps %08X-%08X", start, end, p.start, p.end))
		}
	}
	b.words = append(b.words, wordPort{start: start, end: end, read: read, write: write})
	sort.Slice(b.words, func(i, j int) bool { return b.words[i].start < b.words[j].start })
}

func (b *Bus) port(addr types.Address) *wordPort {
	addr &^= 3
	i := sort.Search(len(b.words), func(i int) bool { return b.words[i].end >= addr })
	if i < len(b.words) && b.words[i].start <= addr {
		return &b.words[i]
	}
	return nil
}

// Write16 writes a halfword.
func (b *Bus) Write16(addr types.Address, value uint16) {
	addr &^= 1
	if r, ok := b.half[addr]; ok {
		if r.write != nil {
			r.write(value)
		}
		return
	}
	if p := b.port(addr); p != nil {
		if p.write == nil {
			return
		}
		var current uint32
		if p.read != nil {
			current = p.read(addr &^ 3)
		}
		p.write(addr&^3, utils.MergeHalf(current, value, addr&2 != 0))
		return
	}
	b.log.Debugf("unmapped write16 %08X = %04X", addr, value)
}

// Read16 reads a halfword. Unmapped and write-only registers read 0.
func (b *Bus) Read16(addr types.Address) uint16 {
	addr &^= 1
	if r, ok := b.half[addr]; ok {
		if r.read == nil {
			return 0
		}
		return r.read()
	}
	if p := b.port(addr); p != nil && p.read != nil {
		v := p.read(addr &^ 3)
		if addr&2 != 0 {
			return utils.Hi16(v)
		}
		return utils.Lo16(v)
	}
	return 0
}

// Write32 writes a word, either to a word port or as two halfwords.
func (b *Bus) Write32(addr types.Address, value uint32) {
	addr &^= 3
	if p := b.port(addr); p != nil {
		if p.write != nil {
			p.write(addr, value)
		}
		return
	}
	b.Write16(addr, utils.Lo16(value))
	b.Write16(addr+2, utils.Hi16(value))
}

// Read32 reads a word.
func (b *Bus) Read32(addr types.Address) uint32 {
	addr &^= 3
	if p := b.port(addr); p != nil {
		if p.read == nil {
			return 0
		}
		return p.read(addr)
	}
	return uint32(b.Read16(addr)) | uint32(b.Read16(addr+2))<<16
}

// Write8 writes a byte by merging it into the containing halfword.
func (b *Bus) Write8(addr types.Address, value uint8) {
	half := b.Read16(addr)
	if addr&1 != 0 {
		half = half&0x00FF | uint16(value)<<8
	} else {
		half = half&0xFF00 | uint16(value)
	}
	b.Write16(addr, half)
}
