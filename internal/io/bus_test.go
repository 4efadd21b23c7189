package io

import (
	"testing"

	"github.com/thelolagemann/gomeds/internal/types"
)

func TestBus_Half(t *testing.T) {
	b := NewBus(nil)
	var reg uint16
	b.ReserveAddress(types.BLDCNT, func() uint16 { return reg }, func(v uint16) { reg = v & 0x3FFF })

	b.Write16(types.BLDCNT, 0xFFFF)
	if got := b.Read16(types.BLDCNT); got != 0x3FFF {
		t.Errorf("expected 0x3FFF, got %#x", got)
	}

	// a 32-bit write splits into two halfwords
	var alpha uint16
	b.ReserveAddress(types.BLDALPHA, func() uint16 { return alpha }, func(v uint16) { alpha = v })
	b.Write32(types.BLDCNT, 0x10100041)
	if reg != 0x0041 || alpha != 0x1010 {
		t.Errorf("unexpected split write: %#x %#x", reg, alpha)
	}
	if got := b.Read32(types.BLDCNT); got != 0x10100041 {
		t.Errorf("expected 0x10100041, got %#x", got)
	}
}

func TestBus_Words(t *testing.T) {
	b := NewBus(nil)
	var last types.Address
	var value uint32
	b.ReserveWords(types.GXCMDBASE, types.GXCMDEND, nil, func(a types.Address, v uint32) {
		last, value = a, v
	})

	b.Write32(0x04000470, 0xCAFE)
	if last != 0x04000470 || value != 0xCAFE {
		t.Errorf("unexpected port write %08X=%X", last, value)
	}
	if b.Read32(0x04000470) != 0 {
		t.Errorf("write-only port should read 0")
	}
}

func TestBus_DoubleReserve(t *testing.T) {
	b := NewBus(nil)
	b.ReserveAddress(types.WININ, nil, nil)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on double reservation")
		}
	}()
	b.ReserveAddress(types.WININ, nil, nil)
}

func TestBus_Write8(t *testing.T) {
	b := NewBus(nil)
	var reg uint16
	b.ReserveAddress(types.BLDY, func() uint16 { return reg }, func(v uint16) { reg = v })
	b.Write8(types.BLDY, 0x0C)
	if reg != 0x0C {
		t.Errorf("expected 0x0C, got %#x", reg)
	}
}
