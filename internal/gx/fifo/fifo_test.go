package fifo

import (
	"errors"
	"testing"

	"github.com/thelolagemann/gomeds/internal/types"
)

func drain(q *Queue) []Command {
	var cmds []Command
	for {
		c, ok := q.Next()
		if !ok {
			return cmds
		}
		cmds = append(cmds, c)
	}
}

func TestDecoder_Packed(t *testing.T) {
	q := NewQueue()
	d := NewDecoder(q)

	// MTX_IDENTITY, VTX_16, (nop), END_VTXS
	if err := d.Write(0x41002315); err != nil {
		t.Fatal(err)
	}
	if !d.Busy() {
		t.Fatal("expected decoder to wait for VTX_16 parameters")
	}
	if err := d.Write(0x10002000); err != nil {
		t.Fatal(err)
	}
	if err := d.Write(0x00000800); err != nil {
		t.Fatal(err)
	}

	cmds := drain(q)
	want := []Opcode{MtxIdentity, Vtx16, EndVtxs}
	if len(cmds) != len(want) {
		t.Fatalf("expected %d commands, got %d", len(want), len(cmds))
	}
	for i, op := range want {
		if cmds[i].Op != op {
			t.Errorf("command %d: expected %s, got %s", i, op, cmds[i].Op)
		}
	}
	if cmds[1].N != 2 || cmds[1].Params[0] != 0x10002000 || cmds[1].Params[1] != 0x800 {
		t.Errorf("unexpected VTX_16 parameters %+v", cmds[1].Params[:cmds[1].N])
	}
}

func TestDecoder_Unknown(t *testing.T) {
	q := NewQueue()
	d := NewDecoder(q)
	if err := d.Write(0x000000FF); err != nil {
		t.Fatal(err)
	}
	c, ok := q.Next()
	if !ok || c.Op != 0xFF || c.Op.Valid() {
		t.Errorf("unknown opcodes must be queued unchanged, got %v", c.Op)
	}
}

func TestDecoder_Direct(t *testing.T) {
	q := NewQueue()
	d := NewDecoder(q)
	port := types.GXFIFO + types.Address(MtxTrans)<<2

	for i, v := range []uint32{1, 2, 3} {
		if err := d.WriteDirect(port, v); err != nil {
			t.Fatal(err)
		}
		if i < 2 && !q.Empty() {
			t.Fatal("command queued before all parameters arrived")
		}
	}
	c, ok := q.Next()
	if !ok || c.Op != MtxTrans || c.N != 3 || c.Params[2] != 3 {
		t.Errorf("unexpected command %v %+v", c.Op, c.Params[:c.N])
	}

	// parameterless commands are queued by any write
	if err := d.WriteDirect(types.GXFIFO+types.Address(MtxPush)<<2, 0); err != nil {
		t.Fatal(err)
	}
	if c, _ := q.Next(); c.Op != MtxPush {
		t.Errorf("expected MTX_PUSH, got %s", c.Op)
	}
}

func TestQueue_Full(t *testing.T) {
	q := NewQueue()
	for i := 0; i < PipeCapacity+Capacity; i++ {
		if err := q.Enqueue(Command{Op: MtxPush}); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}
	if err := q.Enqueue(Command{Op: MtxPush}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
	if q.Count() != Capacity {
		t.Errorf("expected %d entries, got %d", Capacity, q.Count())
	}

	// a rejected packed word is not consumed
	d := NewDecoder(q)
	if err := d.Write(uint32(MtxIdentity)); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
	q.Next()
	if err := d.Write(uint32(MtxIdentity)); err != nil {
		t.Fatalf("retry after drain: %v", err)
	}
}

func TestQueue_ParameterEntries(t *testing.T) {
	q := NewQueue()
	for i := 0; i < PipeCapacity; i++ {
		_ = q.Enqueue(Command{Op: MtxPush})
	}
	// 16 entries each
	for i := 0; i < Capacity/16; i++ {
		if err := q.Enqueue(Command{Op: MtxLoad4x4, N: 16}); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}
	if err := q.Enqueue(Command{Op: Color, N: 1}); !errors.Is(err, ErrQueueFull) {
		t.Errorf("expected ErrQueueFull, got %v", err)
	}
}

func TestQueue_Status(t *testing.T) {
	q := NewQueue()
	var transitions [][2]bool
	q.OnStatus(func(half, empty bool) {
		transitions = append(transitions, [2]bool{half, empty})
	})

	_ = q.Enqueue(Command{Op: MtxPush})
	if q.Empty() {
		t.Fatal("queue should not be empty")
	}
	for i := 0; i < PipeCapacity-1+LowWater; i++ {
		_ = q.Enqueue(Command{Op: MtxPush})
	}
	if q.LessThanHalf() {
		t.Error("queue should be at its low water mark")
	}
	drain(q)

	want := [][2]bool{{true, false}, {false, false}, {true, false}, {true, true}}
	if len(transitions) != len(want) {
		t.Fatalf("expected %d transitions, got %v", len(want), transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition %d: expected %v, got %v", i, want[i], transitions[i])
		}
	}
}

func TestQueue_Order(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 20; i++ {
		_ = q.Enqueue(Command{Op: Color, Params: [32]uint32{uint32(i)}, N: 1})
	}
	for i, c := range drain(q) {
		if c.Params[0] != uint32(i) {
			t.Fatalf("command %d out of order: %d", i, c.Params[0])
		}
	}
}

func TestLookup(t *testing.T) {
	if op, ok := Lookup("SWAP_BUFFERS"); !ok || op != SwapBuffers {
		t.Errorf("expected SWAP_BUFFERS, got %v %t", op, ok)
	}
	if _, ok := Lookup("VTX_17"); ok {
		t.Error("unknown name resolved")
	}
}
