package fifo

import "github.com/thelolagemann/gomeds/internal/types"

// Decoder turns words written to the command ports into commands.
type Decoder struct {
	q *Queue

	// packed port state
	ops     [4]Opcode
	nops    int
	next    int
	current Command
	need    int

	// direct port state
	direct Command
}

// NewDecoder returns a Decoder feeding q.
func NewDecoder(q *Queue) *Decoder {
	return &Decoder{q: q}
}

// Write accepts a word written to the packed GXFIFO port. When no command
// is collecting parameters the word holds up to four opcodes, low byte
// first; zero bytes are skipped. Otherwise it is the next parameter. If
// the word would overflow the queue it is not consumed and ErrQueueFull
// is returned.
func (d *Decoder) Write(word uint32) error {
	if d.need > 0 {
		if int(d.current.N)+1 == d.need && !d.q.fits(d.trailing(d.need)...) {
			return ErrQueueFull
		}
		d.current.Params[d.current.N] = word
		d.current.N++
		if int(d.current.N) < d.need {
			return nil
		}
		d.mustEnqueue(d.current)
		d.need = 0
		d.next++
		d.advance()
		return nil
	}

	var ops [4]Opcode
	n := 0
	for i := 0; i < 4; i++ {
		if op := Opcode(word >> (8 * i)); op != Nop {
			ops[n] = op
			n++
		}
	}
	// everything up to the first command with parameters is queued now
	var sizes []int
	for i := 0; i < n && ops[i].Params() == 0; i++ {
		sizes = append(sizes, 1)
	}
	if len(sizes) > 0 && !d.q.fits(sizes...) {
		return ErrQueueFull
	}
	d.ops, d.nops, d.next = ops, n, 0
	d.advance()
	return nil
}

// trailing returns the entry sizes of the completing command followed by
// the parameterless commands queued straight after it.
func (d *Decoder) trailing(n int) []int {
	sizes := []int{n}
	for i := d.next + 1; i < d.nops && d.ops[i].Params() == 0; i++ {
		sizes = append(sizes, 1)
	}
	return sizes
}

// advance queues parameterless commands until one needs parameters.
func (d *Decoder) advance() {
	for ; d.next < d.nops; d.next++ {
		op := d.ops[d.next]
		if op.Params() > 0 {
			d.current = Command{Op: op}
			d.need = op.Params()
			return
		}
		d.mustEnqueue(Command{Op: op})
	}
	d.nops, d.next = 0, 0
}

func (d *Decoder) mustEnqueue(cmd Command) {
	// capacity was checked before the word was consumed
	_ = d.q.Enqueue(cmd)
}

// WriteDirect accepts a word written to one of the direct command ports.
// Each write supplies one parameter; commands without parameters are
// queued on any write.
func (d *Decoder) WriteDirect(address types.Address, word uint32) error {
	op := Opcode((address - types.GXFIFO) >> 2)
	if d.direct.Op != op || d.direct.N == 0 {
		d.direct = Command{Op: op}
	}
	need := op.Params()
	if need == 0 {
		if !d.q.fits(1) {
			return ErrQueueFull
		}
		d.mustEnqueue(Command{Op: op})
		d.direct = Command{}
		return nil
	}
	if int(d.direct.N)+1 == need && !d.q.fits(need) {
		return ErrQueueFull
	}
	d.direct.Params[d.direct.N] = word
	d.direct.N++
	if int(d.direct.N) == need {
		d.mustEnqueue(d.direct)
		d.direct = Command{}
	}
	return nil
}

// Busy reports whether a packed command is still collecting parameters.
func (d *Decoder) Busy() bool {
	return d.need > 0
}

// Reset discards any partially decoded command.
func (d *Decoder) Reset() {
	*d = Decoder{q: d.q}
}
