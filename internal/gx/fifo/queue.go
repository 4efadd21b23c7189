// Package fifo implements the geometry command queue: a 256 entry FIFO
// feeding a 4 command pipe, and the decoders for the packed and direct
// command ports.
package fifo

import (
	"errors"

	"github.com/thelolagemann/gomeds/pkg/utils"
)

const (
	// Capacity is the number of FIFO entries.
	Capacity = 256
	// PipeCapacity is the number of commands the pipe holds.
	PipeCapacity = 4
	// LowWater is the FIFO level below which the queue reports less
	// than half full.
	LowWater = Capacity / 2
)

// ErrQueueFull is returned when a command does not fit in the queue. The
// command is not consumed; the caller must drain the engine and retry.
var ErrQueueFull = errors.New("gx: command queue full")

// StatusHandler is notified whenever LessThanHalf or Empty changes.
type StatusHandler func(lessThanHalf, empty bool)

// Queue is the two stage command buffer.
type Queue struct {
	fifo    *utils.FIFO[Command]
	pipe    *utils.FIFO[Command]
	entries int

	lessThanHalf, empty bool
	onStatus            StatusHandler
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		fifo:         utils.NewFIFO[Command](Capacity),
		pipe:         utils.NewFIFO[Command](PipeCapacity),
		lessThanHalf: true,
		empty:        true,
	}
}

// OnStatus installs the handler for status transitions.
func (q *Queue) OnStatus(h StatusHandler) {
	q.onStatus = h
}

// Count returns the number of occupied FIFO entries, excluding the pipe.
func (q *Queue) Count() int {
	return q.entries
}

// Pending returns the number of queued commands including the pipe.
func (q *Queue) Pending() int {
	return q.fifo.Size + q.pipe.Size
}

// LessThanHalf reports whether the FIFO is below its low water mark.
func (q *Queue) LessThanHalf() bool {
	return q.entries < LowWater
}

// Empty reports whether both the FIFO and the pipe are empty.
func (q *Queue) Empty() bool {
	return q.fifo.Size == 0 && q.pipe.Size == 0
}

// fits reports whether commands occupying the given entry counts could be
// enqueued in order.
func (q *Queue) fits(sizes ...int) bool {
	pipeFree := PipeCapacity - q.pipe.Size
	fifoEmpty := q.fifo.Size == 0
	free := Capacity - q.entries
	for _, n := range sizes {
		if fifoEmpty && pipeFree > 0 {
			pipeFree--
			continue
		}
		fifoEmpty = false
		if n > free {
			return false
		}
		free -= n
	}
	return true
}

// Enqueue appends a command. Commands bypass the FIFO while it is empty
// and the pipe has room.
func (q *Queue) Enqueue(cmd Command) error {
	if q.fifo.Size == 0 && !q.pipe.Full() {
		q.pipe.Push(cmd)
		q.update()
		return nil
	}
	n := cmd.entries()
	if q.entries+n > Capacity {
		return ErrQueueFull
	}
	q.fifo.Push(cmd)
	q.entries += n
	q.update()
	return nil
}

// Next removes the oldest command from the pipe and refills the pipe
// from the FIFO.
func (q *Queue) Next() (Command, bool) {
	cmd, ok := q.pipe.Pop()
	if !ok {
		return cmd, false
	}
	for !q.pipe.Full() {
		c, ok := q.fifo.Pop()
		if !ok {
			break
		}
		q.entries -= c.entries()
		q.pipe.Push(c)
	}
	q.update()
	return cmd, true
}

// Peek returns the next command without removing it.
func (q *Queue) Peek() (Command, bool) {
	return q.pipe.Peek()
}

// Reset discards every queued command.
func (q *Queue) Reset() {
	q.fifo.Reset()
	q.pipe.Reset()
	q.entries = 0
	q.update()
}

func (q *Queue) update() {
	half, empty := q.LessThanHalf(), q.Empty()
	if half == q.lessThanHalf && empty == q.empty {
		return
	}
	q.lessThanHalf, q.empty = half, empty
	if q.onStatus != nil {
		q.onStatus(half, empty)
	}
}
