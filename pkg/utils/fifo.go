package utils

// FIFO is a fixed capacity first-in-first-out ring buffer.
type FIFO[T any] struct {
	buffer []T
	head   int
	tail   int
	Size   int
}

// NewFIFO returns a FIFO able to hold capacity elements.
func NewFIFO[T any](capacity int) *FIFO[T] {
	return &FIFO[T]{
		buffer: make([]T, capacity),
	}
}

// Push appends value, returning false when the FIFO is full.
func (f *FIFO[T]) Push(value T) bool {
	if f.Size == len(f.buffer) {
		return false
	}
	f.buffer[f.tail] = value
	f.tail = (f.tail + 1) % len(f.buffer)
	f.Size++
	return true
}

// Pop removes and returns the oldest value.
func (f *FIFO[T]) Pop() (T, bool) {
	var zero T
	if f.Size == 0 {
		return zero, false
	}
	value := f.buffer[f.head]
	f.buffer[f.head] = zero
	f.head = (f.head + 1) % len(f.buffer)
	f.Size--
	return value, true
}

// Peek returns the oldest value without removing it.
func (f *FIFO[T]) Peek() (T, bool) {
	if f.Size == 0 {
		var zero T
		return zero, false
	}
	return f.buffer[f.head], true
}

// Full reports whether another Push would fail.
func (f *FIFO[T]) Full() bool {
	return f.Size == len(f.buffer)
}

// Cap returns the capacity of the FIFO.
func (f *FIFO[T]) Cap() int {
	return len(f.buffer)
}

// Reset discards all queued values.
func (f *FIFO[T]) Reset() {
	var zero T
	for i := range f.buffer {
		f.buffer[i] = zero
	}
	f.head, f.tail, f.Size = 0, 0, 0
}
