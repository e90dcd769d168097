// Package history keeps the recent TDS trend and projects it onto the sparkline canvas.
package history

// DefaultCapacity is the number of readings kept for the trend line.
const DefaultCapacity = 10

// Buffer is a fixed-capacity FIFO of readings.
// Not safe for concurrent use; the owner synchronizes.
type Buffer struct {
	buf      []float64
	capacity int
	head     int // next write position
	count    int
}

// NewBuffer returns an empty buffer. Non-positive capacity selects DefaultCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		buf:      make([]float64, capacity),
		capacity: capacity,
	}
}

// Push appends v, overwriting the oldest value once full.
func (b *Buffer) Push(v float64) {
	b.buf[b.head] = v
	b.head = (b.head + 1) % b.capacity
	if b.count < b.capacity {
		b.count++
	}
}

// Values returns a copy of the contents, oldest first.
func (b *Buffer) Values() []float64 {
	if b.count == 0 {
		return nil
	}
	out := make([]float64, b.count)
	start := (b.head - b.count + b.capacity) % b.capacity
	for i := 0; i < b.count; i++ {
		out[i] = b.buf[(start+i)%b.capacity]
	}
	return out
}

// Len returns the number of stored values.
func (b *Buffer) Len() int {
	return b.count
}

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int {
	return b.capacity
}
