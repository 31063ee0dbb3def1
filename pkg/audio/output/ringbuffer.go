// ABOUTME: Byte ring buffer between a writer and an audio callback
// ABOUTME: Writes block while full; reads never block and zero-fill on underrun
package output

import (
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned by Write after Close
var ErrClosed = errors.New("ring buffer closed")

// RingBuffer provides a thread-safe circular buffer of serialized samples
type RingBuffer struct {
	buffer   []byte
	readPos  int
	writePos int
	count    int // Number of bytes currently in buffer
	align    int
	closed   bool
	mu       sync.Mutex
	space    *sync.Cond
}

// NewRingBuffer creates a ring buffer holding capacity bytes. Reads are
// rounded down to a multiple of align so a frame is never split.
func NewRingBuffer(capacity, align int) *RingBuffer {
	if align < 1 {
		align = 1
	}
	capacity -= capacity % align
	if capacity < align {
		capacity = align
	}
	rb := &RingBuffer{
		buffer: make([]byte, capacity),
		align:  align,
	}
	rb.space = sync.NewCond(&rb.mu)
	return rb
}

// Write copies p into the buffer, blocking while it is full
func (rb *RingBuffer) Write(p []byte) (int, error) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	written := 0
	for written < len(p) {
		for rb.count == len(rb.buffer) && !rb.closed {
			rb.space.Wait()
		}
		if rb.closed {
			return written, ErrClosed
		}

		n := min(len(p)-written, len(rb.buffer)-rb.count)
		src := p[written : written+n]
		c := copy(rb.buffer[rb.writePos:], src)
		copy(rb.buffer, src[c:])
		rb.writePos = (rb.writePos + n) % len(rb.buffer)
		rb.count += n
		written += n
	}
	return written, nil
}

// Read fills p from the buffer and zero-fills the remainder on underrun.
// It returns the number of buffered bytes copied.
func (rb *RingBuffer) Read(p []byte) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	n := min(len(p), rb.count)
	n -= n % rb.align
	c := copy(p[:n], rb.buffer[rb.readPos:])
	copy(p[c:n], rb.buffer)
	rb.readPos = (rb.readPos + n) % len(rb.buffer)
	rb.count -= n
	clear(p[n:])

	if n > 0 {
		rb.space.Broadcast()
	}
	return n
}

// Buffered returns the number of bytes waiting to be read
func (rb *RingBuffer) Buffered() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.count
}

// Drain waits until no whole frame is left to read, the buffer is closed or
// timeout passes. It reports whether the buffer was drained.
func (rb *RingBuffer) Drain(timeout time.Duration) bool {
	expired := false
	timer := time.AfterFunc(timeout, func() {
		rb.mu.Lock()
		expired = true
		rb.mu.Unlock()
		rb.space.Broadcast()
	})
	defer timer.Stop()

	rb.mu.Lock()
	defer rb.mu.Unlock()
	for rb.count >= rb.align && !rb.closed && !expired {
		rb.space.Wait()
	}
	return rb.count < rb.align
}

// Close unblocks pending writers; later writes fail with ErrClosed
func (rb *RingBuffer) Close() {
	rb.mu.Lock()
	rb.closed = true
	rb.mu.Unlock()
	rb.space.Broadcast()
}
