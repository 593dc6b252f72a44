// Package ring provides a fixed-size circular sample store and bounded
// window extraction over it.
//
// A Buffer holds signed 16-bit samples. Writers push samples in order and
// the buffer wraps once full. Readers ask for a Window of the data and get
// back a linear slice, with index wrapping handled once the window crosses
// the end of the store.
package ring

import "github.com/pkg/errors"

// errors
var (
	ErrInvalidBuffer = errors.New("invalid ring buffer")
	ErrBadSize       = errors.New("buffer size must be positive")
	ErrBadBlock      = errors.New("block size must be positive")
)

// Buffer is a circular int16 sample store.
//
// It is not safe for concurrent use. Callers that share a Buffer between
// an input session and a drawing loop must hold their own lock around
// Push and Extract.
type Buffer struct {
	data  []int16
	head  int // next write position
	block int // default extraction budget
}

// New returns a Buffer of size samples with the given default extraction
// block. Constructing through New is what makes a Buffer valid; there is
// no other way to get one.
func New(size, block int) (*Buffer, error) {
	if size < 1 {
		return nil, ErrBadSize
	}

	if block < 1 {
		return nil, ErrBadBlock
	}

	return &Buffer{
		data:  make([]int16, size),
		block: block,
	}, nil
}

// Size returns the number of samples the buffer holds.
func (b *Buffer) Size() int {
	return len(b.data)
}

// Block returns the default extraction budget.
func (b *Buffer) Block() int {
	return b.block
}

// Head returns the next write position.
func (b *Buffer) Head() int {
	return b.head
}

// At reads the sample at index i, wrapping modulo the buffer size.
func (b *Buffer) At(i int) int16 {
	return b.data[i%len(b.data)]
}

// Push appends samples at the head, wrapping once the end of the store is
// reached. Older samples are overwritten.
func (b *Buffer) Push(samples []int16) {
	for _, s := range samples {
		b.data[b.head] = s
		if b.head++; b.head >= len(b.data) {
			b.head = 0
		}
	}
}

// Tail returns the window covering the most recent block samples, ending
// at the head. The window End may exceed the buffer size; that is how a
// pending wrap is signaled to Extract.
func (b *Buffer) Tail(block int) Window {
	if block < 1 || block > len(b.data) {
		block = b.block
	}

	start := b.head - block
	end := b.head

	if start < 0 {
		start += len(b.data)
		end += len(b.data)
	}

	return Window{Start: start, End: end, Block: block}
}
