package ring

// Window is a request for a linear run of samples out of a circular
// buffer.
//
// Start and End bound the logical range [Start, End). End is allowed to
// exceed the buffer size; reads past the wrap threshold come back modulo
// the size. Offset shifts the first read without moving the threshold,
// which lets a caller slide over the ring while End still marks where
// wrapping begins. Block caps how many samples come back; if it is not
// positive the buffer's own block is used.
//
// Negative Start or Offset values are a caller bug. They are not
// validated here.
type Window struct {
	Start  int
	End    int
	Offset int
	Block  int
}

// Result is the outcome of an extraction. OK is false only when no
// samples were in range.
type Result struct {
	OK      bool
	Samples []int16
	Count   int
}

// Extract reads up to w.Block samples starting at w.Start+w.Offset.
//
// The wrap threshold is min(size-1, w.End). Offsets below the threshold
// read the store directly; once the running offset reaches the threshold
// every further read wraps modulo the buffer size. If the threshold does
// not exceed w.Start there is nothing in range and an empty, not-OK
// result comes back.
func (b *Buffer) Extract(w Window) (Result, error) {
	if b == nil || len(b.data) == 0 {
		return Result{}, ErrInvalidBuffer
	}

	block := w.Block
	if block < 1 {
		block = b.block
	}

	size := len(b.data)

	threshold := w.End
	if size-1 < threshold {
		threshold = size - 1
	}

	if threshold <= w.Start {
		return Result{OK: false, Samples: []int16{}}, nil
	}

	start := w.Start + w.Offset
	samples := make([]int16, 0, block)

	for off := start; off < start+block; off++ {
		if off >= threshold {
			samples = append(samples, b.data[off%size])
		} else {
			samples = append(samples, b.data[off])
		}
	}

	return Result{
		OK:      len(samples) > 0,
		Samples: samples,
		Count:   len(samples),
	}, nil
}
