package render

import "image/color"

// DrawType selects the waveform rendering style.
type DrawType int

// Draw Types
const (
	DrawBars DrawType = iota
	DrawLine
)

// Draw renders samples into the open frame using the given style.
//
// Empty or nil samples are a no-op, reported by the false return rather
// than an error. Amplitudes are clamped to the drawable height and every
// write that would land outside the frame is dropped silently.
//
// The two styles clamp differently on purpose. Bars clip symmetrically
// around zero and grow upward from the bottom baseline; only positive
// amplitudes produce pixels. Lines are re-centered on height/2 and then
// floored at row zero, so a trace can run along the top edge but never
// above it.
func (r *Renderer) Draw(samples []int16, dt DrawType, c color.RGBA) (bool, error) {
	if len(samples) < 1 {
		return false, nil
	}

	if err := r.enter(); err != nil {
		return false, r.fail(err)
	}
	defer r.leave()

	if r.frame == nil {
		return false, r.fail(ErrNotOpen)
	}

	switch dt {
	case DrawLine:
		r.drawLine(samples, c)
	default:
		r.drawBars(samples, c)
	}

	return true, nil
}

// Marker draws a full-height vertical line, two pixels wide, at column
// x mod width. Negative x is a no-op false, not an error.
func (r *Renderer) Marker(x int, c color.RGBA) (bool, error) {
	if x < 0 {
		return false, nil
	}

	if err := r.enter(); err != nil {
		return false, r.fail(err)
	}
	defer r.leave()

	if r.frame == nil {
		return false, r.fail(ErrNotOpen)
	}

	centerY := r.cfg.Height / 2
	stride := 4 * r.cfg.Width
	col := 4 * (x % r.cfg.Width)

	for yy := 1 - r.cfg.Height; yy < r.cfg.Height-1; yy++ {
		off := (yy+centerY)*stride + col
		if off >= 0 && off <= r.frameSize-8 {
			r.putPixelPair(off, c)
		}
	}

	return true, nil
}

// drawBars fills one 2-pixel-wide bar per 4 logical x positions, growing
// up from the baseline at the bottom row. The 8-step between bar columns
// keeps the 2-pixel bars aligned with the 4-step sampling.
func (r *Renderer) drawBars(samples []int16, c color.RGBA) {
	baseY := r.cfg.Height
	stride := 4 * r.cfg.Width

	count := len(samples)
	if max := r.cfg.Width / 4; count > max {
		count = max
	}

	for x := 0; x < count; x++ {
		y := clamp(int(samples[x]), 1-r.cfg.Height, r.cfg.Height-1)

		col := 4 * (8 * x)

		for yy := 0; yy <= y; yy++ {
			off := (baseY-yy)*stride + col
			if off >= 0 && off <= r.frameSize-8 {
				r.putPixelPair(off, c)
			}
		}
	}
}

// drawLine plots one pixel per sample, centered on the middle row.
func (r *Renderer) drawLine(samples []int16, c color.RGBA) {
	centerY := r.cfg.Height / 2
	stride := 4 * r.cfg.Width

	count := len(samples)
	if count > r.cfg.Width {
		count = r.cfg.Width
	}

	for x := 0; x < count; x++ {
		y := clamp(int(samples[x]), 1-r.cfg.Height, r.cfg.Height-1)

		if y += centerY; y < 0 {
			y = 0
		}

		off := y*stride + 4*x
		if off >= 0 && off <= r.frameSize-4 {
			r.putPixel(off, c)
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
