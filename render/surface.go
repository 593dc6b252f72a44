package render

import "github.com/pkg/errors"

// Surface is the host a Renderer draws on. Acquire hands out a
// width*height*4 RGBA byte region; Commit blits one back at (x, y).
//
// The region returned by AcquirePixelRegion belongs exclusively to the
// renderer until it is committed.
type Surface interface {
	AcquirePixelRegion(x, y, w, h int) ([]byte, error)
	CommitPixelRegion(buf []byte, x, y int) error
}

// Memory is an in-process Surface backed by a plain RGBA raster.
//
// Acquire copies the requested region out into a fresh buffer and Commit
// copies it back, matching the get/put semantics of a real display
// surface. Rows that fall outside the raster are clipped on both paths.
type Memory struct {
	width  int
	height int
	pix    []byte
}

// NewMemory returns a Memory surface of w by h pixels, all zero.
func NewMemory(w, h int) *Memory {
	return &Memory{
		width:  w,
		height: h,
		pix:    make([]byte, w*h*4),
	}
}

// Width returns the raster width in pixels.
func (m *Memory) Width() int { return m.width }

// Height returns the raster height in pixels.
func (m *Memory) Height() int { return m.height }

// Pix returns the backing raster. Callers must not hold it across a
// commit if they care about consistency.
func (m *Memory) Pix() []byte { return m.pix }

// AcquirePixelRegion copies the region out into a new buffer.
func (m *Memory) AcquirePixelRegion(x, y, w, h int) ([]byte, error) {
	if w < 1 || h < 1 {
		return nil, errors.Errorf("bad region %dx%d", w, h)
	}

	if x < 0 || y < 0 || x+w > m.width || y+h > m.height {
		return nil, errors.Errorf(
			"region %dx%d at (%d, %d) outside %dx%d surface",
			w, h, x, y, m.width, m.height)
	}

	buf := make([]byte, w*h*4)

	for row := 0; row < h; row++ {
		src := ((y+row)*m.width + x) * 4
		copy(buf[row*w*4:(row+1)*w*4], m.pix[src:src+w*4])
	}

	return buf, nil
}

// CommitPixelRegion copies buf back into the raster at (x, y). The region
// shape is recovered from the buffer length and the raster width.
func (m *Memory) CommitPixelRegion(buf []byte, x, y int) error {
	if len(buf) == 0 || len(buf)%4 != 0 {
		return errors.Errorf("bad buffer length %d", len(buf))
	}

	w := m.width - 2*x
	if w < 1 {
		return errors.Errorf("no room at inset %d", x)
	}

	h := len(buf) / (w * 4)

	for row := 0; row < h; row++ {
		if y+row < 0 || y+row >= m.height {
			continue
		}

		dst := ((y+row)*m.width + x) * 4
		copy(m.pix[dst:dst+w*4], buf[row*w*4:(row+1)*w*4])
	}

	return nil
}
