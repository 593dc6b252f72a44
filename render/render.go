// Package render draws waveform sample runs onto an RGBA pixel frame.
//
// A Renderer owns one rectangular frame at a time. The lifecycle is
// Begin, any number of Clear/Draw/Marker calls, then Commit, which hands
// the frame back to the host Surface. Out-of-range pixel writes are
// clipped, never errors.
package render

import (
	"image/color"
	"log"
	"os"

	"github.com/pkg/errors"
)

// errors
var (
	ErrAlreadyOpen = errors.New("frame already open")
	ErrNotOpen     = errors.New("no open frame")
	ErrBusy        = errors.New("renderer is busy")
)

// Background colors used by Clear.
var (
	Black = color.RGBA{A: 0xff}
	Green = color.RGBA{R: 12, G: 110, B: 38, A: 0xff}
)

// Config describes one drawing region and how the renderer reports
// failures. Width and Height are the drawable pixel region; Border is the
// inset at which the region sits on the surface.
type Config struct {
	Width  int
	Height int
	Border int

	// LogErrors makes every failed operation log its error before
	// returning it. Logging is a side effect only; the error is returned
	// either way.
	LogErrors bool
	// Logger receives error messages when LogErrors is set. Defaults to
	// stderr with no flags.
	Logger *log.Logger
}

// Renderer mutates a pixel frame in place between Begin and Commit.
//
// The busy flag is a reentrancy guard for a single cooperative caller,
// not a mutex. A nested call made while another operation is mid-flight
// fails with ErrBusy and touches nothing. It is NOT safe to share a
// Renderer between goroutines.
type Renderer struct {
	cfg Config

	busy      bool
	frame     []byte
	frameSize int
	surface   Surface
}

// New returns an idle Renderer for the given region.
func New(cfg Config) *Renderer {
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr, "", 0)
	}

	return &Renderer{cfg: cfg}
}

// Width returns the drawable width in pixels.
func (r *Renderer) Width() int { return r.cfg.Width }

// Height returns the drawable height in pixels.
func (r *Renderer) Height() int { return r.cfg.Height }

// Open reports whether a frame is currently held.
func (r *Renderer) Open() bool { return r.frame != nil }

// enter flips the busy guard. The previous value being set means a
// reentrant call; nothing may be mutated on that path.
func (r *Renderer) enter() error {
	if r.busy {
		return ErrBusy
	}

	r.busy = true

	return nil
}

// leave clears the busy guard. Deferred by every mutating operation so
// the flag is released on every exit path, error or not.
func (r *Renderer) leave() {
	r.busy = false
}

func (r *Renderer) fail(err error) error {
	if r.cfg.LogErrors {
		r.cfg.Logger.Printf("render: %v", err)
	}

	return err
}

// Begin acquires the surface's pixel region at (border, border) and takes
// exclusive ownership of the returned frame until Commit.
func (r *Renderer) Begin(surface Surface) error {
	if err := r.enter(); err != nil {
		return r.fail(err)
	}
	defer r.leave()

	if r.frame != nil {
		return r.fail(ErrAlreadyOpen)
	}

	frame, err := surface.AcquirePixelRegion(
		r.cfg.Border, r.cfg.Border, r.cfg.Width, r.cfg.Height)
	if err != nil {
		return r.fail(errors.Wrap(err, "failed to acquire pixel region"))
	}

	if len(frame) < r.cfg.Width*r.cfg.Height*4 {
		return r.fail(errors.Errorf(
			"surface returned short frame: %d < %d",
			len(frame), r.cfg.Width*r.cfg.Height*4))
	}

	r.frame = frame
	r.frameSize = len(frame)
	r.surface = surface

	return nil
}

// Clear fills every pixel with black, or the fixed dark green when green
// is set.
func (r *Renderer) Clear(green bool) error {
	if err := r.enter(); err != nil {
		return r.fail(err)
	}
	defer r.leave()

	if r.frame == nil {
		return r.fail(ErrNotOpen)
	}

	c := Black
	if green {
		c = Green
	}

	for off := 0; off+4 <= r.frameSize; off += 4 {
		r.putPixel(off, c)
	}

	return nil
}

// Commit pushes the frame back to the surface at (border, border) and
// returns the renderer to idle. The frame reference is discarded even
// when the surface rejects the commit.
func (r *Renderer) Commit() error {
	if err := r.enter(); err != nil {
		return r.fail(err)
	}
	defer r.leave()

	if r.frame == nil {
		return r.fail(ErrNotOpen)
	}

	err := r.surface.CommitPixelRegion(r.frame, r.cfg.Border, r.cfg.Border)

	r.frame = nil
	r.frameSize = 0
	r.surface = nil

	if err != nil {
		return r.fail(errors.Wrap(err, "failed to commit pixel region"))
	}

	return nil
}

func (r *Renderer) putPixel(off int, c color.RGBA) {
	r.frame[off] = c.R
	r.frame[off+1] = c.G
	r.frame[off+2] = c.B
	r.frame[off+3] = 0xff
}

func (r *Renderer) putPixelPair(off int, c color.RGBA) {
	r.putPixel(off, c)
	r.putPixel(off+4, c)
}
