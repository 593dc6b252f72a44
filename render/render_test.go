package render

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/pkg/errors"
)

const (
	testW = 100
	testH = 100
)

var testColor = color.RGBA{R: 200, G: 100, B: 50, A: 0xff}

func newTestRenderer(t *testing.T) (*Renderer, *Memory) {
	t.Helper()

	r := New(Config{Width: testW, Height: testH})
	m := NewMemory(testW, testH)

	if err := r.Begin(m); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	return r, m
}

func pixelAt(m *Memory, x, y int) color.RGBA {
	off := (y*m.Width() + x) * 4
	pix := m.Pix()

	return color.RGBA{R: pix[off], G: pix[off+1], B: pix[off+2], A: pix[off+3]}
}

func TestClearCycle(t *testing.T) {
	for _, tc := range []struct {
		green bool
		want  color.RGBA
	}{
		{false, Black},
		{true, Green},
	} {
		r, m := newTestRenderer(t)

		if err := r.Clear(tc.green); err != nil {
			t.Fatalf("Clear(%v): %v", tc.green, err)
		}

		if err := r.Commit(); err != nil {
			t.Fatalf("Commit: %v", err)
		}

		for y := 0; y < testH; y++ {
			for x := 0; x < testW; x++ {
				if got := pixelAt(m, x, y); got != tc.want {
					t.Fatalf("green=%v pixel (%d, %d) = %v, want %v",
						tc.green, x, y, got, tc.want)
				}
			}
		}

		if r.Open() {
			t.Error("renderer still open after commit")
		}
	}
}

func TestDrawLine(t *testing.T) {
	r, m := newTestRenderer(t)

	ok, err := r.Draw([]int16{0}, DrawLine, testColor)
	if err != nil || !ok {
		t.Fatalf("Draw = (%v, %v)", ok, err)
	}

	if err := r.Commit(); err != nil {
		t.Fatal(err)
	}

	// zero amplitude lands on the center row, column 0
	if got := pixelAt(m, 0, testH/2); got != testColor {
		t.Errorf("center pixel = %v, want %v", got, testColor)
	}

	for y := 0; y < testH; y++ {
		if y == testH/2 {
			continue
		}
		for x := 0; x < testW; x++ {
			if got := pixelAt(m, x, y); (got != color.RGBA{}) {
				t.Fatalf("pixel (%d, %d) = %v, want untouched", x, y, got)
			}
		}
	}
}

func TestDrawBars(t *testing.T) {
	r, m := newTestRenderer(t)

	ok, err := r.Draw([]int16{50}, DrawBars, testColor)
	if err != nil || !ok {
		t.Fatalf("Draw = (%v, %v)", ok, err)
	}

	if err := r.Commit(); err != nil {
		t.Fatal(err)
	}

	// the bar grows from the bottom row upward, two pixels wide
	for y := testH - 1; y >= testH-50; y-- {
		for x := 0; x < 2; x++ {
			if got := pixelAt(m, x, y); got != testColor {
				t.Errorf("bar pixel (%d, %d) = %v, want %v", x, y, got, testColor)
			}
		}
	}

	// nothing above the bar top, nothing in the next bar column
	if got := pixelAt(m, 0, testH-51); (got != color.RGBA{}) {
		t.Errorf("pixel above bar = %v, want untouched", got)
	}

	if got := pixelAt(m, 8, testH-1); (got != color.RGBA{}) {
		t.Errorf("next bar column = %v, want untouched", got)
	}
}

func TestDrawBarsClipsTallSamples(t *testing.T) {
	r, _ := newTestRenderer(t)

	// amplitude far beyond the frame; writes past the top are dropped
	if ok, err := r.Draw([]int16{32000}, DrawBars, testColor); err != nil || !ok {
		t.Fatalf("Draw = (%v, %v)", ok, err)
	}

	if err := r.Commit(); err != nil {
		t.Fatal(err)
	}
}

func TestDrawNoSamples(t *testing.T) {
	r, _ := newTestRenderer(t)

	if ok, err := r.Draw(nil, DrawBars, testColor); ok || err != nil {
		t.Errorf("Draw(nil) = (%v, %v), want no-op false", ok, err)
	}

	if ok, err := r.Draw([]int16{}, DrawLine, testColor); ok || err != nil {
		t.Errorf("Draw(empty) = (%v, %v), want no-op false", ok, err)
	}
}

func TestMarker(t *testing.T) {
	r, m := newTestRenderer(t)

	// x wraps modulo width
	ok, err := r.Marker(testW+5, testColor)
	if err != nil || !ok {
		t.Fatalf("Marker = (%v, %v)", ok, err)
	}

	if err := r.Commit(); err != nil {
		t.Fatal(err)
	}

	for y := 0; y < testH; y++ {
		for _, x := range []int{5, 6} {
			if got := pixelAt(m, x, y); got != testColor {
				t.Errorf("marker pixel (%d, %d) = %v, want %v", x, y, got, testColor)
			}
		}

		if got := pixelAt(m, 7, y); (got != color.RGBA{}) {
			t.Errorf("pixel right of marker at row %d = %v, want untouched", y, got)
		}
	}
}

func TestMarkerNegativeX(t *testing.T) {
	r, _ := newTestRenderer(t)

	if ok, err := r.Marker(-1, testColor); ok || err != nil {
		t.Errorf("Marker(-1) = (%v, %v), want no-op false", ok, err)
	}
}

func TestNotOpen(t *testing.T) {
	r := New(Config{Width: testW, Height: testH})

	if err := r.Clear(false); err != ErrNotOpen {
		t.Errorf("Clear err = %v, want ErrNotOpen", err)
	}

	if _, err := r.Draw([]int16{1}, DrawBars, testColor); err != ErrNotOpen {
		t.Errorf("Draw err = %v, want ErrNotOpen", err)
	}

	if _, err := r.Marker(0, testColor); err != ErrNotOpen {
		t.Errorf("Marker err = %v, want ErrNotOpen", err)
	}

	if err := r.Commit(); err != ErrNotOpen {
		t.Errorf("Commit err = %v, want ErrNotOpen", err)
	}
}

func TestBeginTwice(t *testing.T) {
	r, m := newTestRenderer(t)

	if err := r.Begin(m); err != ErrAlreadyOpen {
		t.Errorf("second Begin err = %v, want ErrAlreadyOpen", err)
	}
}

func TestBusyGuard(t *testing.T) {
	r, _ := newTestRenderer(t)

	snapshot := make([]byte, len(r.frame))
	copy(snapshot, r.frame)

	r.busy = true

	if err := r.Clear(false); err != ErrBusy {
		t.Errorf("Clear err = %v, want ErrBusy", err)
	}

	if _, err := r.Draw([]int16{50}, DrawBars, testColor); err != ErrBusy {
		t.Errorf("Draw err = %v, want ErrBusy", err)
	}

	if _, err := r.Marker(0, testColor); err != ErrBusy {
		t.Errorf("Marker err = %v, want ErrBusy", err)
	}

	if err := r.Commit(); err != ErrBusy {
		t.Errorf("Commit err = %v, want ErrBusy", err)
	}

	if !bytes.Equal(snapshot, r.frame) {
		t.Error("frame mutated by rejected reentrant calls")
	}

	r.busy = false

	// guard released means normal operation resumes
	if err := r.Clear(false); err != nil {
		t.Errorf("Clear after release: %v", err)
	}
}

type failingSurface struct{}

func (failingSurface) AcquirePixelRegion(x, y, w, h int) ([]byte, error) {
	return nil, errors.New("no context")
}

func (failingSurface) CommitPixelRegion(buf []byte, x, y int) error {
	return nil
}

func TestBeginSurfaceFailure(t *testing.T) {
	r := New(Config{Width: testW, Height: testH})

	err := r.Begin(failingSurface{})
	if err == nil {
		t.Fatal("Begin on failing surface did not error")
	}

	if r.Open() {
		t.Error("renderer open after failed Begin")
	}

	if r.busy {
		t.Error("busy flag left set after failed Begin")
	}
}

func TestMemoryRegionBounds(t *testing.T) {
	m := NewMemory(10, 10)

	if _, err := m.AcquirePixelRegion(4, 4, 10, 10); err == nil {
		t.Error("out-of-range acquire did not error")
	}

	if _, err := m.AcquirePixelRegion(0, 0, 0, 5); err == nil {
		t.Error("zero-width acquire did not error")
	}
}

func BenchmarkDrawBars(b *testing.B) {
	r := New(Config{Width: 320, Height: 200})
	m := NewMemory(320, 200)

	if err := r.Begin(m); err != nil {
		b.Fatal(err)
	}

	samples := make([]int16, 80)
	for i := range samples {
		samples[i] = int16(i * 2)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := r.Draw(samples, DrawBars, testColor); err != nil {
			b.Fatal(err)
		}
	}
}
