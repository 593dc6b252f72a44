// Package graphic presents RGBA frames on a terminal screen.
//
// Each terminal cell shows two vertically stacked pixels using the upper
// half block rune, so a screen of C columns and R rows is a C by 2R pixel
// surface.
package graphic

import (
	"context"

	"github.com/noriah/wavepix/render"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// HalfBlock is the cell rune; foreground paints the top pixel,
// background the bottom.
const HalfBlock rune = '▀'

// Display owns a terminal screen and the pixel raster shown on it. It
// implements render.Surface, so a Renderer can draw straight onto the
// terminal.
type Display struct {
	screen tcell.Screen
	raster *render.Memory

	width  int // pixels
	height int // pixels
}

// NewDisplay sets up the display.
func NewDisplay() *Display {
	return &Display{}
}

// Init creates and initializes the terminal screen and sizes the raster
// to it. Must be called before anything else.
func (d *Display) Init() error {
	if d.screen != nil {
		return nil
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "failed to create screen")
	}

	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "failed to init screen")
	}

	return d.init(screen)
}

// init finishes setup on the given screen. Split out so tests can hand
// in a simulation screen.
func (d *Display) init(screen tcell.Screen) error {
	screen.DisableMouse()
	screen.HideCursor()

	cols, rows := screen.Size()
	if cols < 1 || rows < 1 {
		screen.Fini()
		return errors.New("zero-size screen")
	}

	d.screen = screen
	d.width = cols
	d.height = rows * 2
	d.raster = render.NewMemory(d.width, d.height)

	return nil
}

// Size returns the pixel dimensions of the display.
func (d *Display) Size() (int, int) {
	return d.width, d.height
}

// Start runs the event poller. The returned context is canceled when the
// user quits.
func (d *Display) Start(ctx context.Context) context.Context {
	dispCtx, dispCancel := context.WithCancel(ctx)
	go eventPoller(dispCtx, dispCancel, d)
	return dispCtx
}

// eventPoller will take events and do things with them
func eventPoller(ctx context.Context, fn context.CancelFunc, d *Display) {
	defer fn()

	for {
		// first check if we need to exit
		select {
		case <-ctx.Done():
			return
		default:
		}

		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q', 'Q':
					return
				}

			case tcell.KeyCtrlC, tcell.KeyEscape:
				return
			}
		}
	}
}

// Stop stops the display.
func (d *Display) Stop() error {
	return nil
}

// Close cleans up the terminal.
func (d *Display) Close() error {
	if d.screen != nil {
		d.screen.Fini()
	}
	return nil
}

// AcquirePixelRegion hands out a copy of the raster region.
func (d *Display) AcquirePixelRegion(x, y, w, h int) ([]byte, error) {
	if d.raster == nil {
		return nil, errors.New("display not initialized")
	}

	return d.raster.AcquirePixelRegion(x, y, w, h)
}

// CommitPixelRegion blits the buffer back and presents the raster on the
// terminal.
func (d *Display) CommitPixelRegion(buf []byte, x, y int) error {
	if d.raster == nil {
		return errors.New("display not initialized")
	}

	if err := d.raster.CommitPixelRegion(buf, x, y); err != nil {
		return err
	}

	d.show()

	return nil
}

// show maps pixel pairs onto half-block cells and flips the screen.
func (d *Display) show() {
	pix := d.raster.Pix()
	stride := d.width * 4

	for row := 0; row < d.height/2; row++ {
		topOff := (row * 2) * stride
		botOff := topOff + stride

		for col := 0; col < d.width; col++ {
			style := tcell.StyleDefault.
				Foreground(cellColor(pix, topOff+col*4)).
				Background(cellColor(pix, botOff+col*4))

			d.screen.SetContent(col, row, HalfBlock, nil, style)
		}
	}

	d.screen.Show()
}

func cellColor(pix []byte, off int) tcell.Color {
	return tcell.NewRGBColor(
		int32(pix[off]), int32(pix[off+1]), int32(pix[off+2]))
}
