// Package wavepix renders live sample streams as waveforms on a
// terminal pixel surface.
//
// The pipeline is: an input session pushes int16 samples into a ring
// buffer, each frame the tail window is extracted back out as a linear
// slice, scaled (or spectrum-analyzed) to fit the drawable height, and
// drawn through the renderer onto the display surface.
package wavepix

import (
	"context"
	"sync"
	"time"

	"github.com/noriah/wavepix/dsp"
	"github.com/noriah/wavepix/graphic"
	"github.com/noriah/wavepix/input"
	"github.com/noriah/wavepix/render"
	"github.com/noriah/wavepix/ring"

	"github.com/pkg/errors"
)

// ringWindows is how many input windows the ring holds before old
// samples are overwritten.
const ringWindows = 8

// Run wires the whole pipeline together and blocks until the context is
// canceled, the user quits, or the input session ends.
func Run(cfg *Config, ctx context.Context) error {

	// INPUT SETUP

	backendName := cfg.Backend
	if backendName == "" {
		backendName = input.DefaultBackend()
	}

	backend, err := input.InitBackend(backendName)
	if err != nil {
		return err
	}
	defer backend.Close()

	device, err := input.GetDevice(backend, cfg.Device)
	if err != nil {
		return err
	}

	session, err := backend.Start(input.SessionConfig{
		Device:     device,
		SampleRate: cfg.SampleRate,
		SampleSize: cfg.SampleSize,
	})
	if err != nil {
		return errors.Wrap(err, "failed to start the input backend")
	}

	// DISPLAY SETUP

	display := graphic.NewDisplay()
	if err := display.Init(); err != nil {
		return err
	}
	defer display.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ctx = display.Start(ctx)
	defer display.Stop()

	surfaceW, surfaceH := display.Size()

	width := surfaceW - 2*cfg.Border
	height := surfaceH - 2*cfg.Border
	if width < 4 || height < 2 {
		return errors.Errorf("screen too small: %dx%d", surfaceW, surfaceH)
	}

	vis := newVisualizer(cfg, display, width, height)

	buffer, err := ring.New(cfg.SampleSize*ringWindows, width)
	if err != nil {
		return err
	}

	// PROCESS LOOP

	kick := make(chan bool, 1)
	mu := &sync.Mutex{}

	sessionErr := make(chan error, 1)
	go func() {
		sessionErr <- session.Start(ctx, buffer, kick, mu)
	}()

	var tick <-chan time.Time
	if cfg.FrameRate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(cfg.FrameRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-sessionErr:
			if err != nil && !errors.Is(err, context.Canceled) {
				return errors.Wrap(err, "input session failed")
			}
			return nil

		case <-kick:
			if cfg.FrameRate > 0 {
				// paced by the ticker instead
				continue
			}

		case <-tick:
		}

		if err := vis.frame(buffer, mu); err != nil {
			return err
		}
	}
}

// visualizer holds the per-frame drawing state.
type visualizer struct {
	cfg      *Config
	surface  render.Surface
	renderer *render.Renderer
	scaler   *dsp.Scaler
	analyzer *dsp.Analyzer

	width  int
	height int

	samples []int16
	bars    []float64
}

func newVisualizer(cfg *Config, surface render.Surface, width, height int) *visualizer {
	vis := &visualizer{
		cfg:     cfg,
		surface: surface,
		renderer: render.New(render.Config{
			Width:     width,
			Height:    height,
			Border:    cfg.Border,
			LogErrors: cfg.LogErrors,
		}),
		scaler: dsp.NewScaler(cfg.SampleRate, cfg.SampleSize),
		width:  width,
		height: height,
	}

	if cfg.Spectrum {
		vis.analyzer = dsp.NewAnalyzer(dsp.AnalyzerConfig{
			SampleRate: cfg.SampleRate,
			SampleSize: cfg.SampleSize,
		})
		vis.bars = make([]float64, width/4)
	}

	return vis
}

// frame extracts the freshest window and draws one full
// begin/clear/draw/marker/commit cycle.
func (vis *visualizer) frame(buffer *ring.Buffer, mu *sync.Mutex) error {
	block := vis.width
	if vis.cfg.Spectrum {
		// the analyzer wants a full analysis window
		block = vis.cfg.SampleSize
	} else if render.DrawType(vis.cfg.DrawType) == render.DrawBars {
		block = vis.width / 4
	}

	mu.Lock()
	res, err := buffer.Extract(buffer.Tail(block))
	head := buffer.Head()
	size := buffer.Size()
	mu.Unlock()

	if err != nil {
		return err
	}

	if !res.OK {
		return nil
	}

	drawn := vis.shape(res.Samples)

	if err := vis.renderer.Begin(vis.surface); err != nil {
		return err
	}

	if err := vis.renderer.Clear(vis.cfg.GreenBackground); err != nil {
		return err
	}

	dt := render.DrawType(vis.cfg.DrawType)
	if vis.cfg.Spectrum {
		dt = render.DrawBars
	}

	if _, err := vis.renderer.Draw(drawn, dt, vis.cfg.Foreground); err != nil {
		return err
	}

	// marker tracks the ring write position across the frame width
	if _, err := vis.renderer.Marker(head*vis.width/size, vis.cfg.Marker); err != nil {
		return err
	}

	return vis.renderer.Commit()
}

// shape turns raw window samples into drawable amplitudes, fitted to the
// frame height by the adaptive scaler.
func (vis *visualizer) shape(raw []int16) []int16 {
	if vis.analyzer != nil {
		peak := vis.analyzer.Process(raw, vis.bars)
		scale := vis.scaler.Scale(float64(vis.height-1), peak)

		vis.samples = vis.samples[:0]
		for _, v := range vis.bars {
			vis.samples = append(vis.samples, int16(v*scale))
		}

		return vis.samples
	}

	bars := render.DrawType(vis.cfg.DrawType) == render.DrawBars

	peak := 0.0
	for _, s := range raw {
		if v := abs(s); v > peak {
			peak = v
		}
	}

	target := float64(vis.height/2 - 1)
	if bars {
		target = float64(vis.height - 1)
	}

	scale := vis.scaler.Scale(target, peak)

	vis.samples = vis.samples[:0]
	for _, s := range raw {
		v := float64(s)
		if bars {
			// bars only grow upward
			v = abs(s)
		}

		vis.samples = append(vis.samples, int16(v*scale))
	}

	return vis.samples
}

func abs(s int16) float64 {
	if s < 0 {
		return -float64(s)
	}

	return float64(s)
}
