package wavepix

import (
	"image/color"

	"github.com/noriah/wavepix/render"

	"github.com/pkg/errors"
)

// Config is the top level set of parameters for Run.
type Config struct {
	// Backend is the backend name from list-backends
	Backend string
	// Device is the device name from list-devices
	Device string
	// SampleRate is the rate at which samples are read
	SampleRate float64
	// SampleSize is the number of samples per input window
	SampleSize int
	// FrameRate is the number of frames to draw every second (0 draws on
	// every input window)
	FrameRate int
	// Border is the inset of the drawable region on the surface
	Border int
	// DrawType selects bars or line rendering
	DrawType int
	// Spectrum draws FFT magnitudes instead of the raw waveform
	Spectrum bool
	// GreenBackground clears to the fixed dark green instead of black
	GreenBackground bool
	// Foreground is the waveform color
	Foreground color.RGBA
	// Marker is the write-cursor color
	Marker color.RGBA
	// LogErrors makes the renderer log failures before returning them
	LogErrors bool
}

// NewZeroConfig returns a zero config
// it is the "default"
func NewZeroConfig() Config {
	return Config{
		SampleRate: 44100,
		SampleSize: 1024,
		FrameRate:  0,
		Border:     1,
		DrawType:   int(render.DrawBars),
		Foreground: color.RGBA{R: 0x32, G: 0xdc, B: 0xaa, A: 0xff},
		Marker:     color.RGBA{R: 0xdc, G: 0x50, B: 0x64, A: 0xff},
	}
}

// Sanitize cleans things up
func (cfg *Config) Sanitize() error {

	if cfg.SampleRate < float64(cfg.SampleSize) {
		return errors.New("sample rate lower than sample size")
	}

	if cfg.SampleSize < 4 {
		return errors.New("sample size too small (4+ required)")
	}

	if cfg.FrameRate < 0 {
		cfg.FrameRate = 0
	}

	if cfg.Border < 0 {
		cfg.Border = 0
	}

	switch render.DrawType(cfg.DrawType) {
	case render.DrawBars, render.DrawLine:
	default:
		return errors.Errorf("unknown draw type %d", cfg.DrawType)
	}

	return nil
}
