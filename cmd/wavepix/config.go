package main

import (
	"encoding/hex"
	"image/color"

	"github.com/noriah/wavepix"

	"github.com/pkg/errors"
)

// config holds the raw flag values before they become a wavepix.Config.
type config struct {
	// backend is the backend name from list-backends
	backend string
	// device is the device name from list-devices
	device string
	// sampleRate is the rate at which samples are read
	sampleRate float64
	// sampleSize is how much we draw. Play with it
	sampleSize int
	// frameRate is the number of frames to draw every second (0 draws on
	// every sample window)
	frameRate int
	// border inset in pixels
	border int
	// drawType is the draw type (0 bars, 1 line)
	drawType int
	// spectrum switches to FFT magnitudes
	spectrum bool
	// green clears to the classic dark green
	green bool
	// logErrors makes the renderer log failures
	logErrors bool
	// foreground and marker are RRGGBB hex strings
	foreground string
	marker     string
}

// newZeroConfig returns a zero config
// it is the "default"
func newZeroConfig() config {
	return config{
		sampleRate: 44100,
		sampleSize: 1024,
		frameRate:  0,
		border:     1,
	}
}

// build turns the flag values into a sanitized run config.
func (cfg *config) build() (wavepix.Config, error) {
	out := wavepix.NewZeroConfig()

	out.Backend = cfg.backend
	out.Device = cfg.device
	out.SampleRate = cfg.sampleRate
	out.SampleSize = cfg.sampleSize
	out.FrameRate = cfg.frameRate
	out.Border = cfg.border
	out.DrawType = cfg.drawType
	out.Spectrum = cfg.spectrum
	out.GreenBackground = cfg.green
	out.LogErrors = cfg.logErrors

	if cfg.foreground != "" {
		c, err := parseColor(cfg.foreground)
		if err != nil {
			return out, errors.Wrap(err, "bad foreground color")
		}
		out.Foreground = c
	}

	if cfg.marker != "" {
		c, err := parseColor(cfg.marker)
		if err != nil {
			return out, errors.Wrap(err, "bad marker color")
		}
		out.Marker = c
	}

	return out, out.Sanitize()
}

// parseColor reads an RRGGBB hex string, with or without a leading '#'.
func parseColor(s string) (color.RGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}

	raw, err := hex.DecodeString(s)
	if err != nil {
		return color.RGBA{}, err
	}

	if len(raw) != 3 {
		return color.RGBA{}, errors.Errorf("want 3 color bytes, got %d", len(raw))
	}

	return color.RGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xff}, nil
}
