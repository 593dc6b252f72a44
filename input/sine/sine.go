// Package sine provides a synthetic input backend that generates summed
// sine tones. It needs no hardware and is the fallback default.
package sine

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/noriah/wavepix/input"
	"github.com/noriah/wavepix/ring"

	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("sine", Backend{})
}

// Amplitude of the generated fundamental, out of the int16 range.
const Amplitude = 12000

// Backend generates tones instead of capturing them.
type Backend struct{}

func (b Backend) Init() error  { return nil }
func (b Backend) Close() error { return nil }

func (b Backend) Devices() ([]input.Device, error) {
	return []input.Device{Device(440), Device(220), Device(1000)}, nil
}

func (b Backend) DefaultDevice() (input.Device, error) {
	return Device(440), nil
}

func (b Backend) Start(cfg input.SessionConfig) (input.Session, error) {
	freq := 440.0

	if cfg.Device != nil {
		d, ok := cfg.Device.(Device)
		if !ok {
			return nil, errors.New("sine: foreign device")
		}
		freq = float64(d)
	}

	if cfg.SampleRate <= 0 || cfg.SampleSize < 1 {
		return nil, errors.New("sine: bad session config")
	}

	return &Session{cfg: cfg, freq: freq}, nil
}

// Device is a tone frequency in Hz.
type Device float64

func (d Device) String() string {
	return strconv.FormatFloat(float64(d), 'f', -1, 64) + "hz"
}

// Session writes a fundamental plus two quieter harmonics, one sample
// window per tick, paced to the configured sample rate.
type Session struct {
	cfg  input.SessionConfig
	freq float64
}

func (s *Session) Start(ctx context.Context, dst *ring.Buffer, kick chan bool, mu *sync.Mutex) error {
	rate := time.Duration(
		float64(s.cfg.SampleSize) / s.cfg.SampleRate * float64(time.Second))

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	buf := make([]int16, s.cfg.SampleSize)

	var phase float64
	step := 2 * math.Pi * s.freq / s.cfg.SampleRate

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		for i := range buf {
			v := math.Sin(phase)
			v += 0.5 * math.Sin(2*phase)
			v += 0.25 * math.Sin(3*phase)

			buf[i] = int16(v * Amplitude / 1.75)

			phase += step
		}

		// keep phase bounded over long runs
		phase = math.Mod(phase, 2*math.Pi)

		mu.Lock()
		dst.Push(buf)
		mu.Unlock()

		if err := input.Kick(ctx, kick); err != nil {
			return err
		}
	}
}
