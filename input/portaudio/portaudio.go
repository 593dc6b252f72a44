//go:build cgo

// Package portaudio provides microphone capture through the PortAudio
// bindings. Needs cgo and a working PortAudio install.
package portaudio

import (
	"context"
	"sync"

	"github.com/noriah/wavepix/input"
	"github.com/noriah/wavepix/ring"

	"github.com/gordonklaus/portaudio"
	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("portaudio", &Backend{})
}

// errors
var (
	ErrBadDevice = errors.New("device not found")
)

// Backend represents the PortAudio backend. A zero-value instance is a
// valid instance.
type Backend struct {
	devices []*portaudio.DeviceInfo
}

func (b *Backend) Init() error {
	return portaudio.Initialize()
}

func (b *Backend) Close() error {
	return portaudio.Terminate()
}

func (b *Backend) Devices() ([]input.Device, error) {
	if b.devices == nil {
		devices, err := portaudio.Devices()
		if err != nil {
			return nil, err
		}
		b.devices = devices
	}

	gDevices := make([]input.Device, 0, len(b.devices))
	for _, device := range b.devices {
		if device.MaxInputChannels > 0 {
			gDevices = append(gDevices, Device{device})
		}
	}

	return gDevices, nil
}

func (b *Backend) DefaultDevice() (input.Device, error) {
	info, err := portaudio.DefaultInputDevice()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get default input device")
	}

	return Device{info}, nil
}

func (b *Backend) Start(cfg input.SessionConfig) (input.Session, error) {
	d, ok := cfg.Device.(Device)
	if !ok {
		return nil, ErrBadDevice
	}

	return NewSession(d, cfg)
}

// Device wraps a PortAudio device.
type Device struct {
	*portaudio.DeviceInfo
}

func (d Device) String() string {
	return d.Name
}

// Session is a capture session on one input device.
type Session struct {
	stream *portaudio.Stream
	buf    []int16
}

// NewSession opens a mono int16 input stream on the device.
func NewSession(d Device, cfg input.SessionConfig) (*Session, error) {
	buf := make([]int16, cfg.SampleSize)

	stream, err := portaudio.OpenStream(portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   d.DeviceInfo,
			Channels: 1,
			Latency:  d.DefaultLowInputLatency,
		},
		SampleRate:      cfg.SampleRate,
		FramesPerBuffer: cfg.SampleSize,
		Flags:           portaudio.ClipOff | portaudio.DitherOff,
	}, buf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open input stream")
	}

	return &Session{stream: stream, buf: buf}, nil
}

func (s *Session) Start(ctx context.Context, dst *ring.Buffer, kick chan bool, mu *sync.Mutex) error {
	if err := s.stream.Start(); err != nil {
		return errors.Wrap(err, "failed to start input stream")
	}

	defer func() {
		s.stream.Stop()
		s.stream.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.stream.Read(); err != nil {
			// overflow drops a window but the stream is still good
			if errors.Is(err, portaudio.InputOverflowed) {
				continue
			}

			return errors.Wrap(err, "failed to read from stream")
		}

		mu.Lock()
		dst.Push(s.buf)
		mu.Unlock()

		if err := input.Kick(ctx, kick); err != nil {
			return err
		}
	}
}
