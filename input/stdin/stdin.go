// Package stdin provides an input backend that reads raw little-endian
// signed 16-bit PCM from standard input. Pair it with anything that can
// emit raw samples, e.g.
//
//	ffmpeg -i song.ogg -f s16le -ac 1 -ar 44100 - | wavepix -b stdin
package stdin

import (
	"context"
	"encoding/binary"
	"io"
	"os"
	"sync"

	"github.com/noriah/wavepix/input"
	"github.com/noriah/wavepix/ring"

	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("stdin", Backend{})
}

// Backend reads from os.Stdin.
type Backend struct{}

func (b Backend) Init() error  { return nil }
func (b Backend) Close() error { return nil }

func (b Backend) Devices() ([]input.Device, error) {
	return []input.Device{Device{}}, nil
}

func (b Backend) DefaultDevice() (input.Device, error) {
	return Device{}, nil
}

func (b Backend) Start(cfg input.SessionConfig) (input.Session, error) {
	if cfg.SampleSize < 1 {
		return nil, errors.New("stdin: bad sample size")
	}

	return &Session{cfg: cfg, src: os.Stdin}, nil
}

// Device is the single stdin device.
type Device struct{}

func (d Device) String() string {
	return "stdin"
}

// Session reads one sample window at a time and pushes it into the ring.
// A clean EOF ends the session without error.
type Session struct {
	cfg input.SessionConfig
	src io.Reader
}

func (s *Session) Start(ctx context.Context, dst *ring.Buffer, kick chan bool, mu *sync.Mutex) error {
	raw := make([]byte, s.cfg.SampleSize*2)
	buf := make([]int16, s.cfg.SampleSize)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, err := io.ReadFull(s.src, raw)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return nil
		default:
			return errors.Wrap(err, "failed to read samples")
		}

		for i := range buf {
			buf[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
		}

		mu.Lock()
		dst.Push(buf)
		mu.Unlock()

		if err := input.Kick(ctx, kick); err != nil {
			return err
		}
	}
}
