// Package input provides sample sources that feed a ring buffer.
package input

import (
	"context"
	"sync"

	"github.com/noriah/wavepix/ring"
)

// Sample is the datatype we want from our inputs.
type Sample = int16

// Device is a source a backend can capture from.
type Device interface {
	// String returns the device name.
	String() string
}

// SessionConfig describes one capture session.
type SessionConfig struct {
	Device     Device  // device to read from
	SampleRate float64 // sample rate
	SampleSize int     // number of samples per buffer write
}

// Session reads samples from a source and pushes them into dst.
//
// Start blocks until the source is exhausted or ctx is canceled. Every
// push happens under mu, and a non-blocking send on kick follows so the
// drawing side can wake up.
type Session interface {
	Start(ctx context.Context, dst *ring.Buffer, kick chan bool, mu *sync.Mutex) error
}

// Kick signals kick without blocking when the consumer is behind.
func Kick(ctx context.Context, kick chan bool) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case kick <- true:
	default:
	}

	return nil
}
