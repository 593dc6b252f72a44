//go:build cgo

package all

import (
	_ "github.com/noriah/wavepix/input/portaudio"
)
