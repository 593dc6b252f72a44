// Package all imports all backends implemented by the input package.
package all

import (
	_ "github.com/noriah/wavepix/input/sine"
	_ "github.com/noriah/wavepix/input/stdin"
)
