package dsp

import (
	"math"

	"github.com/noriah/wavepix/util"
)

// Scaling Constants
const (

	// ScalingSlowWindow in seconds
	ScalingSlowWindow = 5

	// ScalingFastWindow in seconds
	ScalingFastWindow = ScalingSlowWindow * 0.2

	// ScalingDumpPercent is how much we erase on rescale
	ScalingDumpPercent = 0.75

	// ScalingResetDeviation standard deviations from the mean before reset
	ScalingResetDeviation = 1
)

// Scaler tracks recent frame peaks and hands out a multiplier that fits
// amplitudes to a target height. A slow window follows the overall level
// and a fast window catches sudden jumps; when the two drift apart the
// slow window dumps most of its history and re-learns.
type Scaler struct {
	slowWindow *util.MovingWindow
	fastWindow *util.MovingWindow
}

// NewScaler returns a scaler tuned for the given sample rate and samples
// per frame.
func NewScaler(hz float64, samples int) *Scaler {
	slowMax := int((ScalingSlowWindow*hz)/float64(samples)) * 2
	fastMax := int((ScalingFastWindow*hz)/float64(samples)) * 2

	return &Scaler{
		slowWindow: util.NewMovingWindow(slowMax),
		fastWindow: util.NewMovingWindow(fastMax),
	}
}

// Scale folds peak into the windows and returns the factor that maps the
// current level onto height. A zero or negative peak leaves the windows
// untouched and returns the plain height.
func (s *Scaler) Scale(height, peak float64) float64 {
	if peak <= 0.0 {
		return height
	}

	s.fastWindow.Update(peak)
	vMean, vSD := s.slowWindow.Update(peak)

	if length := s.slowWindow.Len(); length >= s.fastWindow.Cap() {
		if math.Abs(s.fastWindow.Mean()-vMean) > (ScalingResetDeviation * vSD) {
			vMean, vSD = s.slowWindow.Drop(
				int(float64(length) * ScalingDumpPercent))
		}
	}

	if peak/math.Max(vMean+(1.5*vSD), 1) > 1.4 {
		vMean, vSD = s.slowWindow.Drop(
			int(float64(s.slowWindow.Len()) * ScalingDumpPercent))
	}

	return height / math.Max(vMean+(1.5*vSD), 1)
}
