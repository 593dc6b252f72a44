package util

import (
	"math"
)

// MovingWindow tracks the running mean and standard deviation of the
// last capacity values pushed into it. The renderer pipeline feeds it
// frame peaks to decide how hard to scale amplitudes.
type MovingWindow struct {
	values []float64
	next   int

	length   int
	capacity int

	variance float64
	stddev   float64

	sum     float64
	average float64
}

// NewMovingWindow returns a new moving window.
func NewMovingWindow(size int) *MovingWindow {
	return &MovingWindow{
		values:   make([]float64, size),
		capacity: size,
	}
}

func (mw *MovingWindow) calcFinal() (float64, float64) {
	if mw.length > 1 {
		// came from dpayne/cli-visualizer by way of catnip
		mw.stddev = (mw.variance / float64(mw.length-1)) - (mw.average * mw.average)
		mw.stddev = math.Sqrt(math.Abs(mw.stddev))
	} else {
		mw.stddev = 0
	}

	if mw.length > 0 {
		mw.average = mw.sum / float64(mw.length)
	} else {
		mw.average = 0
	}

	return mw.average, mw.stddev
}

// Update pushes a value into the window, evicting the oldest value once
// at capacity. Returns the new mean and standard deviation.
func (mw *MovingWindow) Update(value float64) (float64, float64) {
	if mw.length < mw.capacity {
		mw.length++

		mw.variance += value * value
		mw.sum += value
	} else {
		old := mw.values[mw.next]

		mw.variance += (value * value) - (old * old)
		mw.sum += value - old
	}

	mw.values[mw.next] = value
	if mw.next++; mw.next >= mw.capacity {
		mw.next = 0
	}

	return mw.calcFinal()
}

// Drop removes count of the oldest items from the window.
func (mw *MovingWindow) Drop(count int) (float64, float64) {
	for count > 0 && mw.length > 0 {
		oldest := mw.next - mw.length
		if oldest < 0 {
			oldest += mw.capacity
		}

		old := mw.values[oldest]

		mw.sum -= old
		mw.variance -= old * old

		mw.length--
		count--
	}

	// not enough length for standard dev, clear variance so rounding
	// dust cannot accumulate
	if mw.length < 2 {
		mw.variance = 0
		if mw.length < 1 {
			mw.sum = 0
		}
	}

	return mw.calcFinal()
}

// Len returns how many items in the window
func (mw *MovingWindow) Len() int {
	return mw.length
}

// Cap returns max size of window
func (mw *MovingWindow) Cap() int {
	return mw.capacity
}

// Mean is the moving window average
func (mw *MovingWindow) Mean() float64 {
	return mw.average
}

// StdDev is the moving average std
func (mw *MovingWindow) StdDev() float64 {
	return mw.stddev
}

// Stats returns the statistics of this window
func (mw *MovingWindow) Stats() (float64, float64) {
	return mw.average, mw.stddev
}
