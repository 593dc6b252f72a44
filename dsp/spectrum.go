// Package dsp turns raw sample windows into drawable amplitudes.
package dsp

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// AnalyzerConfig configures an Analyzer.
type AnalyzerConfig struct {
	SampleRate float64 // audio sample rate
	SampleSize int     // number of samples per window
}

// Analyzer computes spectrum bar magnitudes from a sample window using a
// Hann-tapered FFT. Reusable across frames; not safe for concurrent use.
type Analyzer struct {
	cfg AnalyzerConfig

	fft     *fourier.FFT
	scratch []float64
	coeffs  []complex128
}

// NewAnalyzer returns an analyzer for windows of cfg.SampleSize samples.
func NewAnalyzer(cfg AnalyzerConfig) *Analyzer {
	return &Analyzer{
		cfg:     cfg,
		fft:     fourier.NewFFT(cfg.SampleSize),
		scratch: make([]float64, cfg.SampleSize),
		coeffs:  make([]complex128, cfg.SampleSize/2+1),
	}
}

// BinCount returns the number of raw FFT bins per window.
func (a *Analyzer) BinCount() int {
	return len(a.coeffs)
}

// Process fills dst with one magnitude per bar, folding the FFT bins of
// samples down to len(dst) bars. Windows shorter than the configured
// sample size are zero padded. Returns the peak magnitude.
func (a *Analyzer) Process(samples []int16, dst []float64) float64 {
	for i := range a.scratch {
		if i < len(samples) {
			a.scratch[i] = float64(samples[i])
		} else {
			a.scratch[i] = 0
		}
	}

	window.Hann(a.scratch)
	a.fft.Coefficients(a.coeffs, a.scratch)

	bars := len(dst)
	if bars < 1 {
		return 0
	}

	// skip the DC bin
	usable := len(a.coeffs) - 1
	perBar := usable / bars
	if perBar < 1 {
		perBar = 1
	}

	peak := 0.0

	for xBar := range dst {
		lo := 1 + xBar*perBar
		hi := lo + perBar
		if hi > len(a.coeffs) {
			hi = len(a.coeffs)
		}

		if lo >= hi {
			dst[xBar] = 0
			continue
		}

		v := 0.0
		for xBin := lo; xBin < hi; xBin++ {
			v += cmplx.Abs(a.coeffs[xBin])
		}
		v /= float64(hi - lo)

		// compress the range so quiet content still shows
		v = math.Pow(v, 0.5)

		if peak < v {
			peak = v
		}

		dst[xBar] = v
	}

	return peak
}
