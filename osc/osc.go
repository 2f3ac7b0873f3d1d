// Package osc provides leaf oscillator nodes: band-limited-enough waveform
// generators to feed a signal graph.
//
// An oscillator defaults to a quiet amplitude and a finite five second
// duration, which is convenient when a tone is played on its own. The
// composition operators in the node package undo both defaults through the
// sound.DurationExtender and sound.AmplitudeDefaulter hooks when the
// oscillator is combined with other signals.
package osc

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dudk/sound"
)

// Wave enumerates the waveform shapes. The Complex variants produce the
// analytic signal of their real counterpart: the real part is the plain
// waveform, the imaginary part its Hilbert transform.
type Wave int

// Waveform shapes.
const (
	Sine Wave = iota
	ComplexSine
	Triangle
	Square
	ComplexSquare
	Ramp
	ComplexRamp
	Gauss
	Parabola
)

// String returns the waveform name.
func (w Wave) String() string {
	switch w {
	case Sine:
		return "sine"
	case ComplexSine:
		return "complex sine"
	case Triangle:
		return "triangle"
	case Square:
		return "square"
	case ComplexSquare:
		return "complex square"
	case Ramp:
		return "ramp"
	case ComplexRamp:
		return "complex ramp"
	case Gauss:
		return "gauss"
	case Parabola:
		return "parabola"
	}
	return "unknown"
}

// complex reports whether the waveform produces complex blocks.
func (w Wave) complex() bool {
	switch w {
	case ComplexSine, ComplexSquare, ComplexRamp:
		return true
	}
	return false
}

// DefaultSampleRate is used when no sample rate option is given.
const DefaultSampleRate = 48000

const (
	defaultAmplitude = 0.1
	defaultDuration  = 5 * time.Second
)

// Oscillator is a stateful leaf generator of one waveform.
type Oscillator struct {
	sound.UID
	wave Wave
	freq float64
	rate int

	amp        float64
	ampDefault bool

	phase           float64 // radians in [0, 2*pi)
	remaining       int     // samples left to produce, -1 when unbounded
	durationDefault bool
}

// Option configures an oscillator.
type Option func(*Oscillator)

// WithAmplitude sets the peak amplitude explicitly.
func WithAmplitude(a float64) Option {
	return func(o *Oscillator) {
		o.amp = a
		o.ampDefault = false
	}
}

// WithDuration sets the duration explicitly. A non-positive duration makes
// the oscillator unbounded.
func WithDuration(d time.Duration) Option {
	return func(o *Oscillator) {
		o.durationDefault = false
		if d <= 0 {
			o.remaining = -1
			return
		}
		o.remaining = samples(d, o.rate)
	}
}

// WithSampleRate sets the sample rate. It must precede WithDuration.
func WithSampleRate(rate int) Option {
	return func(o *Oscillator) {
		o.rate = rate
	}
}

// WithPhase sets the initial phase in radians.
func WithPhase(p float64) Option {
	return func(o *Oscillator) {
		o.phase = wrap(p)
	}
}

// New returns an oscillator of the given waveform and frequency.
func New(wave Wave, freq float64, options ...Option) *Oscillator {
	o := &Oscillator{
		UID:             sound.NewUID(),
		wave:            wave,
		freq:            freq,
		rate:            DefaultSampleRate,
		amp:             defaultAmplitude,
		ampDefault:      true,
		durationDefault: true,
	}
	for _, option := range options {
		option(o)
	}
	if o.durationDefault {
		o.remaining = samples(defaultDuration, o.rate)
	}
	return o
}

// samples returns the duration rounded to a whole number of samples.
func samples(d time.Duration, rate int) int {
	return int(math.Round(d.Seconds() * float64(rate)))
}

// String returns the oscillator description.
func (o *Oscillator) String() string {
	return fmt.Sprintf("%v %.6gHz %v", o.wave, o.freq, o.ID())
}

// Frequency returns the oscillator frequency in Hz.
func (o *Oscillator) Frequency() float64 {
	return o.freq
}

// SampleRate returns the oscillator sample rate.
func (o *Oscillator) SampleRate() int {
	return o.rate
}

// Sample produces the next n samples of the waveform. A bounded oscillator
// produces a shorter final block when it gets exhausted mid-block and
// io.EOF afterwards.
func (o *Oscillator) Sample(n int) (sound.Block, error) {
	if o.remaining == 0 {
		return sound.Block{}, io.EOF
	}
	if n <= 0 {
		return sound.Block{}, nil
	}
	if o.remaining > 0 && n > o.remaining {
		n = o.remaining
	}

	step := 2 * math.Pi * o.freq / float64(o.rate)
	var out sound.Block
	if o.wave.complex() {
		s := make([]complex128, n)
		for i := range s {
			s[i] = complex(o.amp, 0) * cshape(o.wave, o.phase)
			o.phase = wrap(o.phase + step)
		}
		out = sound.Complex(s)
	} else {
		s := make([]float64, n)
		for i := range s {
			s[i] = o.amp * shape(o.wave, o.phase)
			o.phase = wrap(o.phase + step)
		}
		out = sound.Real(s)
	}
	if o.remaining > 0 {
		o.remaining -= n
	}
	return out, nil
}

// Sources implements sound.Node. The oscillator is a leaf.
func (o *Oscillator) Sources() []sound.Node {
	return nil
}

// ExtendDurationIfUnbounded clears a defaulted finite duration. An
// explicitly set duration is left untouched.
func (o *Oscillator) ExtendDurationIfUnbounded() {
	if o.durationDefault {
		o.durationDefault = false
		o.remaining = -1
	}
}

// ExtendAmplitudeIfDefault switches a defaulted amplitude to full scale. An
// explicitly set amplitude is left untouched.
func (o *Oscillator) ExtendAmplitudeIfDefault() {
	if o.ampDefault {
		o.ampDefault = false
		o.amp = 1
	}
}

// shape returns the raw waveform value at phase phi in [0, 2*pi).
func shape(wave Wave, phi float64) float64 {
	switch wave {
	case Sine:
		return math.Sin(phi)
	case Triangle:
		switch {
		case phi < math.Pi/2:
			// rise from 0..1 in 0..pi/2
			return phi * 2 / math.Pi
		case phi < 3*math.Pi/2:
			// fall from 1..-1 in pi/2..3pi/2
			return 2 - phi*2/math.Pi
		default:
			// rise back to 0 in 3pi/2..2pi
			return phi*2/math.Pi - 4
		}
	case Square:
		if phi < math.Pi {
			return 1
		}
		return -1
	case Ramp:
		return phi/math.Pi - 1
	case Gauss:
		// periodic gaussian pulse, peak 1 mid-period, valley near -1
		d := phi - math.Pi
		return 2*math.Exp(-d*d) - 1
	case Parabola:
		// parabolic arcs tracking the sine's sign and extremes
		if phi < math.Pi {
			x := 2*phi/math.Pi - 1
			return 1 - x*x
		}
		x := 2*(phi-math.Pi)/math.Pi - 1
		return x*x - 1
	}
	return 0
}

// cshape returns the analytic waveform value at phase phi. The Hilbert
// part of the square and ramp diverges logarithmically at the waveform's
// discontinuities; exactly on such a phase it is clamped to zero.
func cshape(wave Wave, phi float64) complex128 {
	switch wave {
	case ComplexSine:
		// exp(i*(phi - pi/2)), the analytic signal of the sine
		return cis(phi - math.Pi/2)
	case ComplexSquare:
		return complex(shape(Square, phi), finite(2/math.Pi*math.Log(math.Abs(math.Tan(phi/2)))))
	case ComplexRamp:
		return complex(shape(Ramp, phi), finite(-2/math.Pi*math.Log(2*math.Sin(phi/2))))
	}
	return 0
}

// finite clamps an infinite or undefined value to zero.
func finite(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

func cis(phi float64) complex128 {
	return complex(math.Cos(phi), math.Sin(phi))
}

func wrap(phi float64) float64 {
	phi = math.Mod(phi, 2*math.Pi)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return phi
}
