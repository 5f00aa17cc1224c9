// Package synth renders note events into 16-bit stereo PCM.
package synth

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Output format. Only the sample rate is configurable.
const (
	Channels = 2
	BitDepth = 16
)

// Defaults and limits.
const (
	DefaultSampleRate = 22050
	DefaultSustain    = 0.2
	MaxSustain        = 3.0

	attackFraction = 0.1
	decayRate      = 2.0
	fullScale      = 32767
)

// Config holds synthesizer settings.
type Config struct {
	SampleRate int
	// Sustain is the decay tail appended after each note, in seconds.
	Sustain float64
}

// DefaultConfig returns the standard synthesizer settings.
func DefaultConfig() Config {
	return Config{SampleRate: DefaultSampleRate, Sustain: DefaultSustain}
}

// Synth renders sine tones with an attack/plateau/decay envelope.
type Synth struct {
	rate    int
	sustain float64
}

// New returns a Synth. A non-positive sample rate falls back to the default.
func New(cfg Config) *Synth {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	s := &Synth{rate: cfg.SampleRate}
	s.SetSustain(cfg.Sustain)
	return s
}

// SampleRate returns the output rate in frames per second.
func (s *Synth) SampleRate() int { return s.rate }

// Sustain returns the decay tail length in seconds.
func (s *Synth) Sustain() float64 { return s.sustain }

// SetSustain sets the decay tail length, clamped to [0, MaxSustain].
func (s *Synth) SetSustain(seconds float64) {
	s.sustain = math.Min(math.Max(seconds, 0), MaxSustain)
}

// Render synthesizes one tone. It panics when dur is not positive.
func (s *Synth) Render(freq, dur, vol float64) Buffer {
	if dur <= 0 {
		panic(fmt.Sprintf("synth: non-positive duration %v", dur))
	}
	rate := float64(s.rate)
	frames := int((dur + s.sustain) * rate)
	wave := make([]float64, frames)
	if frames == 0 {
		return Buffer{SampleRate: s.rate}
	}

	// Phase vector 2πf·i/rate for i in [0, frames).
	if frames > 1 {
		floats.Span(wave, 0, 2*math.Pi*freq*float64(frames-1)/rate)
	}
	for i, phase := range wave {
		wave[i] = math.Sin(phase)
	}

	floats.Mul(wave, envelope(frames, int(attackFraction*dur*rate), int(dur*rate), rate))
	floats.Scale(math.Min(math.Max(vol, 0), 1)*fullScale, wave)

	out := make([]int16, frames*Channels)
	for i, v := range wave {
		sample := int16(v)
		out[i*Channels] = sample
		out[i*Channels+1] = sample
	}
	return Buffer{SampleRate: s.rate, Samples: out}
}

// envelope ramps 0→1 over the attack frames (both endpoints included),
// holds 1 until the plateau end and then decays as e^(-2t), with t measured
// in seconds from the start of the tail.
func envelope(frames, attack, plateauEnd int, rate float64) []float64 {
	env := make([]float64, frames)
	for i := range env {
		env[i] = 1
	}
	attack = min(attack, frames)
	switch {
	case attack > 1:
		floats.Span(env[:attack], 0, 1)
	case attack == 1:
		env[0] = 0
	}
	plateauEnd = min(max(plateauEnd, attack), frames)
	for i := plateauEnd; i < frames; i++ {
		t := float64(i-plateauEnd) / rate
		env[i] = math.Exp(-decayRate * t)
	}
	return env
}
