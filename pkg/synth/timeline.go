package synth

import (
	"math"
	"time"
)

// Timeline mixes rendered buffers at frame offsets into one track.
// Overlapping samples are summed and saturate at the int16 limits.
type Timeline struct {
	rate  int
	mix   []int32
	notes int
}

// NewTimeline returns an empty timeline at the given sample rate.
func NewTimeline(sampleRate int) *Timeline {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Timeline{rate: sampleRate}
}

// Frame converts a time offset to a frame index.
func (t *Timeline) Frame(at time.Duration) int {
	return int(at.Seconds() * float64(t.rate))
}

// Add mixes b in starting at frame. Buffers with a different sample rate are
// mixed sample-for-sample.
func (t *Timeline) Add(frame int, b Buffer) {
	if frame < 0 {
		frame = 0
	}
	start := frame * Channels
	if end := start + len(b.Samples); end > len(t.mix) {
		t.mix = append(t.mix, make([]int32, end-len(t.mix))...)
	}
	for i, s := range b.Samples {
		t.mix[start+i] += int32(s)
	}
	t.notes++
}

// Notes returns how many buffers were added.
func (t *Timeline) Notes() int { return t.notes }

// Frames returns the current track length in frames.
func (t *Timeline) Frames() int { return len(t.mix) / Channels }

// Buffer renders the mixed track.
func (t *Timeline) Buffer() Buffer {
	out := make([]int16, len(t.mix))
	for i, v := range t.mix {
		out[i] = saturate(v)
	}
	return Buffer{SampleRate: t.rate, Samples: out}
}

// Clipped returns how many samples exceed the int16 range before saturation.
func (t *Timeline) Clipped() int {
	n := 0
	for _, v := range t.mix {
		if v > math.MaxInt16 || v < math.MinInt16 {
			n++
		}
	}
	return n
}

func saturate(v int32) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	default:
		return int16(v)
	}
}
