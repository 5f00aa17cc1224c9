package synth

import (
	"encoding/binary"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Buffer is interleaved 16-bit stereo PCM.
type Buffer struct {
	SampleRate int
	Samples    []int16
}

// Frames returns the number of stereo frames.
func (b Buffer) Frames() int { return len(b.Samples) / Channels }

// Duration returns the playing time of the buffer.
func (b Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// Bytes encodes the samples little-endian, the layout audio devices expect.
func (b Buffer) Bytes() []byte {
	out := make([]byte, len(b.Samples)*2)
	for i, s := range b.Samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

// Channel returns a copy of one channel's samples.
func (b Buffer) Channel(ch int) []int16 {
	out := make([]int16, b.Frames())
	for i := range out {
		out[i] = b.Samples[i*Channels+ch]
	}
	return out
}

// Peak returns the largest absolute sample value.
func (b Buffer) Peak() int {
	if len(b.Samples) == 0 {
		return 0
	}
	abs := make([]float64, len(b.Samples))
	for i, s := range b.Samples {
		abs[i] = math.Abs(float64(s))
	}
	return int(floats.Max(abs))
}
