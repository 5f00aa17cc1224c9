package synth

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSynth() *Synth {
	return New(Config{SampleRate: 1000, Sustain: 0.25})
}

func TestEnvelopeShape(t *testing.T) {
	t.Parallel()
	env := envelope(750, 50, 500, 1000)

	assert.Equal(t, 0.0, env[0])
	assert.InDelta(t, 1.0, env[49], 1e-12)
	assert.InDelta(t, 25.0/49.0, env[25], 1e-12)
	for i := 50; i <= 500; i++ {
		require.Equal(t, 1.0, env[i], "plateau frame %d", i)
	}
	assert.InDelta(t, math.Exp(-0.2), env[600], 1e-12)
	assert.InDelta(t, math.Exp(-2*0.249), env[749], 1e-12)
	for i := 501; i < 750; i++ {
		require.Less(t, env[i], env[i-1], "tail must decay at frame %d", i)
	}
}

func TestRenderLengthAndStereo(t *testing.T) {
	t.Parallel()
	s := testSynth()
	b := s.Render(440, 0.5, 0.5)

	require.Equal(t, 1000, b.SampleRate)
	require.Equal(t, 750, b.Frames())
	require.Len(t, b.Samples, 1500)
	assert.Equal(t, 750*time.Millisecond, b.Duration())
	assert.Equal(t, b.Channel(0), b.Channel(1))
	assert.Equal(t, int16(0), b.Samples[0])
	assert.LessOrEqual(t, b.Peak(), fullScale/2)

	want := math.Sin(2*math.Pi*440*100/1000) * 0.5 * fullScale
	assert.InDelta(t, want, float64(b.Samples[200]), 1)
}

func TestRenderClampsVolume(t *testing.T) {
	t.Parallel()
	s := testSynth()
	loud := s.Render(110, 0.5, 4)
	unit := s.Render(110, 0.5, 1)
	assert.Equal(t, unit.Samples, loud.Samples)
	assert.LessOrEqual(t, loud.Peak(), fullScale)

	silent := s.Render(110, 0.5, -1)
	assert.Equal(t, 0, silent.Peak())
}

func TestRenderPanicsOnNonPositiveDuration(t *testing.T) {
	t.Parallel()
	s := testSynth()
	assert.Panics(t, func() { s.Render(440, 0, 0.5) })
	assert.Panics(t, func() { s.Render(440, -1, 0.5) })
}

func TestSustainClamps(t *testing.T) {
	t.Parallel()
	s := New(DefaultConfig())
	assert.Equal(t, DefaultSustain, s.Sustain())
	assert.Equal(t, DefaultSampleRate, s.SampleRate())

	s.SetSustain(10)
	assert.Equal(t, MaxSustain, s.Sustain())
	s.SetSustain(-1)
	assert.Equal(t, 0.0, s.Sustain())

	// With no tail the buffer is exactly the note length.
	b := New(Config{SampleRate: 1000}).Render(220, 0.5, 0.3)
	assert.Equal(t, 500, b.Frames())
}

func TestBytesLittleEndian(t *testing.T) {
	t.Parallel()
	b := Buffer{SampleRate: 8000, Samples: []int16{1, -1, 0x0102, -32768}}
	got := b.Bytes()
	want := []byte{0x01, 0x00, 0xff, 0xff, 0x02, 0x01, 0x00, 0x80}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Bytes mismatch (-want +got):\n%s", diff)
	}
}

func TestWAVRoundTrip(t *testing.T) {
	t.Parallel()
	orig := testSynth().Render(330, 0.5, 0.25)

	var buf bytes.Buffer
	require.NoError(t, orig.WriteWAV(&buf))

	got, err := ReadWAV(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, orig.SampleRate, got.SampleRate)
	if diff := cmp.Diff(orig.Samples, got.Samples); diff != "" {
		t.Fatalf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestTimelineMixesAndSaturates(t *testing.T) {
	t.Parallel()
	tl := NewTimeline(1000)
	tl.Add(0, Buffer{SampleRate: 1000, Samples: []int16{1, -1, 30000, -30000}})
	tl.Add(1, Buffer{SampleRate: 1000, Samples: []int16{30000, -30000, 5, 5}})

	assert.Equal(t, 2, tl.Notes())
	assert.Equal(t, 3, tl.Frames())
	assert.Equal(t, 2, tl.Clipped())

	got := tl.Buffer().Samples
	want := []int16{1, -1, math.MaxInt16, math.MinInt16, 5, 5}
	assert.Equal(t, want, got)
	assert.Equal(t, 250, tl.Frame(250*time.Millisecond))
}

func TestTimelineNegativeFrameStartsAtZero(t *testing.T) {
	t.Parallel()
	tl := NewTimeline(0)
	tl.Add(-5, Buffer{Samples: []int16{7, 7}})
	assert.Equal(t, []int16{7, 7}, tl.Buffer().Samples)
	assert.Equal(t, DefaultSampleRate, tl.Buffer().SampleRate)
}
