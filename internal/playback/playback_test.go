package playback

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifetones/pkg/synth"
)

type fakeVoice struct {
	playing bool
	closed  bool
}

func (f *fakeVoice) IsPlaying() bool { return f.playing && !f.closed }
func (f *fakeVoice) Close() error {
	f.closed = true
	return nil
}

func TestVoicesPruneFinished(t *testing.T) {
	var v voices
	a := &fakeVoice{playing: true}
	b := &fakeVoice{playing: true}
	require.NoError(t, v.add(a))
	require.NoError(t, v.add(b))
	assert.Equal(t, 2, v.active())

	a.playing = false
	assert.Equal(t, 1, v.active())
	assert.True(t, a.closed, "finished voices are released")
	assert.False(t, b.closed)

	require.NoError(t, v.stop())
	assert.True(t, b.closed)
	assert.Zero(t, v.active())
}

func TestVoicesRejectAfterClose(t *testing.T) {
	var v voices
	require.NoError(t, v.close())
	late := &fakeVoice{playing: true}
	assert.ErrorIs(t, v.add(late), ErrClosed)
	assert.True(t, late.closed)
}

func TestDiscardRecords(t *testing.T) {
	d := NewDiscard()
	b := synth.Buffer{SampleRate: 22050, Samples: []int16{1, 1}}
	require.NoError(t, d.Play(b))
	require.NoError(t, d.Play(b))
	assert.Len(t, d.Played(), 2)
	assert.Zero(t, d.Active())

	d.Reset()
	assert.Empty(t, d.Played())

	require.NoError(t, d.Close())
	assert.ErrorIs(t, d.Play(b), ErrClosed)
}

// devicePlayer stands in for a real backend: it plays nothing back to the
// caller and can be made to fail.
type devicePlayer struct {
	plays int
	err   error
}

func (d *devicePlayer) Play(synth.Buffer) error {
	d.plays++
	return d.err
}
func (d *devicePlayer) Active() int  { return d.plays }
func (d *devicePlayer) Stop()        {}
func (d *devicePlayer) Close() error { return nil }

func TestRecorderKeepsBuffersForDevicePlayers(t *testing.T) {
	dev := &devicePlayer{}
	rec := NewRecorder(dev)
	b := synth.Buffer{SampleRate: 22050, Samples: []int16{3, 3, 4, 4}}

	require.NoError(t, rec.Play(b))
	assert.Equal(t, 1, dev.plays)
	assert.Equal(t, 1, rec.Active(), "Active comes from the wrapped player")
	require.Len(t, rec.Played(), 1)
	assert.Equal(t, b.Samples, rec.Played()[0].Samples)

	dev.err = errors.New("device gone")
	assert.EqualError(t, rec.Play(b), "device gone")
	assert.Len(t, rec.Played(), 2, "refused buffers are still recorded")

	rec.Reset()
	assert.Empty(t, rec.Played())
	assert.Equal(t, 2, dev.plays)
}

func TestRecorderWithoutPlayer(t *testing.T) {
	rec := NewRecorder(nil)
	require.NoError(t, rec.Play(synth.Buffer{Samples: []int16{1, 1}}))
	assert.Len(t, rec.Played(), 1)
	assert.Zero(t, rec.Active())
	require.NoError(t, rec.Close())
}

func TestNewHeadlessIsDiscard(t *testing.T) {
	if Backend != "discard" {
		t.Skipf("backend %s needs a device", Backend)
	}
	p, err := New(synth.DefaultSampleRate)
	require.NoError(t, err)
	_, ok := p.(*Discard)
	assert.True(t, ok)
}
