// Package playback sends rendered note buffers to an audio device.
//
// The backend is chosen at build time: ebiten's audio package under the
// ebiten tag, oto under the oto tag, and Discard otherwise.
package playback

import (
	"errors"
	"sync"

	"lifetones/pkg/synth"
)

// ErrClosed is returned by Play after Close.
var ErrClosed = errors.New("playback: player closed")

// Player plays buffers without blocking the caller.
type Player interface {
	Play(b synth.Buffer) error
	// Active returns how many buffers are still sounding.
	Active() int
	// Stop silences everything that is sounding.
	Stop()
	Close() error
}

// voice is the part of a device player the tracker needs. Both oto and
// ebiten audio players satisfy it.
type voice interface {
	IsPlaying() bool
	Close() error
}

// voices tracks device players so finished ones can be released.
type voices struct {
	mu     sync.Mutex
	live   []voice
	closed bool
}

func (v *voices) add(p voice) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		_ = p.Close()
		return ErrClosed
	}
	v.pruneLocked()
	v.live = append(v.live, p)
	return nil
}

func (v *voices) active() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pruneLocked()
	return len(v.live)
}

func (v *voices) pruneLocked() {
	kept := v.live[:0]
	for _, p := range v.live {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		_ = p.Close()
	}
	clear(v.live[len(kept):])
	v.live = kept
}

func (v *voices) stop() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	var errs []error
	for _, p := range v.live {
		errs = append(errs, p.Close())
	}
	v.live = nil
	return errors.Join(errs...)
}

func (v *voices) close() error {
	err := v.stop()
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
	return err
}

// Discard records buffers instead of playing them. It backs headless builds
// and tests.
type Discard struct {
	mu     sync.Mutex
	played []synth.Buffer
	closed bool
}

// NewDiscard returns an empty Discard player.
func NewDiscard() *Discard { return &Discard{} }

// Play stores b. It fails with ErrClosed after Close.
func (d *Discard) Play(b synth.Buffer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.played = append(d.played, b)
	return nil
}

// Active is always zero; nothing sounds.
func (d *Discard) Active() int { return 0 }

// Stop is a no-op.
func (d *Discard) Stop() {}

// Close makes further Play calls fail.
func (d *Discard) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return nil
}

// Played returns every buffer received so far.
func (d *Discard) Played() []synth.Buffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]synth.Buffer(nil), d.played...)
}

// Reset forgets recorded buffers.
func (d *Discard) Reset() {
	d.mu.Lock()
	d.played = nil
	d.mu.Unlock()
}
