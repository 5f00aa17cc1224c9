package playback

import (
	"sync"

	"lifetones/pkg/synth"
)

// Recorder keeps a copy of every buffer offered to Play and forwards it to
// the wrapped player. Buffers are kept even when the wrapped player refuses
// them, so an offline mix matches what was rendered.
type Recorder struct {
	Player

	mu     sync.Mutex
	played []synth.Buffer
}

// NewRecorder wraps next. A nil next records without playing.
func NewRecorder(next Player) *Recorder {
	if next == nil {
		next = NewDiscard()
	}
	return &Recorder{Player: next}
}

// Play records b and hands it to the wrapped player.
func (r *Recorder) Play(b synth.Buffer) error {
	r.mu.Lock()
	r.played = append(r.played, b)
	r.mu.Unlock()
	return r.Player.Play(b)
}

// Played returns the buffers recorded since the last Reset.
func (r *Recorder) Played() []synth.Buffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]synth.Buffer(nil), r.played...)
}

// Reset forgets recorded buffers.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.played = nil
	r.mu.Unlock()
}
