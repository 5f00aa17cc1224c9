//go:build ebiten

package playback

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"lifetones/pkg/synth"
)

// Backend names the compiled-in audio backend.
const Backend = "ebiten"

type ebitenPlayer struct {
	ctx *audio.Context
	voices
}

// New plays through ebiten's audio context, reusing the one the game already
// created when the sample rates match.
func New(sampleRate int) (Player, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	if ctx.SampleRate() != sampleRate {
		return nil, fmt.Errorf("playback: audio context runs at %d Hz, want %d", ctx.SampleRate(), sampleRate)
	}
	return &ebitenPlayer{ctx: ctx}, nil
}

// Play starts b on a fresh device player and returns immediately.
func (p *ebitenPlayer) Play(b synth.Buffer) error {
	if b.SampleRate != p.ctx.SampleRate() {
		return fmt.Errorf("playback: buffer rate %d, device rate %d", b.SampleRate, p.ctx.SampleRate())
	}
	pl := p.ctx.NewPlayerFromBytes(b.Bytes())
	if err := p.add(pl); err != nil {
		return err
	}
	pl.Play()
	return nil
}

func (p *ebitenPlayer) Active() int { return p.active() }

func (p *ebitenPlayer) Stop() { _ = p.stop() }

func (p *ebitenPlayer) Close() error { return p.close() }
