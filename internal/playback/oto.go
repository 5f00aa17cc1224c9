//go:build oto && !ebiten

package playback

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"

	"lifetones/pkg/synth"
)

// Backend names the compiled-in audio backend.
const Backend = "oto"

// oto allows a single context per process.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
)

func otoContext(sampleRate int) (*oto.Context, error) {
	otoOnce.Do(func() {
		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: synth.Channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if otoErr != nil {
			return
		}
		<-ready
	})
	return otoCtx, otoErr
}

type otoPlayer struct {
	ctx  *oto.Context
	rate int
	voices
}

// New opens the default audio device through oto.
func New(sampleRate int) (Player, error) {
	ctx, err := otoContext(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("playback: oto context: %w", err)
	}
	return &otoPlayer{ctx: ctx, rate: sampleRate}, nil
}

// Play starts b on a fresh device player and returns immediately.
func (p *otoPlayer) Play(b synth.Buffer) error {
	if b.SampleRate != p.rate {
		return fmt.Errorf("playback: buffer rate %d, device rate %d", b.SampleRate, p.rate)
	}
	pl := p.ctx.NewPlayer(bytes.NewReader(b.Bytes()))
	if err := p.add(pl); err != nil {
		return err
	}
	pl.Play()
	return nil
}

func (p *otoPlayer) Active() int { return p.active() }

func (p *otoPlayer) Stop() { _ = p.stop() }

func (p *otoPlayer) Close() error { return p.close() }
