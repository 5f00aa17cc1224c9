package main

import (
	"testing"
	"time"

	"lifetones/internal/app"
	"lifetones/internal/log"
	"lifetones/pkg/synth"
)

// devicePlayer accepts buffers without keeping them, like a sound card.
type devicePlayer struct{ plays int }

func (d *devicePlayer) Play(synth.Buffer) error {
	d.plays++
	return nil
}
func (d *devicePlayer) Active() int  { return 0 }
func (d *devicePlayer) Stop()        {}
func (d *devicePlayer) Close() error { return nil }

func TestWAVCapturesLivePlayback(t *testing.T) {
	dev := &devicePlayer{}
	player, rec := withRecorder(dev, "out.wav")
	if rec == nil {
		t.Fatal("a WAV path should install a recorder")
	}

	cfg := app.NewConfig()
	cfg.Width, cfg.Height = 10, 10
	cfg.Pattern = "blinker"
	session, err := app.NewSession(cfg, player, log.Discard())
	if err != nil {
		t.Fatal(err)
	}

	tl := synth.NewTimeline(cfg.SampleRate)
	session.Tick()
	mixInto(tl, rec, 0)
	if dev.plays != 3 {
		t.Fatalf("device played %d buffers, want 3", dev.plays)
	}
	if tl.Notes() != 3 || tl.Frames() == 0 {
		t.Fatalf("timeline has %d notes over %d frames", tl.Notes(), tl.Frames())
	}
	if len(rec.Played()) != 0 {
		t.Fatal("mixInto should drain the recorder")
	}

	session.Tick()
	mixInto(tl, rec, tl.Frame(time.Second))
	if tl.Notes() != 4 {
		t.Fatalf("notes after second tick = %d, want 4", tl.Notes())
	}
}

func TestNoWAVLeavesPlayerAlone(t *testing.T) {
	dev := &devicePlayer{}
	player, rec := withRecorder(dev, "")
	if rec != nil || player != dev {
		t.Fatal("without a WAV path the player is used as is")
	}
}
