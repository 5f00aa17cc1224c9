package core

import (
	"testing"
	"time"
)

func TestFixedStepPacesTicks(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := newFixedStep(10, func() time.Time { return clock })

	if !fs.ShouldStep() {
		t.Fatalf("first call should step")
	}
	if fs.ShouldStep() {
		t.Fatalf("no time passed, should not step")
	}
	clock = clock.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatalf("half a tick should not step")
	}
	clock = clock.Add(60 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatalf("a full tick elapsed, expected step")
	}
	if got := fs.Interval(); got != 100*time.Millisecond {
		t.Fatalf("interval = %v, want 100ms", got)
	}

	fs.SetTPS(0)
	if got := fs.Interval(); got != time.Second/60 {
		t.Fatalf("fallback interval = %v", got)
	}
}

func TestParameterControlNudge(t *testing.T) {
	vol := ParameterControl{Key: "volume", Type: ParamTypeFloat, Step: 0.1, Min: 0, Max: 1, HasMin: true, HasMax: true}
	if got := vol.Nudge(0.95, 1); got != 1 {
		t.Fatalf("nudge above max = %v", got)
	}
	if got := vol.Nudge(0.05, -1); got != 0 {
		t.Fatalf("nudge below min = %v", got)
	}

	speed := ParameterControl{Key: "speed", Type: ParamTypeInt, Step: 0.2, Min: 1, Max: 20, HasMin: true, HasMax: true}
	if got := speed.Nudge(5, 1); got != 6 {
		t.Fatalf("int nudge = %v, want 6", got)
	}
	free := ParameterControl{Type: ParamTypeFloat, Step: 2}
	if got := free.Nudge(-10, -3); got != -16 {
		t.Fatalf("unbounded nudge = %v", got)
	}
}

func TestSnapshotFind(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "Audio", Params: []Parameter{FloatParam("volume", "Volume", 0.25), BoolParam("music", "Music", true)}},
		{Name: "Grid", Params: []Parameter{IntParam("generation", "Generation", 12)}},
	}}
	p, ok := snap.Find("generation")
	if !ok || p.Value != "12" || p.Type != ParamTypeInt {
		t.Fatalf("Find(generation) = %+v, %v", p, ok)
	}
	if p, _ := snap.Find("volume"); p.Value != "0.25" {
		t.Fatalf("volume formatted as %q", p.Value)
	}
	if p, _ := snap.Find("music"); p.Value != "on" {
		t.Fatalf("music formatted as %q", p.Value)
	}
	if _, ok := snap.Find("missing"); ok {
		t.Fatalf("missing key found")
	}
}
