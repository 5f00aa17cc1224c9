package core

import "time"

// FixedStep paces updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep targeting tps. The first call to
// ShouldStep always fires.
func NewFixedStep(tps int) *FixedStep {
	return newFixedStep(tps, time.Now)
}

func newFixedStep(tps int, now func() time.Time) *FixedStep {
	fs := &FixedStep{now: now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. Non-positive values fall back to 60.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Interval returns the duration of one tick.
func (f *FixedStep) Interval() time.Duration { return f.step }

// ShouldStep reports whether the caller should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Wait blocks until the next tick is due.
func (f *FixedStep) Wait() {
	for !f.ShouldStep() {
		time.Sleep(f.step - f.accumulator)
	}
}
