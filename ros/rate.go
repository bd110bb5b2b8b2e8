package ros

import (
	"context"
)

// Rate sleeps to keep a loop running at a fixed frequency.
type Rate struct {
	actualCycleTime   Duration
	expectedCycleTime Duration
	start             Time
}

func NewRate(frequency float64) Rate {
	var expectedCycleTime Duration
	expectedCycleTime.FromSec(1.0 / frequency)
	return Rate{expectedCycleTime: expectedCycleTime, start: Now()}
}

func CycleTime(d Duration) Rate {
	return Rate{expectedCycleTime: d, start: Now()}
}

func (r *Rate) CycleTime() Duration {
	return r.actualCycleTime
}

func (r *Rate) ExpectedCycleTime() Duration {
	return r.expectedCycleTime
}

func (r *Rate) Reset() {
	r.actualCycleTime = Duration{}
	r.start = Now()
}

// remaining returns the time left in the current cycle.
func (r *Rate) remaining() Duration {
	now := Now()
	if now.Cmp(r.start) < 0 {
		// Clock went backwards.
		r.start = now
	}
	elapsed := now.Diff(r.start)
	if r.expectedCycleTime.Cmp(elapsed) <= 0 {
		return Duration{}
	}
	return r.expectedCycleTime.Sub(elapsed)
}

func (r *Rate) advance() {
	now := Now()
	if now.Cmp(r.start) >= 0 {
		r.actualCycleTime = now.Diff(r.start)
	}
	next := r.start.Add(r.expectedCycleTime)
	if now.Cmp(next) > 0 {
		// Overran the cycle; don't try to catch up.
		next = now
	}
	r.start = next
}

func (r *Rate) Sleep() {
	remaining := r.remaining()
	remaining.Sleep()
	r.advance()
}

// SleepContext is Sleep, returning early with ctx.Err() when ctx is done.
func (r *Rate) SleepContext(ctx context.Context) error {
	remaining := r.remaining()
	if err := remaining.SleepContext(ctx); err != nil {
		return err
	}
	r.advance()
	return nil
}
