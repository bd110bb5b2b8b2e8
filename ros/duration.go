package ros

import (
	"context"
	"time"
)

// Duration is a non-negative span of ROS time.
type Duration struct {
	temporal
}

func NewDuration(sec uint32, nsec uint32) Duration {
	sec, nsec = normalizeTemporal(int64(sec), int64(nsec))
	return Duration{temporal{sec, nsec}}
}

// FromDuration converts a Go duration, clamping negative values to zero.
func FromDuration(d time.Duration) Duration {
	var rd Duration
	if d > 0 {
		rd.FromNSec(uint64(d))
	}
	return rd
}

func (d Duration) GoDuration() time.Duration {
	return time.Duration(d.ToNSec())
}

func (d *Duration) Add(other Duration) Duration {
	sec, nsec := normalizeTemporal(int64(d.Sec)+int64(other.Sec),
		int64(d.NSec)+int64(other.NSec))
	return Duration{temporal{sec, nsec}}
}

// Sub returns d - other. other must not be longer than d.
func (d *Duration) Sub(other Duration) Duration {
	sec, nsec := normalizeTemporal(int64(d.Sec)-int64(other.Sec),
		int64(d.NSec)-int64(other.NSec))
	return Duration{temporal{sec, nsec}}
}

func (d *Duration) Cmp(other Duration) int {
	return cmpUint64(d.ToNSec(), other.ToNSec())
}

func (d *Duration) Sleep() {
	if !d.IsZero() {
		time.Sleep(d.GoDuration())
	}
}

// SleepContext sleeps for d or until ctx is done, returning ctx.Err() in the latter case.
func (d *Duration) SleepContext(ctx context.Context) error {
	if d.IsZero() {
		return ctx.Err()
	}
	timer := time.NewTimer(d.GoDuration())
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
