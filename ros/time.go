package ros

import (
	gotime "time"
)

// Time is a point in ROS time, seconds and nanoseconds since the epoch.
type Time struct {
	temporal
}

func NewTime(sec uint32, nsec uint32) Time {
	sec, nsec = normalizeTemporal(int64(sec), int64(nsec))
	return Time{temporal{sec, nsec}}
}

// Now reads the wall clock. Simulated time from /clock is not supported.
func Now() Time {
	return FromTime(gotime.Now())
}

func FromTime(t gotime.Time) Time {
	var rt Time
	rt.FromNSec(uint64(t.UnixNano()))
	return rt
}

func (t Time) GoTime() gotime.Time {
	return gotime.Unix(int64(t.Sec), int64(t.NSec))
}

// Diff returns t - from. from must not be later than t.
func (t *Time) Diff(from Time) Duration {
	sec, nsec := normalizeTemporal(int64(t.Sec)-int64(from.Sec),
		int64(t.NSec)-int64(from.NSec))
	return Duration{temporal{sec, nsec}}
}

func (t *Time) Add(d Duration) Time {
	sec, nsec := normalizeTemporal(int64(t.Sec)+int64(d.Sec),
		int64(t.NSec)+int64(d.NSec))
	return Time{temporal{sec, nsec}}
}

func (t *Time) Sub(d Duration) Time {
	sec, nsec := normalizeTemporal(int64(t.Sec)-int64(d.Sec),
		int64(t.NSec)-int64(d.NSec))
	return Time{temporal{sec, nsec}}
}

func (t *Time) Cmp(other Time) int {
	return cmpUint64(t.ToNSec(), other.ToNSec())
}
