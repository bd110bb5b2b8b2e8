package ros

import (
	"fmt"
	"math"
)

const secondInNanosecond int64 = 1000000000

// temporal is the {sec, nsec} pair shared by Time and Duration. NSec is
// always below one second.
type temporal struct {
	Sec  uint32
	NSec uint32
}

// normalizeTemporal carries nanoseconds into seconds. Results outside the
// uint32 second range panic, as they do in roscpp.
func normalizeTemporal(sec int64, nsec int64) (uint32, uint32) {
	sec += nsec / secondInNanosecond
	nsec %= secondInNanosecond
	if nsec < 0 {
		sec--
		nsec += secondInNanosecond
	}
	if sec < 0 || sec > math.MaxUint32 {
		panic(fmt.Sprintf("temporal value out of range: %d sec", sec))
	}
	return uint32(sec), uint32(nsec)
}

func (t *temporal) IsZero() bool {
	return t.Sec == 0 && t.NSec == 0
}

func (t *temporal) ToSec() float64 {
	return float64(t.Sec) + float64(t.NSec)*1e-9
}

func (t *temporal) ToNSec() uint64 {
	return uint64(t.Sec)*uint64(secondInNanosecond) + uint64(t.NSec)
}

func (t *temporal) FromSec(sec float64) {
	whole := math.Floor(sec)
	t.Sec, t.NSec = normalizeTemporal(int64(whole), int64(math.Round((sec-whole)*1e9)))
}

func (t *temporal) FromNSec(nsec uint64) {
	t.Sec = uint32(nsec / uint64(secondInNanosecond))
	t.NSec = uint32(nsec % uint64(secondInNanosecond))
}

func cmpUint64(lhs, rhs uint64) int {
	switch {
	case lhs > rhs:
		return 1
	case lhs < rhs:
		return -1
	}
	return 0
}
