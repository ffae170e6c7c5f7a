// Package instant defines the canonical time value shared by every converter.
package instant

import (
	"fmt"
	"time"

	"github.com/verte-zerg/stardate/internal/wide"
)

// Epoch offsets, in seconds after 0001=01=01 (Julian), which is 0000-12-30
// in the proleptic Gregorian calendar.
const (
	// QuadcentEpoch is 0323*01*01, 117609 days after the epoch.
	QuadcentEpoch wide.Uint = 117609 * 86400
	// QuadcentSpan is the length of four Gregorian centuries, 146097 days.
	QuadcentSpan wide.Uint = 146097 * 86400
	// UnixEpoch is 1970-01-01, 719164 days after the epoch.
	UnixEpoch wide.Uint = 719164 * 86400
	// StardateEpoch is 2162-01-04, the origin of pre-TNG stardates.
	StardateEpoch wide.Uint = 789294 * 86400
	// TNGEpoch is 2323-01-01, stardate [21]00000.
	TNGEpoch wide.Uint = 848094 * 86400
)

// Time is an absolute instant: whole seconds since the epoch plus a binary
// fraction of a second in units of 2^-32.
type Time struct {
	Sec  wide.Uint
	Frac uint32
}

// Cmp orders two instants.
func (t Time) Cmp(o Time) int {
	if c := t.Sec.Cmp(o.Sec); c != 0 {
		return c
	}
	switch {
	case t.Frac < o.Frac:
		return -1
	case t.Frac > o.Frac:
		return 1
	default:
		return 0
	}
}

// Before reports whether t is strictly earlier than o.
func (t Time) Before(o Time) bool {
	return t.Cmp(o) < 0
}

// Equal reports whether t and o are the same instant.
func (t Time) Equal(o Time) bool {
	return t == o
}

// PrevTick returns the instant one fraction unit (2^-32 s) earlier.
func (t Time) PrevTick() Time {
	if t.Frac > 0 {
		return Time{Sec: t.Sec, Frac: t.Frac - 1}
	}
	sec, _ := t.Sec.Dec()
	return Time{Sec: sec, Frac: 0xffffffff}
}

func (t Time) String() string {
	return fmt.Sprintf("%s+%d/2^32", t.Sec, t.Frac)
}

// FromTime converts a host clock reading to a canonical instant. Sub-second
// nanoseconds are rounded up to the next fraction unit. Instants before the
// epoch are clamped to it.
func FromTime(tm time.Time) Time {
	unix := tm.Unix()
	nanos := uint64(tm.Nanosecond())
	var sec wide.Uint
	if unix >= 0 {
		sec = wide.Check(UnixEpoch).Add(wide.Uint(unix)).Value()
	} else {
		s, under := UnixEpoch.Sub(wide.Uint(-unix))
		if under {
			return Time{}
		}
		sec = s
	}
	frac := (nanos<<32 + 999999999) / 1000000000
	if frac > 0xffffffff {
		sec, _ = sec.Inc()
		frac = 0
	}
	return Time{Sec: sec, Frac: uint32(frac)}
}
