// Package stardate converts stardates to and from canonical instants.
//
// Three notations share the [issue]integer.fraction form:
//
//	[-n]...            before 2162-01-04, 0.2 days per unit, 2000 days per issue
//	[0]0000..[20]5005  0.2 d/unit up to [19]7340, 10 d/unit to [19]7840, then 2 d/unit
//	[21]00000 onwards  TNG style, 100000 units per issue of 146097/4 days
package stardate

import (
	"fmt"

	"github.com/verte-zerg/stardate/internal/instant"
	"github.com/verte-zerg/stardate/internal/wide"
)

const (
	// MaxDigits is the number of fractional digits computed internally.
	MaxDigits = 6
	// DefaultDigits is the number of fractional digits rendered by default.
	DefaultDigits = 2

	fracScale = 1000000

	issueSecs = 2000 * 86400
	unitSecs  = 86400 / 5

	filmStart       = 7340 // [19]7340: rate drops to 10 days/unit
	filmLate        = 7840 // [19]7840: rate becomes 2 days/unit
	filmLateScaled  = 32340
	earlyFilmSecs   = 10 * 86400
	lateFilmSecs    = 2 * 86400
	earlyFilmLength = (filmLate - filmStart) * earlyFilmSecs

	firstTNGIssue = 21
	tngIssueSecs  = 86400 / 4 * 146097
	// One TNG unit is tngIssueSecs/100000 s = 27*146097/125 s; with six
	// fractional digits the divisor becomes 125000000.
	tngUnitNum = 27 * 146097
	tngUnitDen = 125000000
)

// Parse reads a stardate such as [-3]1234.56, [19]7340.0 or [47]01234.567890.
// Fractional digits beyond the sixth are ignored.
func Parse(text string) (instant.Time, error) {
	if text == "" || text[0] != '[' {
		return instant.Time{}, instant.ErrNotThisFormat
	}
	rest := text[1:]
	neg := rest != "" && rest[0] == '-'
	if neg {
		rest = rest[1:]
	}
	if rest == "" || !isDigit(rest[0]) {
		return instant.Time{}, instant.ErrNotThisFormat
	}
	issue, rest, issueOverflow := wide.Parse(rest, 10)
	if len(rest) < 2 || rest[0] != ']' || !isDigit(rest[1]) {
		return instant.Time{}, instant.ErrNotThisFormat
	}
	integer, rest, intOverflow := wide.ParseUint32(rest[1:], 10)
	if intOverflow || integer > 99999 ||
		(!neg && issue == 20 && integer > 5005) ||
		((neg || issue < 20) && integer > 9999) {
		return instant.Time{}, instant.Domain("integer part is out of range", text)
	}

	var frac uint32
	if rest != "" {
		if rest[0] != '.' {
			return instant.Time{}, instant.ErrNotThisFormat
		}
		digits := rest[1:]
		n := 0
		for n < len(digits) && isDigit(digits[n]) {
			n++
		}
		if n != len(digits) {
			return instant.Time{}, instant.ErrNotThisFormat
		}
		buf := []byte("000000")
		copy(buf, digits)
		frac, _, _ = wide.ParseUint32(string(buf), 10)
	}

	if neg || issue <= 20 {
		return parseClassic(text, neg, issue, integer, frac, issueOverflow)
	}
	return parseTNG(text, issue, integer, frac, issueOverflow)
}

func parseClassic(text string, neg bool, issue wide.Uint, integer, frac uint32, issueOverflow bool) (instant.Time, error) {
	var secs wide.Checked
	if !neg {
		if issue == 20 {
			issue = 19
			integer += 10000
			integer, frac = toBaseRate(integer, frac)
		} else if issue == 19 && integer >= filmStart {
			integer, frac = toBaseRate(integer, frac)
		}
		secs = wide.Check(instant.StardateEpoch).AddChecked(wide.Check(issue).Mul(issueSecs))
	} else {
		// Aim one issue late so the subtraction cannot underflow early.
		secs = wide.Check(instant.StardateEpoch).SubChecked(wide.Check(issue).Dec().Mul(issueSecs))
	}
	secs = secs.Add(wide.Uint(unitSecs) * wide.Uint(integer)).WithOverflow(issueOverflow)

	// frac/1000000 of a unit is frac*17280/1000000 s = frac*54/3125 s,
	// computed in 32.32 fixed point and rounded up.
	f := ((wide.Uint(frac)<<32)*54 + 3124) / 3125
	secs = secs.Add(wide.Uint(f.High()))
	if neg {
		secs = secs.Sub(issueSecs)
	}
	return instant.Finish(secs, f.Low(), text)
}

// toBaseRate rescales a film-era stardate ([19]7340 to [19]15005, issue 20
// already folded into 19) onto the 0.2 days/unit scale.
func toBaseRate(integer, frac uint32) (uint32, uint32) {
	// 10 days/unit is 50 base units; [19]7840 becomes 32340.
	integer = filmStart + (integer-filmStart)*50 + frac/(fracScale/50)
	frac = frac * 50 % fracScale
	if integer >= filmLateScaled {
		// 2 days/unit is 10 base units, i.e. 50/5.
		frac = frac/5 + integer%5*(fracScale/5)
		integer = filmLateScaled + (integer-filmLateScaled)/5
	}
	return integer, frac
}

func parseTNG(text string, issue wide.Uint, integer, frac uint32, issueOverflow bool) (instant.Time, error) {
	secs := wide.Check(instant.TNGEpoch).
		AddChecked(wide.Check(issue).Sub(firstTNGIssue).Mul(tngIssueSecs)).
		WithOverflow(issueOverflow)
	t := (wide.Uint(integer)*fracScale + wide.Uint(frac)) * tngUnitNum
	secs = secs.Add(t.Div(tngUnitDen))
	f := (wide.Uint(t.Mod(tngUnitDen))<<32 + tngUnitDen - 1) / tngUnitDen
	return instant.Finish(secs, f.Low(), text)
}

// Format renders t as a stardate with digits (0..6) fractional digits.
// Extra digits are truncated, not rounded.
func Format(t instant.Time, digits int) string {
	digits = clampDigits(digits)
	if instant.TNGEpoch <= t.Sec {
		return formatTNG(t, digits)
	}

	sign := ""
	var issue, integer uint64
	// unitFrac is the position within a 10-day span, in 2^-32 s.
	var unitFrac wide.Uint
	if t.Sec < instant.StardateEpoch {
		sign = "-"
		diff := uint64(instant.StardateEpoch - t.Sec - 1)
		nsecs := issueSecs - 1 - diff%issueSecs
		issue = 1 + diff/issueSecs
		integer = nsecs / unitSecs
		unitFrac = wide.Make(uint32(nsecs%unitSecs), t.Frac) * 50
	} else {
		diff := uint64(t.Sec - instant.StardateEpoch)
		nsecs := diff % issueSecs
		issue = diff / issueSecs
		if issue < 19 || (issue == 19 && nsecs < filmStart*unitSecs) {
			integer = nsecs / unitSecs
			unitFrac = wide.Make(uint32(nsecs%unitSecs), t.Frac) * 50
		} else {
			nsecs += (issue - 19) * issueSecs
			issue = 19
			nsecs -= filmStart * unitSecs
			if nsecs >= earlyFilmLength {
				nsecs -= earlyFilmLength
				integer = filmLate + nsecs/lateFilmSecs
				if integer >= 10000 {
					integer -= 10000
					issue++
				}
				unitFrac = wide.Make(uint32(nsecs%lateFilmSecs), t.Frac) * 5
			} else {
				integer = filmStart + nsecs/earlyFilmSecs
				unitFrac = wide.Make(uint32(nsecs%earlyFilmSecs), t.Frac)
			}
		}
	}

	s := fmt.Sprintf("[%s%d]%04d", sign, issue, integer)
	// unitFrac/(864000*2^32) as six decimal digits: x 125 / 108 / 2^32.
	return s + fraction(uint64((unitFrac*125/108).High()), digits)
}

func formatTNG(t instant.Time, digits int) string {
	diff := t.Sec - instant.TNGEpoch
	issue := diff.Div(tngIssueSecs) + firstTNGIssue
	nsecs := uint64(diff.Mod(tngIssueSecs))
	h := nsecs*tngUnitDen + (uint64(t.Frac)*tngUnitDen)>>32
	h /= tngUnitNum
	s := fmt.Sprintf("[%s]%05d", wide.Format(issue, 10, 1), h/fracScale)
	return s + fraction(h%fracScale, digits)
}

func fraction(millionths uint64, digits int) string {
	if digits == 0 {
		return ""
	}
	return "." + fmt.Sprintf("%06d", millionths)[:digits]
}

func clampDigits(digits int) int {
	switch {
	case digits < 0:
		return 0
	case digits > MaxDigits:
		return MaxDigits
	default:
		return digits
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
