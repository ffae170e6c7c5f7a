// Package format ties the converters into the fixed set of date formats and
// dispatches input text to the first one that recognises it.
package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/stardate/internal/calendar"
	"github.com/verte-zerg/stardate/internal/instant"
	"github.com/verte-zerg/stardate/internal/stardate"
	"github.com/verte-zerg/stardate/internal/unixtime"
)

// Kind is one of the supported date formats.
type Kind int

// Kinds in table order. Output lines follow this order.
const (
	Stardate Kind = iota
	Julian
	Gregorian
	Quadcent
	Unix
	UnixHex
)

// All lists every kind in table order.
var All = []Kind{Stardate, Julian, Gregorian, Quadcent, Unix, UnixHex}

var kindInfo = [...]struct {
	selector byte
	name     string
}{
	Stardate:  {'s', "stardate"},
	Julian:    {'j', "julian"},
	Gregorian: {'g', "gregorian"},
	Quadcent:  {'q', "quadcent"},
	Unix:      {'u', "unix"},
	UnixHex:   {'x', "unix-hex"},
}

// Options controls rendering.
type Options struct {
	// Digits is the number of stardate fractional digits, 0..6.
	Digits int
}

// DefaultOptions returns the rendering defaults.
func DefaultOptions() Options {
	return Options{Digits: stardate.DefaultDigits}
}

// Selector returns the single-letter selector for k.
func (k Kind) Selector() byte {
	return kindInfo[k].selector
}

// Name returns the long name for k.
func (k Kind) Name() string {
	return kindInfo[k].name
}

func (k Kind) String() string {
	return k.Name()
}

// CanParse reports whether k accepts input. Hex Unix time is output only;
// hex input goes through Unix with a 0x prefix.
func (k Kind) CanParse() bool {
	return k != UnixHex
}

// Parse converts text written in k.
func (k Kind) Parse(text string) (instant.Time, error) {
	switch k {
	case Stardate:
		return stardate.Parse(text)
	case Julian:
		return calendar.ParseJulian(text)
	case Gregorian:
		return calendar.ParseGregorian(text)
	case Quadcent:
		return calendar.ParseQuadcent(text)
	case Unix:
		return unixtime.Parse(text)
	default:
		return instant.Time{}, instant.ErrNotThisFormat
	}
}

// Format renders t in k.
func (k Kind) Format(t instant.Time, opts Options) string {
	switch k {
	case Stardate:
		return stardate.Format(t, opts.Digits)
	case Julian:
		return calendar.FormatJulian(t)
	case Gregorian:
		return calendar.FormatGregorian(t)
	case Quadcent:
		return calendar.FormatQuadcent(t)
	case Unix:
		return unixtime.Format(t)
	case UnixHex:
		return unixtime.FormatHex(t)
	default:
		return ""
	}
}

// KindForSelector looks up a kind by its selector letter.
func KindForSelector(c byte) (Kind, bool) {
	for _, k := range All {
		if k.Selector() == c {
			return k, true
		}
	}
	return 0, false
}

// ParseSelectors turns a string of selector letters such as "sg" into kinds
// in table order, without duplicates.
func ParseSelectors(s string) ([]Kind, error) {
	seen := make(map[Kind]bool, len(All))
	for i := 0; i < len(s); i++ {
		k, ok := KindForSelector(s[i])
		if !ok {
			return nil, fmt.Errorf("unknown format selector %q", s[i])
		}
		seen[k] = true
	}
	kinds := make([]Kind, 0, len(seen))
	for _, k := range All {
		if seen[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}

// Selectors is the inverse of ParseSelectors.
func Selectors(kinds []Kind) string {
	var b strings.Builder
	for _, k := range kinds {
		b.WriteByte(k.Selector())
	}
	return b.String()
}

// Parse feeds text to each parsing kind in table order and returns the first
// result that is not ErrNotThisFormat, together with the kind that produced it.
func Parse(text string) (instant.Time, Kind, error) {
	for _, k := range All {
		if !k.CanParse() {
			continue
		}
		t, err := k.Parse(text)
		if errors.Is(err, instant.ErrNotThisFormat) {
			continue
		}
		return t, k, err
	}
	return instant.Time{}, 0, fmt.Errorf("%w: %s", instant.ErrNotThisFormat, text)
}

// Line renders t in every kind, space separated, in the order given.
func Line(t instant.Time, kinds []Kind, opts Options) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.Format(t, opts)
	}
	return strings.Join(parts, " ")
}
