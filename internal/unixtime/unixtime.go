// Package unixtime converts Unix time (seconds since 1970-01-01T00:00Z).
package unixtime

import (
	"github.com/verte-zerg/stardate/internal/instant"
	"github.com/verte-zerg/stardate/internal/wide"
)

// Parse reads U[-][0x]<digits>; the marker letter is case-insensitive.
func Parse(text string) (instant.Time, error) {
	if text == "" || (text[0] != 'u' && text[0] != 'U') {
		return instant.Time{}, instant.ErrNotThisFormat
	}
	rest := text[1:]
	neg := rest != "" && rest[0] == '-'
	if neg {
		rest = rest[1:]
	}
	radix := 10
	if len(rest) >= 2 && rest[0] == '0' && (rest[1] == 'x' || rest[1] == 'X') {
		rest = rest[2:]
		radix = 16
	}
	if rest == "" || !isAlnum(rest[0]) {
		return instant.Time{}, instant.Domain("malformed Unix date", text)
	}
	mag, tail, overflow := wide.Parse(rest, radix)
	if tail != "" {
		return instant.Time{}, instant.Domain("malformed Unix date", text)
	}

	secs := wide.Check(instant.UnixEpoch).WithOverflow(overflow)
	if neg {
		secs = secs.Sub(mag)
	} else {
		secs = secs.Add(mag)
	}
	return instant.Finish(secs, 0, text)
}

// Format renders t as decimal Unix seconds, e.g. U1700000000 or U-86400.
func Format(t instant.Time) string {
	return format(t, 10, "")
}

// FormatHex renders t as hexadecimal Unix seconds, e.g. U0x6553f100.
func FormatHex(t instant.Time) string {
	return format(t, 16, "0x")
}

func format(t instant.Time, radix int, prefix string) string {
	sign := ""
	var mag wide.Uint
	if instant.UnixEpoch <= t.Sec {
		mag = t.Sec - instant.UnixEpoch
	} else {
		sign = "-"
		mag = instant.UnixEpoch - t.Sec
	}
	return "U" + sign + prefix + wide.Format(mag, radix, 1)
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
