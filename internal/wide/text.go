package wide

import (
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Parse reads the longest prefix of s made of digits valid in radix (2..16)
// and returns the value, the unconsumed rest of s, and whether the value
// overflowed. On overflow the wrapped value is still returned.
func Parse(s string, radix int) (Uint, string, bool) {
	v, rest, ov := accumulate[uint64](s, radix)
	return Uint(v), rest, ov
}

// ParseUint32 is Parse for 32-bit fields.
func ParseUint32(s string, radix int) (uint32, string, bool) {
	return accumulate[uint32](s, radix)
}

func accumulate[T constraints.Unsigned](s string, radix int) (T, string, bool) {
	var n T
	overflow := false
	limit := ^T(0)
	i := 0
	for ; i < len(s); i++ {
		d, ok := digitValue(s[i])
		if !ok || d >= radix {
			break
		}
		if n > (limit-T(d))/T(radix) {
			overflow = true
		}
		n = n*T(radix) + T(d)
	}
	return n, s[i:], overflow
}

func digitValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

// Format renders v in radix with lower-case digits, left-padded with zeros
// to at least minDigits.
func Format(v Uint, radix, minDigits int) string {
	s := strconv.FormatUint(uint64(v), radix)
	if len(s) < minDigits {
		s = strings.Repeat("0", minDigits-len(s)) + s
	}
	return s
}
