// Package wide provides overflow-checked unsigned arithmetic for canonical seconds.
//
// Every primitive reports overflow or underflow next to its result instead of
// through shared state, so conversions can run concurrently.
package wide

import (
	"errors"
	"math/bits"
)

// ErrOverflow reports that an arithmetic result did not fit in a Uint.
var ErrOverflow = errors.New("value out of range")

// Uint is an unsigned 64-bit magnitude.
type Uint uint64

// Max is the largest representable Uint.
const Max = Uint(^uint64(0))

// Make builds a Uint from its high and low 32-bit halves.
func Make(high, low uint32) Uint {
	return Uint(uint64(high)<<32 | uint64(low))
}

// High returns the upper 32 bits.
func (u Uint) High() uint32 {
	return uint32(u >> 32)
}

// Low returns the lower 32 bits.
func (u Uint) Low() uint32 {
	return uint32(u)
}

// IsZero reports whether u is zero.
func (u Uint) IsZero() bool {
	return u == 0
}

// Add returns u+v and whether the sum wrapped.
func (u Uint) Add(v Uint) (Uint, bool) {
	sum, carry := bits.Add64(uint64(u), uint64(v), 0)
	return Uint(sum), carry != 0
}

// Sub returns u-v and whether the true result was negative.
func (u Uint) Sub(v Uint) (Uint, bool) {
	diff, borrow := bits.Sub64(uint64(u), uint64(v), 0)
	return Uint(diff), borrow != 0
}

// Mul returns u*m and whether the product wrapped.
func (u Uint) Mul(m uint32) (Uint, bool) {
	hi, lo := bits.Mul64(uint64(u), uint64(m))
	return Uint(lo), hi != 0
}

// Inc returns u+1 and whether it wrapped to zero.
func (u Uint) Inc() (Uint, bool) {
	return u.Add(1)
}

// Dec returns u-1 and whether u was zero.
func (u Uint) Dec() (Uint, bool) {
	return u.Sub(1)
}

// Div returns u/d. d must not be zero.
func (u Uint) Div(d uint32) Uint {
	return u / Uint(d)
}

// Mod returns u%d. d must not be zero.
func (u Uint) Mod(d uint32) uint32 {
	return uint32(uint64(u) % uint64(d))
}

// Cmp returns -1, 0 or +1 as u is less than, equal to or greater than v.
func (u Uint) Cmp(v Uint) int {
	switch {
	case u < v:
		return -1
	case u > v:
		return 1
	default:
		return 0
	}
}

// String renders u in decimal.
func (u Uint) String() string {
	return Format(u, 10, 1)
}
