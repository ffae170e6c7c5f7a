package instant

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/stardate/internal/wide"
)

// ErrNotThisFormat means the text does not use the converter's syntax.
// Dispatch moves on to the next converter.
var ErrNotThisFormat = errors.New("date format unrecognised")

// DomainError is syntactically valid input with an invalid field value.
type DomainError struct {
	Reason string
	Input  string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Input)
}

// RangeError is input whose arithmetic exceeds the representable range.
type RangeError struct {
	Input string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("date is out of acceptable range: %s", e.Input)
}

// Unwrap lets errors.Is match wide.ErrOverflow.
func (e *RangeError) Unwrap() error {
	return wide.ErrOverflow
}

// Domain builds a DomainError.
func Domain(reason, input string) error {
	return &DomainError{Reason: reason, Input: input}
}

// Finish converts a checked seconds chain into a Time, reporting a
// RangeError for input if any step overflowed.
func Finish(sec wide.Checked, frac uint32, input string) (Time, error) {
	v, err := sec.Result()
	if err != nil {
		return Time{}, &RangeError{Input: input}
	}
	return Time{Sec: v, Frac: frac}, nil
}
