// Package calendar converts proleptic Julian, proleptic Gregorian and
// quadcent calendar dates to and from canonical instants.
package calendar

import (
	"fmt"

	"github.com/verte-zerg/stardate/internal/instant"
	"github.com/verte-zerg/stardate/internal/wide"
)

// Date is a calendar date and UTC time of day, as read from text.
type Date struct {
	Year   wide.Uint
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

var (
	commonDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	leapDays   = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
)

type leapRule func(year int) bool

func julianLeap(year int) bool {
	return year%4 == 0
}

func gregorianLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func neverLeap(int) bool {
	return false
}

func monthDays(leap leapRule, cycle int) *[12]int {
	if leap(cycle) {
		return &leapDays
	}
	return &commonDays
}

type field struct {
	name   string
	digits string
	min    uint32
	max    uint32
	dst    *int
}

// readDate parses YEAR<sep>MONTH<sep>DAY optionally followed by
// T<hour>:<minute>[:<second>]. The returned flag reports that the year did
// not fit; that is a range problem, left for the caller to fold into its
// arithmetic.
func readDate(text string, sep byte) (Date, bool, error) {
	date, clock, err := splitDate(text, sep)
	if err != nil {
		return Date{}, false, err
	}

	var d Date
	year, _, yearOverflow := wide.Parse(date[0], 10)
	d.Year = year

	fields := []field{
		{"month", date[1], 1, 12, &d.Month},
		{"day", date[2], 1, 31, &d.Day},
	}
	clockFields := []field{
		{"hour", "", 0, 23, &d.Hour},
		{"minute", "", 0, 59, &d.Minute},
		{"second", "", 0, 59, &d.Second},
	}
	for i, digits := range clock {
		f := clockFields[i]
		f.digits = digits
		fields = append(fields, f)
	}
	for _, f := range fields {
		v, _, ov := wide.ParseUint32(f.digits, 10)
		if ov || v < f.min || v > f.max {
			return Date{}, false, instant.Domain(fmt.Sprintf("%s is out of range", f.name), text)
		}
		*f.dst = int(v)
	}
	return d, yearOverflow, nil
}

func splitDate(text string, sep byte) ([3]string, []string, error) {
	var date [3]string
	rest := text
	for i := range date {
		n := digitRun(rest)
		if n == 0 {
			return date, nil, instant.ErrNotThisFormat
		}
		date[i], rest = rest[:n], rest[n:]
		if i < len(date)-1 {
			if rest == "" || rest[0] != sep {
				return date, nil, instant.ErrNotThisFormat
			}
			rest = rest[1:]
		}
	}
	if rest == "" {
		return date, nil, nil
	}

	malformed := instant.Domain("malformed time of day", text)
	if rest[0] != 'T' && rest[0] != 't' {
		return date, nil, malformed
	}
	rest = rest[1:]
	clock := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		n := digitRun(rest)
		if n == 0 {
			return date, nil, malformed
		}
		clock, rest = append(clock, rest[:n]), rest[n:]
		if rest == "" {
			break
		}
		if i == 2 || rest[0] != ':' {
			return date, nil, malformed
		}
		rest = rest[1:]
	}
	if len(clock) < 2 {
		return date, nil, malformed
	}
	return date, clock, nil
}

func digitRun(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

func dayOfYear(table *[12]int, month, day int) int {
	n := day - 1
	for m := 0; m < month-1; m++ {
		n += table[m]
	}
	return n
}

func secondOfDay(d Date) wide.Uint {
	return wide.Uint(d.Hour*3600 + d.Minute*60 + d.Second)
}

// render walks ndays forward through the months of year, rolling into the
// following years as needed, and prints the date with the time of day.
func render(sep byte, leap leapRule, cycle int, year wide.Uint, ndays int, tod uint32) string {
	month := 0
	for ndays >= monthDays(leap, cycle)[month] {
		ndays -= monthDays(leap, cycle)[month]
		month++
		if month == 12 {
			month = 0
			year++
			cycle++
		}
	}
	return fmt.Sprintf("%s%c%02d%c%02dT%02d:%02d:%02d",
		wide.Format(year, 10, 4), sep, month+1, sep, ndays+1,
		tod/3600, tod%3600/60, tod%60)
}
