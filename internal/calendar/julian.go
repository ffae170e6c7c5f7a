package calendar

import (
	"github.com/verte-zerg/stardate/internal/instant"
	"github.com/verte-zerg/stardate/internal/wide"
)

const (
	julianSep    = '='
	gregorianSep = '-'

	daysPerCycle = 146097
)

// ParseJulian reads a proleptic Julian date such as 1582=10=04T12:00:00.
func ParseJulian(text string) (instant.Time, error) {
	return parseYearDate(text, false)
}

// ParseGregorian reads a proleptic Gregorian date such as 2323-01-01T00:00.
func ParseGregorian(text string) (instant.Time, error) {
	return parseYearDate(text, true)
}

// FormatJulian renders t as YYYY=MM=DDTHH:MM:SS.
func FormatJulian(t instant.Time) string {
	return formatYearDate(t, false)
}

// FormatGregorian renders t as YYYY-MM-DDTHH:MM:SS.
func FormatGregorian(t instant.Time) string {
	return formatYearDate(t, true)
}

func parseYearDate(text string, gregorian bool) (instant.Time, error) {
	sep, leap := byte(julianSep), leapRule(julianLeap)
	if gregorian {
		sep, leap = gregorianSep, gregorianLeap
	}
	d, yearOverflow, err := readDate(text, sep)
	if err != nil {
		return instant.Time{}, err
	}
	cycle := int(d.Year.Mod(400))
	table := monthDays(leap, cycle)
	if d.Day > table[d.Month-1] {
		return instant.Time{}, instant.Domain("day is out of range", text)
	}

	// Gregorian year 0 is counted as year 400 of the previous cycle and
	// shifted back by one cycle afterwards.
	low := gregorian && d.Year.IsZero()
	prior := wide.Check(d.Year).Dec()
	if low {
		prior = wide.Check(399)
	}
	y := prior.Value()
	days := prior.Mul(365)
	if gregorian {
		days = days.Sub(y.Div(100)).Add(y.Div(400))
	}
	days = days.Add(y.Div(4))

	// Day 0 is 0001=01=01, which the Gregorian calendar calls 0000-12-30.
	n := dayOfYear(table, d.Month, d.Day)
	if gregorian {
		n += 2
	}
	days = days.Add(wide.Uint(n))
	if low {
		days = days.Sub(daysPerCycle)
	}
	secs := days.Mul(86400).Add(secondOfDay(d)).WithOverflow(yearOverflow)
	return instant.Finish(secs, 0, text)
}

func formatYearDate(t instant.Time, gregorian bool) string {
	tod := t.Sec.Mod(86400)
	days := t.Sec.Div(86400)

	// Estimate the year from below, never by more than two years, then
	// hand the remaining days to the month walk.
	var year wide.Uint
	if gregorian {
		// Count from 0000-12-30 minus 400 years so the leap cycle lines up.
		days += daysPerCycle - 2
		year = days.Div(daysPerCycle)*400 + wide.Uint(days.Mod(daysPerCycle)/366)
		days = days + year/100 - year/400
	} else {
		year = days.Div(366) + days.Div(366*487)
	}
	days -= year*365 + year/4

	sep, leap := byte(julianSep), leapRule(julianLeap)
	if gregorian {
		sep, leap = gregorianSep, gregorianLeap
		year -= 399
	} else {
		year++
	}
	return render(sep, leap, int(year.Mod(400)), year, int(days), tod)
}
