package calendar

import (
	"errors"
	"testing"

	"github.com/verte-zerg/stardate/internal/instant"
	"github.com/verte-zerg/stardate/internal/wide"
)

func mustParse(t *testing.T, parse func(string) (instant.Time, error), text string) instant.Time {
	t.Helper()
	got, err := parse(text)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	return got
}

func TestGregorianEpochs(t *testing.T) {
	tests := []struct {
		text string
		want wide.Uint
	}{
		{"0000-12-30", 0},
		{"0001-01-01", 2 * 86400},
		{"1970-01-01T00:00:00", instant.UnixEpoch},
		{"2162-01-04", instant.StardateEpoch},
		{"2323-01-01T00:00:00", instant.TNGEpoch},
		{"1970-01-01T01:02:03", instant.UnixEpoch + 3723},
	}
	for _, tt := range tests {
		got := mustParse(t, ParseGregorian, tt.text)
		if got.Sec != tt.want || got.Frac != 0 {
			t.Fatalf("%s: got %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestJulianEpoch(t *testing.T) {
	if got := mustParse(t, ParseJulian, "0001=01=01"); got.Sec != 0 {
		t.Fatalf("julian epoch: got %v", got)
	}
	julian := mustParse(t, ParseJulian, "1582=10=05")
	gregorian := mustParse(t, ParseGregorian, "1582-10-15")
	if julian != gregorian {
		t.Fatalf("reform day mismatch: julian %v, gregorian %v", julian, gregorian)
	}
}

func TestLeapYears(t *testing.T) {
	if _, err := ParseGregorian("2000-02-29"); err != nil {
		t.Fatalf("2000-02-29: %v", err)
	}
	if _, err := ParseJulian("1900=02=29"); err != nil {
		t.Fatalf("julian 1900=02=29: %v", err)
	}
	for _, text := range []string{"1900-02-29", "2000-02-30", "2001-02-29", "2000-04-31"} {
		_, err := ParseGregorian(text)
		var derr *instant.DomainError
		if !errors.As(err, &derr) {
			t.Fatalf("%s: expected domain error, got %v", text, err)
		}
		if derr.Reason != "day is out of range" {
			t.Fatalf("%s: unexpected reason %q", text, derr.Reason)
		}
	}
}

func TestDomainErrors(t *testing.T) {
	tests := []struct {
		text   string
		reason string
	}{
		{"2000-13-01", "month is out of range"},
		{"2000-00-01", "month is out of range"},
		{"2000-01-00", "day is out of range"},
		{"2000-01-32", "day is out of range"},
		{"2000-01-01T24:00", "hour is out of range"},
		{"2000-01-01T23:60", "minute is out of range"},
		{"2000-01-01T23:59:60", "second is out of range"},
		{"2000-01-01T12", "malformed time of day"},
		{"2000-01-01T12:", "malformed time of day"},
		{"2000-01-01T12:00:00:00", "malformed time of day"},
		{"2000-01-01x", "malformed time of day"},
		{"2000-99999999999-01", "month is out of range"},
	}
	for _, tt := range tests {
		_, err := ParseGregorian(tt.text)
		var derr *instant.DomainError
		if !errors.As(err, &derr) || derr.Reason != tt.reason {
			t.Fatalf("%s: got %v, want %q", tt.text, err, tt.reason)
		}
	}
}

func TestNotThisFormat(t *testing.T) {
	for _, text := range []string{"", "abc", "2000/01/01", "2000-01", "2000=01=01", "-2000-01-01", "[19]7340"} {
		if _, err := ParseGregorian(text); !errors.Is(err, instant.ErrNotThisFormat) {
			t.Fatalf("%q: expected ErrNotThisFormat, got %v", text, err)
		}
	}
	if _, err := ParseJulian("2000-01-01"); !errors.Is(err, instant.ErrNotThisFormat) {
		t.Fatalf("julian must reject gregorian separator, got %v", err)
	}
}

func TestRangeErrors(t *testing.T) {
	for _, tc := range []struct {
		parse func(string) (instant.Time, error)
		text  string
	}{
		{ParseJulian, "0000=01=01"},
		{ParseGregorian, "0000-12-29"},
		{ParseGregorian, "99999999999999999999-01-01"},
		{ParseGregorian, "999999999999999-01-01"},
		{ParseQuadcent, "0000*01*01"},
	} {
		_, err := tc.parse(tc.text)
		var rerr *instant.RangeError
		if !errors.As(err, &rerr) {
			t.Fatalf("%s: expected range error, got %v", tc.text, err)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	gregorian := []string{
		"0000-12-30T00:00:00",
		"0000-12-31T23:59:59",
		"0001-01-01T00:00:00",
		"1582-10-15T00:00:00",
		"1900-03-01T00:00:00",
		"2000-02-29T13:45:07",
		"2323-01-01T00:00:00",
		"9999-12-31T23:59:59",
		"12345-06-07T08:09:10",
	}
	for _, text := range gregorian {
		if got := FormatGregorian(mustParse(t, ParseGregorian, text)); got != text {
			t.Fatalf("gregorian round trip: %s -> %s", text, got)
		}
	}
	julian := []string{
		"0001=01=01T00:00:00",
		"0004=02=29T06:00:00",
		"1582=10=04T23:59:59",
		"1900=02=29T12:00:00",
		"4000=12=31T00:00:01",
	}
	for _, text := range julian {
		if got := FormatJulian(mustParse(t, ParseJulian, text)); got != text {
			t.Fatalf("julian round trip: %s -> %s", text, got)
		}
	}
}

func TestFormatPadsShortFields(t *testing.T) {
	got := mustParse(t, ParseGregorian, "2000-1-2T3:4")
	if s := FormatGregorian(got); s != "2000-01-02T03:04:00" {
		t.Fatalf("got %s", s)
	}
	if s := FormatJulian(instant.Time{}); s != "0001=01=01T00:00:00" {
		t.Fatalf("julian epoch formats as %s", s)
	}
}

func TestCalendarsAgreeAcrossFormats(t *testing.T) {
	tm := mustParse(t, ParseGregorian, "2024-03-01T00:00:00")
	if got := FormatJulian(tm); got != "2024=02=17T00:00:00" {
		t.Fatalf("gregorian 2024-03-01 in julian: %s", got)
	}
}

func TestQuadcentAnchor(t *testing.T) {
	anchor := mustParse(t, ParseQuadcent, "0323*01*01T00:00:00")
	if anchor.Sec != 117609*86400 || anchor.Frac != 0 {
		t.Fatalf("anchor: got %v", anchor)
	}
	if got := FormatQuadcent(anchor); got != "0323*01*01T00:00:00" {
		t.Fatalf("anchor formats as %s", got)
	}
}

func TestQuadcentRoundTrip(t *testing.T) {
	for _, text := range []string{
		"0001*01*01T00:00:00",
		"0100*03*01T01:02:03",
		"0322*12*31T23:59:59",
		"0323*01*01T00:00:01",
		"2024*07*15T12:00:00",
		"2323*12*31T23:59:59",
	} {
		tm := mustParse(t, ParseQuadcent, text)
		if got := FormatQuadcent(tm); got != text {
			t.Fatalf("quadcent round trip: %s -> %s (%v)", text, got, tm)
		}
	}
}

func TestQuadcentYearLength(t *testing.T) {
	a := mustParse(t, ParseQuadcent, "2000*01*01")
	b := mustParse(t, ParseQuadcent, "2001*01*01")
	if b.Sec-a.Sec != quadcentYear {
		t.Fatalf("year length %d", b.Sec-a.Sec)
	}
	if _, err := ParseQuadcent("2000*02*29"); err == nil {
		t.Fatalf("quadcent years have no leap day")
	}
	if _, err := ParseQuadcent("2000-01-01"); !errors.Is(err, instant.ErrNotThisFormat) {
		t.Fatalf("expected ErrNotThisFormat, got %v", err)
	}
}
