package unixtime

import (
	"errors"
	"strings"
	"testing"

	"github.com/verte-zerg/stardate/internal/instant"
	"github.com/verte-zerg/stardate/internal/wide"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text string
		want wide.Uint
	}{
		{"U0", instant.UnixEpoch},
		{"u86400", instant.UnixEpoch + 86400},
		{"U-86400", instant.UnixEpoch - 86400},
		{"U0x10", instant.UnixEpoch + 16},
		{"U-0XfF", instant.UnixEpoch - 255},
		{"U11139552000", instant.TNGEpoch},
		{"U-62135769600", 0},
	}
	for _, tt := range tests {
		got, err := Parse(tt.text)
		if err != nil {
			t.Fatalf("%s: %v", tt.text, err)
		}
		if got.Sec != tt.want || got.Frac != 0 {
			t.Fatalf("%s: got %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, text := range []string{"", "1700000000", "x10", "2000-01-01"} {
		if _, err := Parse(text); !errors.Is(err, instant.ErrNotThisFormat) {
			t.Fatalf("%q: expected ErrNotThisFormat, got %v", text, err)
		}
	}
	for _, text := range []string{"U", "U-", "U0x", "U12a", "U0xfg", "U 1", "U--1"} {
		var derr *instant.DomainError
		if _, err := Parse(text); !errors.As(err, &derr) {
			t.Fatalf("%q: expected domain error, got %v", text, err)
		}
	}
}

func TestParseOverflow(t *testing.T) {
	for _, text := range []string{
		"U0x" + strings.Repeat("f", 40),
		"U18446744073709551615",
		"U-62135769601",
	} {
		_, err := Parse(text)
		var rerr *instant.RangeError
		if !errors.As(err, &rerr) {
			t.Fatalf("%s: expected range error, got %v", text, err)
		}
	}
}

func TestFormat(t *testing.T) {
	tm := instant.Time{Sec: instant.UnixEpoch + 255, Frac: 12345}
	if got := Format(tm); got != "U255" {
		t.Fatalf("got %s", got)
	}
	if got := FormatHex(tm); got != "U0xff" {
		t.Fatalf("got %s", got)
	}
	before := instant.Time{Sec: instant.UnixEpoch - 16}
	if got := Format(before); got != "U-16" {
		t.Fatalf("got %s", got)
	}
	if got := FormatHex(before); got != "U-0x10" {
		t.Fatalf("got %s", got)
	}
	if got := Format(instant.Time{Sec: instant.UnixEpoch}); got != "U0" {
		t.Fatalf("got %s", got)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, text := range []string{"U0", "U1700000000", "U-1", "U-62135769600"} {
		tm, err := Parse(text)
		if err != nil {
			t.Fatalf("%s: %v", text, err)
		}
		if got := Format(tm); got != text {
			t.Fatalf("round trip %s -> %s", text, got)
		}
		back, err := Parse(FormatHex(tm))
		if err != nil || back != tm {
			t.Fatalf("hex round trip %s: %v %v", text, back, err)
		}
	}
}
