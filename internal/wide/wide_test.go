package wide

import (
	"errors"
	"testing"
)

func TestAddSubOverflow(t *testing.T) {
	if v, ov := Make(0, 0xffffffff).Add(1); ov || v != Make(1, 0) {
		t.Fatalf("carry into high half: got %v overflow=%v", v, ov)
	}
	if _, ov := Max.Add(1); !ov {
		t.Fatalf("expected overflow adding to Max")
	}
	if v, ov := Make(1, 0).Sub(1); ov || v != Make(0, 0xffffffff) {
		t.Fatalf("borrow from high half: got %v overflow=%v", v, ov)
	}
	if _, ov := Uint(3).Sub(4); !ov {
		t.Fatalf("expected underflow for negative result")
	}
	if _, ov := Uint(0).Dec(); !ov {
		t.Fatalf("expected underflow decrementing zero")
	}
	if _, ov := Max.Inc(); !ov {
		t.Fatalf("expected overflow incrementing Max")
	}
}

func TestMulDivMod(t *testing.T) {
	v, ov := Uint(789294).Mul(86400)
	if ov || v != 68195001600 {
		t.Fatalf("789294*86400 = %v overflow=%v", v, ov)
	}
	if _, ov := Make(0x80000000, 0).Mul(2); !ov {
		t.Fatalf("expected overflow doubling 2^63")
	}
	if got := Uint(68195001600).Div(86400); got != 789294 {
		t.Fatalf("div: got %v", got)
	}
	if got := Uint(68195001601).Mod(86400); got != 1 {
		t.Fatalf("mod: got %v", got)
	}
	if Make(0x11, 0x0f8cad00) != 73275321600 {
		t.Fatalf("Make halves mismatch")
	}
}

func TestCheckedChainIsSticky(t *testing.T) {
	c := Check(5).Sub(10).Add(100)
	if !c.Overflow() {
		t.Fatalf("underflow must survive later steps")
	}
	if _, err := c.Result(); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	v, err := Check(10).Mul(3).Div(2).Inc().Result()
	if err != nil || v != 16 {
		t.Fatalf("clean chain: got %v err=%v", v, err)
	}
	if !Check(1).AddChecked(Check(0).Dec()).Overflow() {
		t.Fatalf("AddChecked must merge operand overflow")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in       string
		radix    int
		want     Uint
		rest     string
		overflow bool
	}{
		{"12345]rest", 10, 12345, "]rest", false},
		{"ff", 16, 255, "", false},
		{"FFx", 16, 255, "x", false},
		{"12a", 10, 12, "a", false},
		{"18446744073709551615", 10, Max, "", false},
		{"18446744073709551616", 10, 0, "", true},
		{"ffffffffffffffffffffffffffffffffffffffff", 16, Max, "", true},
		{"", 10, 0, "", false},
	}
	for _, tt := range tests {
		got, rest, ov := Parse(tt.in, tt.radix)
		if got != tt.want || rest != tt.rest || ov != tt.overflow {
			t.Fatalf("Parse(%q, %d) = %v %q %v; want %v %q %v", tt.in, tt.radix, got, rest, ov, tt.want, tt.rest, tt.overflow)
		}
	}
}

func TestParseUint32(t *testing.T) {
	if v, _, ov := ParseUint32("4294967295", 10); ov || v != 0xffffffff {
		t.Fatalf("max uint32: %v %v", v, ov)
	}
	if _, _, ov := ParseUint32("4294967296", 10); !ov {
		t.Fatalf("expected overflow past uint32")
	}
}

func TestFormat(t *testing.T) {
	if got := Format(7, 10, 4); got != "0007" {
		t.Fatalf("got %q", got)
	}
	if got := Format(0, 10, 1); got != "0" {
		t.Fatalf("got %q", got)
	}
	if got := Format(Make(0xe, 0x77949a00), 16, 1); got != "e77949a00" {
		t.Fatalf("got %q", got)
	}
	if got := Format(123456, 10, 2); got != "123456" {
		t.Fatalf("got %q", got)
	}
}
