package core

import "testing"

func TestItoa(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{-42, "-42"},
		{-2147483648, "-2147483648"},
		{4294967295, "4294967295"},
	}
	for _, tt := range tests {
		if got := itoa(tt.in); got != tt.want {
			t.Errorf("itoa(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHex32(t *testing.T) {
	if got := hex32(0x9FF0); got != "0x00009ff0" {
		t.Errorf("hex32 = %q", got)
	}
	if got := hex32(0xDEADBEEF); got != "0xdeadbeef" {
		t.Errorf("hex32 = %q", got)
	}
}

func TestDelayMillis(t *testing.T) {
	DelayMillis(0)
	DelayMillis(1)
}
