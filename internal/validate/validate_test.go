package validate

import "testing"

func TestPhone(t *testing.T) {
	good := []string{"01712345678", "+880 1712-345678", "(02) 955-1234", "+1 212 555 0100"}
	for _, s := range good {
		if _, ok := Phone(s); !ok {
			t.Errorf("%q should be accepted", s)
		}
	}
	bad := []string{"", "call me", "017x345", "phone@now"}
	for _, s := range bad {
		if _, ok := Phone(s); ok {
			t.Errorf("%q should be rejected", s)
		}
	}
}

func TestEmail(t *testing.T) {
	if _, ok := Email("rahim@example.com"); !ok {
		t.Error("plain address should pass")
	}
	if _, ok := Email("not-an-email"); ok {
		t.Error("missing @ should fail")
	}
}

func TestQtyClamps(t *testing.T) {
	cases := map[string]int{"3": 3, "0": 1, "-2": 1, "junk": 1, "999": 50}
	for in, want := range cases {
		if got := Qty(in); got != want {
			t.Errorf("Qty(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestID(t *testing.T) {
	if _, ok := ID("550e8400-e29b-41d4-a716-446655440000"); !ok {
		t.Error("uuid should pass")
	}
	if _, ok := ID("../etc/passwd"); ok {
		t.Error("path-ish id should fail")
	}
	if _, ok := ID(""); ok {
		t.Error("empty id should fail")
	}
}
