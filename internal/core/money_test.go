package core

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1.00", true},
		{"150.0", "150.00", true},
		{"0.5", "0.50", true},
		{"1.005", "1.01", true}, // half-up rounding
		{" 2.50 ", "2.50", true},
		{"₹1,250.5", "1250.50", true},
		{"0.004", "", false},
		{"-1", "", false},
		{"0", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err != ErrInvalidAmount {
			t.Fatalf("%q expected ErrInvalidAmount, got %v", tc.in, err)
		}
	}
}

func TestAmountArithmetic(t *testing.T) {
	a := AmountFromFloat(0.1).Add(AmountFromFloat(0.2))
	if !a.Equal(AmountFromFloat(0.3)) {
		t.Fatalf("expected exact 0.30, got %s", a)
	}
	if got := AmountFromFloat(400).DivInt(2); got.String() != "200.00" {
		t.Fatalf("expected 200.00, got %s", got)
	}
	if got := AmountFromFloat(10).DivInt(3); got.String() != "3.33" {
		t.Fatalf("expected 3.33, got %s", got)
	}
	if !AmountFromFloat(5).DivInt(0).IsZero() {
		t.Fatalf("division by zero should be zero")
	}
	if s := AmountFromFloat(25).Share(AmountFromFloat(200)); s != 12.5 {
		t.Fatalf("expected 12.5%%, got %v", s)
	}
	if s := AmountFromFloat(25).Share(Amount{}); s != 0 {
		t.Fatalf("share of zero total should be 0, got %v", s)
	}
}

func TestAmountJSON(t *testing.T) {
	b, err := json.Marshal(struct{ A Amount }{AmountFromFloat(12.5)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"A":12.50}` {
		t.Fatalf("unexpected json %s", b)
	}
	var v struct{ A Amount }
	if err := json.Unmarshal([]byte(`{"A":"99.999"}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.A.String() != "100.00" {
		t.Fatalf("expected 100.00, got %s", v.A)
	}
}

func TestMonthKey(t *testing.T) {
	k := MonthKey{Year: 2025, Month: 1}
	if k.String() != "2025-01" || k.Label() != "Jan 2025" {
		t.Fatalf("unexpected formatting %s / %s", k, k.Label())
	}
	if !k.Before(MonthKey{Year: 2025, Month: 2}) || !(MonthKey{Year: 2024, Month: 12}).Before(k) {
		t.Fatalf("unexpected ordering")
	}
}
