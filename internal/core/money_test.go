package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"4.50", "4.5", true},
		{"12,34", "12.34", true},
		{" 100 ", "100", true},
		{"0.01", "0.01", true},
		{"0", "", false},
		{"-5", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("ParseMoney(%q) unexpected error: %v", tc.in, err)
			}
			if got.Decimal.String() != tc.want {
				t.Fatalf("ParseMoney(%q) = %s, want %s", tc.in, got.Decimal.String(), tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("ParseMoney(%q) expected ErrInvalidAmount, got %v", tc.in, err)
		}
	}
}

func TestRequiresConfirmation(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"999999.99", false},
		{"1000000", false},
		{"1000000.01", true},
		{"2000000", true},
	}
	for _, tc := range cases {
		m, err := ParseMoney(tc.in)
		if err != nil {
			t.Fatalf("ParseMoney(%q): %v", tc.in, err)
		}
		if got := m.RequiresConfirmation(); got != tc.want {
			t.Fatalf("RequiresConfirmation(%s) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := MoneyFromFloat(10.25)
	b := MoneyFromFloat(4.75)
	if got := a.Plus(b); !got.Equal(MoneyFromFloat(15)) {
		t.Fatalf("Plus = %s", got.Decimal.String())
	}
	if got := b.Minus(a); got.Decimal.String() != "-5.5" {
		t.Fatalf("Minus = %s", got.Decimal.String())
	}
}

func TestMoneyDisplay(t *testing.T) {
	if got := MoneyFromFloat(4.5).Display("₹"); got != "₹4.50" {
		t.Fatalf("Display = %q", got)
	}
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(MoneyFromFloat(123.45))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "123.45" {
		t.Fatalf("marshal = %s, want bare number", data)
	}

	for _, in := range []string{"123.45", `"123.45"`} {
		var m Money
		if err := json.Unmarshal([]byte(in), &m); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		if !m.Equal(MoneyFromFloat(123.45)) {
			t.Fatalf("unmarshal %s = %s", in, m.Decimal.String())
		}
	}

	var m Money
	if err := json.Unmarshal([]byte(`"nope"`), &m); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}
