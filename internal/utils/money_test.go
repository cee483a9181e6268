package utils

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRoundHalfUp2(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{"1.6665", "1.67"},
		{"0.0049", "0.00"},
		{"-1.005", "-1.01"},
	}
	for _, c := range cases {
		got := RoundHalfUp2(decimal.RequireFromString(c.in))
		if got.StringFixed(2) != c.want {
			t.Errorf("RoundHalfUp2(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(99.999); got != "100.00" {
		t.Errorf("FormatPrice(99.999) = %s", got)
	}
	if got := FormatPrice(0); got != "0.00" {
		t.Errorf("FormatPrice(0) = %s", got)
	}
	if got := FormatPrice(math.NaN()); got != "0.00" {
		t.Errorf("FormatPrice(NaN) = %s", got)
	}
	if got := FormatPrice(math.Inf(1)); got != "0.00" {
		t.Errorf("FormatPrice(+Inf) = %s", got)
	}
}

func TestPercent(t *testing.T) {
	got := Percent(decimal.NewFromInt(5))
	if !got.Equal(decimal.RequireFromString("0.05")) {
		t.Errorf("Percent(5) = %s", got)
	}
}
