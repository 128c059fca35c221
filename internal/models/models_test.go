package models

import (
	"testing"
	"time"
)

func TestTimeframe_BarDuration(t *testing.T) {
	tests := []struct {
		tf   Timeframe
		want time.Duration
	}{
		{Timeframe1m, time.Minute},
		{Timeframe5m, 5 * time.Minute},
		{Timeframe15m, 15 * time.Minute},
		{Timeframe30m, 30 * time.Minute},
		{Timeframe1h, time.Hour},
		{Timeframe4h, 4 * time.Hour},
		{Timeframe1d, 24 * time.Hour},
		{Timeframe("2h"), 0},
	}
	for _, tt := range tests {
		if got := tt.tf.BarDuration(); got != tt.want {
			t.Errorf("%q.BarDuration() = %v, want %v", tt.tf, got, tt.want)
		}
	}
}

func TestTimeframe_Valid(t *testing.T) {
	for _, tf := range AllTimeframes {
		if !tf.Valid() {
			t.Errorf("%q should be valid", tf)
		}
	}
	for _, tf := range []Timeframe{"", "2h", "1w", "60s"} {
		if tf.Valid() {
			t.Errorf("%q should be invalid", tf)
		}
	}
}

func TestParseTimeframe(t *testing.T) {
	tests := []struct {
		in   string
		want Timeframe
		ok   bool
	}{
		{"1m", Timeframe1m, true},
		{"1min", Timeframe1m, true},
		{"60m", Timeframe1h, true},
		{"1hour", Timeframe1h, true},
		{"daily", Timeframe1d, true},
		{"1H", "", false},
		{"2h", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseTimeframe(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseTimeframe(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
