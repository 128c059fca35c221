package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{50123.456, "50123.46"},
		{1000, "1000.00"},
		{99.12345, "99.1234"},
		{1, "1.0000"},
		{0.123456789, "0.123457"},
		{0.00001234, "0.000012"},
		{0, "0"},
		{-2500.5, "-2500.50"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.in); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(2.5); got != "+2.50%" {
		t.Errorf("FormatPercent(2.5) = %q", got)
	}
	if got := FormatPercent(-1.25); got != "-1.25%" {
		t.Errorf("FormatPercent(-1.25) = %q", got)
	}
	if got := FormatPercent(0); got != "0.00%" {
		t.Errorf("FormatPercent(0) = %q", got)
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{1800, "30m"},
		{3600, "1h00m"},
		{5400, "1h30m"},
		{86400, "1d00h"},
		{93600, "1d02h"},
	}
	for _, tt := range tests {
		if got := FormatAge(tt.in); got != tt.want {
			t.Errorf("FormatAge(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRetryWithResult_SucceedsAfterFailures(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond, BackoffFactor: 2}
	calls := 0
	got, err := RetryWithResult(context.Background(), cfg, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if got != "ok" || calls != 3 {
		t.Errorf("got %q after %d calls, want ok after 3", got, calls)
	}
}

func TestRetryWithResult_ExhaustsAttempts(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond, BackoffFactor: 2}
	wantErr := errors.New("permanent")
	calls := 0
	_, err := RetryWithResult(context.Background(), cfg, func() (int, error) {
		calls++
		return 0, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryWithResult_StopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := RetryConfig{MaxAttempts: 5, InitialDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond, BackoffFactor: 2}
	calls := 0
	_, err := RetryWithResult(ctx, cfg, func() (int, error) {
		calls++
		return 0, errors.New("fail")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
