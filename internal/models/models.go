// Package models provides domain models for the signal assistant.
package models

import (
	"time"
)

// Timeframe represents a candle timeframe.
type Timeframe string

const (
	Timeframe1m  Timeframe = "1m"
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
	Timeframe30m Timeframe = "30m"
	Timeframe1h  Timeframe = "1h"
	Timeframe4h  Timeframe = "4h"
	Timeframe1d  Timeframe = "1d"
)

// AllTimeframes lists every supported timeframe. Config tables (staleness
// thresholds, risk multipliers) are keyed by this set and must cover all of it.
var AllTimeframes = []Timeframe{
	Timeframe1m, Timeframe5m, Timeframe15m, Timeframe30m,
	Timeframe1h, Timeframe4h, Timeframe1d,
}

// BarDuration returns the duration of one bar for the timeframe.
func (tf Timeframe) BarDuration() time.Duration {
	switch tf {
	case Timeframe1m:
		return time.Minute
	case Timeframe5m:
		return 5 * time.Minute
	case Timeframe15m:
		return 15 * time.Minute
	case Timeframe30m:
		return 30 * time.Minute
	case Timeframe1h:
		return time.Hour
	case Timeframe4h:
		return 4 * time.Hour
	case Timeframe1d:
		return 24 * time.Hour
	default:
		return 0
	}
}

// Valid reports whether the timeframe is one of the supported set.
func (tf Timeframe) Valid() bool {
	return tf.BarDuration() > 0
}

// ParseTimeframe parses a timeframe string, accepting a few common aliases.
func ParseTimeframe(s string) (Timeframe, bool) {
	switch s {
	case "1m", "1min":
		return Timeframe1m, true
	case "5m", "5min":
		return Timeframe5m, true
	case "15m", "15min":
		return Timeframe15m, true
	case "30m", "30min":
		return Timeframe30m, true
	case "1h", "1hour", "60m":
		return Timeframe1h, true
	case "4h", "4hour":
		return Timeframe4h, true
	case "1d", "1day", "daily":
		return Timeframe1d, true
	default:
		return "", false
	}
}

// Decision represents the directional call produced by the classifier.
type Decision string

const (
	DecisionBuy     Decision = "BUY"
	DecisionSell    Decision = "SELL"
	DecisionNeutral Decision = "NEUTRAL"
)

// Candle represents one canonical OHLC bar. Timestamps are UTC.
// Invariant: High >= max(Open, Close) and Low <= min(Open, Close).
type Candle struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Freshness describes how recent the last candle of a series is relative to
// its timeframe. Derived on every request, never persisted.
type Freshness struct {
	LastCandle time.Time
	AgeSeconds int64
	IsStale    bool
	TooOld     bool
}

// IndicatorSnapshot holds the latest indicator values for one candle series.
type IndicatorSnapshot struct {
	Close      float64
	EMA20      float64
	EMA50      float64
	RSI14      float64
	MACDLine   float64
	MACDSignal float64
	MACDHist   float64
	ATR14      float64
}

// Levels holds the risk-managed price levels for a non-neutral decision.
type Levels struct {
	Entry       float64
	StopLoss    float64
	TakeProfit1 float64
	TakeProfit2 float64
}

// SignalResult is the assembled outcome of one analysis request.
// Levels is nil exactly when Decision is NEUTRAL.
type SignalResult struct {
	Symbol            string
	Timeframe         Timeframe
	Decision          Decision
	Levels            *Levels
	LastCandleTimeUTC string
	AgeSeconds        int64
	IsStale           bool
}

// Message is one side of a conversation exchange.
type Message struct {
	ID        int64
	ChatID    string
	Role      string // "user" or "assistant"
	Content   string
	CreatedAt time.Time
}

// SignalRecord is a persisted signal for history queries.
type SignalRecord struct {
	ID         int64
	Symbol     string
	Timeframe  Timeframe
	Decision   Decision
	Entry      float64
	StopLoss   float64
	TP1        float64
	TP2        float64
	AgeSeconds int64
	IsStale    bool
	CreatedAt  time.Time
}
