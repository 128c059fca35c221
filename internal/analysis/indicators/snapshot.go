package indicators

import (
	"tahlil-bot/internal/models"
)

// Snapshot EMA periods.
const (
	EMAFastPeriod = 20
	EMASlowPeriod = 50
)

// MinCandles is the smallest candle series any snapshot can be computed from:
// the largest of the per-indicator minimums (EMA50 needs 50 closes, RSI14 and
// ATR14 need 15, MACD needs 35).
const MinCandles = EMASlowPeriod

// Snapshot computes the full indicator set from one candle series. Every call
// re-derives from the input window; no incremental state is kept between
// calls. The series must be ascending by timestamp.
func Snapshot(candles []models.Candle) (*models.IndicatorSnapshot, error) {
	if len(candles) < MinCandles {
		return nil, ErrInsufficientData
	}

	closes := closePrices(candles)

	ema20, err := EMA(closes, EMAFastPeriod)
	if err != nil {
		return nil, err
	}
	ema50, err := EMA(closes, EMASlowPeriod)
	if err != nil {
		return nil, err
	}
	rsi, err := RSI(closes, RSIPeriod)
	if err != nil {
		return nil, err
	}
	macd, err := MACD(closes)
	if err != nil {
		return nil, err
	}
	atr, err := ATR(candles, ATRPeriod)
	if err != nil {
		return nil, err
	}

	return &models.IndicatorSnapshot{
		Close:      closes[len(closes)-1],
		EMA20:      ema20,
		EMA50:      ema50,
		RSI14:      rsi,
		MACDLine:   macd.Line,
		MACDSignal: macd.Signal,
		MACDHist:   macd.Hist,
		ATR14:      atr,
	}, nil
}
