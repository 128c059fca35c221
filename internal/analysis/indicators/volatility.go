package indicators

import (
	"tahlil-bot/internal/models"
)

// ATRPeriod is the true-range window used for the average true range.
const ATRPeriod = 14

// ATR calculates the average true range as the arithmetic mean of the last
// `period` true ranges (simple average, not Wilder's smoothing). Each true
// range needs the previous close, so period+1 candles are required.
func ATR(candles []models.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidPeriod
	}
	if len(candles) < period+1 {
		return 0, ErrInsufficientData
	}

	window := candles[len(candles)-period-1:]
	tr := make([]float64, 0, period)
	for i := 1; i < len(window); i++ {
		tr = append(tr, trueRange(window[i], window[i-1]))
	}
	return mean(tr), nil
}
