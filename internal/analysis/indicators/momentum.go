package indicators

// rsiEpsilon guards the gain/loss ratio against division by zero.
const rsiEpsilon = 1e-12

// RSIPeriod is the delta window used for the relative strength index.
const RSIPeriod = 14

// RSI calculates the relative strength index over the last `period` deltas,
// so it needs period+1 closes. Gains and losses are plain sums over the
// window, not Wilder-smoothed averages. A fully flat window has zero gain and
// zero loss and therefore yields exactly 0 under this formula.
func RSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidPeriod
	}
	if len(closes) < period+1 {
		return 0, ErrInsufficientData
	}

	window := closes[len(closes)-period-1:]
	var gain, loss float64
	for i := 1; i < len(window); i++ {
		delta := window[i] - window[i-1]
		if delta > 0 {
			gain += delta
		} else {
			loss += -delta
		}
	}

	rs := gain / max(loss, rsiEpsilon)
	return 100 - 100/(1+rs), nil
}
