package indicators

// EMA calculates the exponential moving average of the whole value window.
// The series is seeded with the first sample (not an SMA of the first period
// values); downstream consumers rely on this seeding to reproduce identical
// outputs for identical inputs.
func EMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidPeriod
	}
	if len(values) < period {
		return 0, ErrInsufficientData
	}

	k := 2.0 / float64(period+1)
	e := values[0]
	for _, v := range values[1:] {
		e = v*k + e*(1-k)
	}
	return e, nil
}

// EMASeries calculates the running EMA series over values with the same
// first-sample seeding as EMA. result[i] is the EMA of values[:i+1].
func EMASeries(values []float64, period int) []float64 {
	if len(values) == 0 || period <= 0 {
		return nil
	}

	k := 2.0 / float64(period+1)
	result := make([]float64, len(values))
	result[0] = values[0]
	for i := 1; i < len(values); i++ {
		result[i] = values[i]*k + result[i-1]*(1-k)
	}
	return result
}

// MACD periods (12, 26, 9) and the close window it is computed over.
const (
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9

	// MACDWindow caps the close history fed into the running EMA series.
	MACDWindow = 120

	// MACDMinCloses is the minimum close count for a stable signal line.
	MACDMinCloses = MACDSlowPeriod + MACDSignalPeriod
)

// MACDValue holds the final MACD line, signal line and histogram values.
type MACDValue struct {
	Line   float64
	Signal float64
	Hist   float64
}

// MACD calculates MACD(12,26,9) over up to the last MACDWindow closes.
// The fast and slow EMAs are computed as running series, and the signal line
// is a 9-period EMA of the full MACD-line series, because the signal depends
// on the line's history rather than its final point alone.
func MACD(closes []float64) (MACDValue, error) {
	if len(closes) < MACDMinCloses {
		return MACDValue{}, ErrInsufficientData
	}
	if len(closes) > MACDWindow {
		closes = closes[len(closes)-MACDWindow:]
	}

	fast := EMASeries(closes, MACDFastPeriod)
	slow := EMASeries(closes, MACDSlowPeriod)

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fast[i] - slow[i]
	}
	signal := EMASeries(line, MACDSignalPeriod)

	last := len(closes) - 1
	return MACDValue{
		Line:   line[last],
		Signal: signal[last],
		Hist:   line[last] - signal[last],
	}, nil
}
