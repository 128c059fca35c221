// Package market converts provider-native candle payloads into canonical
// ascending-time series and classifies their freshness.
package market

import (
	"sort"
	"time"

	apperrors "tahlil-bot/internal/errors"
	"tahlil-bot/internal/models"
)

// RawCandle is one provider-native bar before normalization. Field types are
// deliberately loose: timestamps arrive as epoch-seconds, epoch-milliseconds
// or ISO-8601 strings, and OHLC values as numbers or strings depending on the
// provider. Provider adapters only map payloads into this shape; all coercion
// happens here.
type RawCandle struct {
	Timestamp interface{}
	Open      interface{}
	High      interface{}
	Low       interface{}
	Close     interface{}
	Volume    interface{}
}

// Default freshness policy: a series is stale once its last candle is older
// than StaleMultiple bar durations, and unusable once older than
// TooOldMultiple times the stale threshold.
const (
	DefaultStaleMultiple  = 3.0
	DefaultTooOldMultiple = 10.0
)

// Normalizer converts raw bars into canonical series and derives freshness
// verdicts. It is stateless apart from its policy constants and clock; the
// clock is injectable so freshness checks are deterministic under test.
type Normalizer struct {
	staleMultiple  float64
	tooOldMultiple float64
	now            func() time.Time
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithStaleMultiple overrides the soft staleness multiple.
func WithStaleMultiple(m float64) Option {
	return func(n *Normalizer) {
		if m > 0 {
			n.staleMultiple = m
		}
	}
}

// WithTooOldMultiple overrides the hard too-old multiple (applied to the
// stale threshold, not the bar duration).
func WithTooOldMultiple(m float64) Option {
	return func(n *Normalizer) {
		if m > 0 {
			n.tooOldMultiple = m
		}
	}
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

// NewNormalizer creates a Normalizer with the default freshness policy.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		staleMultiple:  DefaultStaleMultiple,
		tooOldMultiple: DefaultTooOldMultiple,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// StaleThreshold returns the soft staleness threshold for a timeframe.
func (n *Normalizer) StaleThreshold(tf models.Timeframe) time.Duration {
	return time.Duration(n.staleMultiple * float64(tf.BarDuration()))
}

// TooOldThreshold returns the hard unusability ceiling for a timeframe.
func (n *Normalizer) TooOldThreshold(tf models.Timeframe) time.Duration {
	return time.Duration(n.tooOldMultiple * float64(n.StaleThreshold(tf)))
}

// Normalize converts raw bars into a canonical ascending series and derives
// the freshness verdict for the given timeframe. Bars missing a required
// field or violating the high/low invariant are dropped; duplicate timestamps
// keep the first occurrence after sorting. Returns ErrNoData (wrapped) when
// no valid bar remains and ErrInvalidTimeframe for an unknown timeframe.
// A stale or too-old series is still returned with its verdict; acting on the
// verdict is the caller's decision.
func (n *Normalizer) Normalize(raw []RawCandle, tf models.Timeframe) ([]models.Candle, models.Freshness, error) {
	if !tf.Valid() {
		return nil, models.Freshness{}, apperrors.ErrInvalidTimeframe
	}

	candles := make([]models.Candle, 0, len(raw))
	for _, r := range raw {
		c, ok := coerce(r)
		if !ok {
			continue
		}
		candles = append(candles, c)
	}
	if len(candles) == 0 {
		return nil, models.Freshness{}, apperrors.ErrNoData
	}

	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Timestamp.Before(candles[j].Timestamp)
	})
	candles = dedupe(candles)

	last := candles[len(candles)-1].Timestamp
	age := n.now().UTC().Sub(last)
	if age < 0 {
		age = 0
	}

	fresh := models.Freshness{
		LastCandle: last,
		AgeSeconds: int64(age.Seconds()),
		IsStale:    age > n.StaleThreshold(tf),
		TooOld:     age > n.TooOldThreshold(tf),
	}
	return candles, fresh, nil
}

// coerce converts one raw bar, reporting false when a required field is
// missing/unparseable or the bar fails the high/low invariant.
func coerce(r RawCandle) (models.Candle, bool) {
	ts, ok := parseTimestamp(r.Timestamp)
	if !ok {
		return models.Candle{}, false
	}
	open, ok := parsePrice(r.Open)
	if !ok {
		return models.Candle{}, false
	}
	high, ok := parsePrice(r.High)
	if !ok {
		return models.Candle{}, false
	}
	low, ok := parsePrice(r.Low)
	if !ok {
		return models.Candle{}, false
	}
	closePrice, ok := parsePrice(r.Close)
	if !ok {
		return models.Candle{}, false
	}

	if high < open || high < closePrice || low > open || low > closePrice {
		return models.Candle{}, false
	}

	// Volume is optional across providers.
	volume, _ := parsePrice(r.Volume)

	return models.Candle{
		Timestamp: ts,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePrice,
		Volume:    volume,
	}, true
}

// dedupe drops bars sharing a timestamp with an earlier bar. Input must be
// sorted ascending.
func dedupe(candles []models.Candle) []models.Candle {
	out := candles[:1]
	for _, c := range candles[1:] {
		if c.Timestamp.Equal(out[len(out)-1].Timestamp) {
			continue
		}
		out = append(out, c)
	}
	return out
}
