package signal

import (
	"time"

	"github.com/rs/zerolog"

	"tahlil-bot/internal/analysis/indicators"
	apperrors "tahlil-bot/internal/errors"
	"tahlil-bot/internal/market"
	"tahlil-bot/internal/models"
)

// Engine assembles a SignalResult from raw provider bars: normalize, gate on
// freshness, compute indicators, classify, derive levels. It is stateless per
// invocation; concurrent calls for different symbol/timeframe pairs need no
// coordination.
type Engine struct {
	normalizer *market.Normalizer
	risk       RiskTable
	logger     zerolog.Logger
}

// NewEngine creates a signal engine.
func NewEngine(normalizer *market.Normalizer, risk RiskTable, logger zerolog.Logger) *Engine {
	if normalizer == nil {
		normalizer = market.NewNormalizer()
	}
	if risk == nil {
		risk = DefaultRiskTable()
	}
	return &Engine{
		normalizer: normalizer,
		risk:       risk,
		logger:     logger,
	}
}

// Analyze runs the full pipeline for one request. Failure modes are typed so
// callers can render them distinctly:
//   - no parseable bar: DataError wrapping ErrNoData
//   - last candle beyond the hard ceiling: TooOldError (no decision attempted)
//   - fewer candles than the indicator minimum: InsufficientDataError
//
// A merely stale series still produces a result; IsStale is set so callers
// can attach a delayed-data warning.
func (e *Engine) Analyze(symbol string, tf models.Timeframe, raw []market.RawCandle) (*models.SignalResult, *models.IndicatorSnapshot, error) {
	candles, fresh, err := e.normalizer.Normalize(raw, tf)
	if err != nil {
		return nil, nil, apperrors.NewDataError(symbol, string(tf), "normalization failed", err)
	}

	if fresh.TooOld {
		return nil, nil, apperrors.NewTooOldError(symbol, string(tf), fresh.LastCandle, fresh.AgeSeconds)
	}

	if len(candles) < indicators.MinCandles {
		return nil, nil, apperrors.NewInsufficientDataError(symbol, string(tf), len(candles), indicators.MinCandles)
	}

	snap, err := indicators.Snapshot(candles)
	if err != nil {
		return nil, nil, apperrors.NewDataError(symbol, string(tf), "indicator computation failed", err)
	}

	decision := Classify(snap)
	levels := ComputeLevels(decision, snap.Close, snap.ATR14, e.risk, tf)

	result := &models.SignalResult{
		Symbol:            symbol,
		Timeframe:         tf,
		Decision:          decision,
		Levels:            levels,
		LastCandleTimeUTC: fresh.LastCandle.UTC().Format(time.RFC3339),
		AgeSeconds:        fresh.AgeSeconds,
		IsStale:           fresh.IsStale,
	}

	e.logger.Info().
		Str("event", "signal").
		Str("symbol", symbol).
		Str("timeframe", string(tf)).
		Str("decision", string(decision)).
		Int64("age_seconds", fresh.AgeSeconds).
		Bool("stale", fresh.IsStale).
		Msg("Signal computed")

	return result, snap, nil
}
