package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	apperrors "tahlil-bot/internal/errors"
	"tahlil-bot/internal/market"
	"tahlil-bot/internal/models"
)

// csvBar mirrors one row of an exported candle file. Fields stay strings so
// the normalizer handles unit coercion exactly as it does for live payloads.
type csvBar struct {
	Timestamp string `csv:"timestamp"`
	Open      string `csv:"open"`
	High      string `csv:"high"`
	Low       string `csv:"low"`
	Close     string `csv:"close"`
	Volume    string `csv:"volume"`
}

// CSVProvider loads candles from local CSV files, one file per
// symbol/timeframe pair named <SYMBOL>_<TIMEFRAME>.csv. Used for offline
// analysis and replaying recorded data.
type CSVProvider struct {
	dir string
}

// NewCSVProvider creates a CSV provider rooted at dir.
func NewCSVProvider(dir string) *CSVProvider {
	return &CSVProvider{dir: dir}
}

func (p *CSVProvider) Name() string { return "csv" }

// Fetch reads the file for the pair and returns its last `limit` rows.
func (p *CSVProvider) Fetch(ctx context.Context, symbol string, tf models.Timeframe, limit int) ([]market.RawCandle, error) {
	if !tf.Valid() {
		return nil, apperrors.ErrInvalidTimeframe
	}

	path := filepath.Join(p.dir, fmt.Sprintf("%s_%s.csv", strings.ToUpper(symbol), tf))
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewProviderError(p.Name(), symbol, "no data file for pair", apperrors.ErrSymbolNotFound)
		}
		return nil, apperrors.NewProviderError(p.Name(), symbol, "opening data file", err)
	}
	defer f.Close()

	var rows []csvBar
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, apperrors.NewProviderError(p.Name(), symbol, "parsing data file", err)
	}

	if limit > 0 && len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}

	raw := make([]market.RawCandle, 0, len(rows))
	for _, r := range rows {
		raw = append(raw, market.RawCandle{
			Timestamp: r.Timestamp,
			Open:      r.Open,
			High:      r.High,
			Low:       r.Low,
			Close:     r.Close,
			Volume:    r.Volume,
		})
	}
	return raw, nil
}
