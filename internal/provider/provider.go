// Package provider implements market-data source adapters. Adapters map
// provider-native payloads into raw bars; all coercion and validation is the
// normalizer's job.
package provider

import (
	"context"

	"tahlil-bot/internal/market"
	"tahlil-bot/internal/models"
)

// Provider fetches raw candle bars for a symbol and timeframe.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, symbol string, tf models.Timeframe, limit int) ([]market.RawCandle, error)
}
