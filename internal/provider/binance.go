package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "tahlil-bot/internal/errors"
	"tahlil-bot/internal/market"
	"tahlil-bot/internal/models"
	"tahlil-bot/pkg/utils"
)

const defaultBinanceBaseURL = "https://api.binance.com"

// BinanceProvider fetches klines from the Binance spot REST API.
type BinanceProvider struct {
	client  *http.Client
	baseURL string
	retry   utils.RetryConfig
}

// NewBinanceProvider creates a Binance provider. An empty baseURL uses the
// public endpoint.
func NewBinanceProvider(baseURL string) *BinanceProvider {
	if baseURL == "" {
		baseURL = defaultBinanceBaseURL
	}
	return &BinanceProvider{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		retry:   utils.DefaultRetryConfig(),
	}
}

func (p *BinanceProvider) Name() string { return "binance" }

// Fetch retrieves up to limit klines. Binance returns an array of arrays:
// index 0 is the open time in epoch-milliseconds and indexes 1-5 are OHLCV as
// strings; both quirks are left for the normalizer to coerce.
func (p *BinanceProvider) Fetch(ctx context.Context, symbol string, tf models.Timeframe, limit int) ([]market.RawCandle, error) {
	if !tf.Valid() {
		return nil, apperrors.ErrInvalidTimeframe
	}
	if limit <= 0 {
		limit = 200
	}

	q := url.Values{}
	q.Set("symbol", strings.ToUpper(symbol))
	q.Set("interval", string(tf))
	q.Set("limit", fmt.Sprintf("%d", limit))
	endpoint := p.baseURL + "/api/v3/klines?" + q.Encode()

	body, err := utils.RetryWithResult(ctx, p.retry, func() ([]byte, error) {
		return p.get(ctx, endpoint)
	})
	if err != nil {
		return nil, apperrors.NewProviderError(p.Name(), symbol, "klines request failed", err)
	}

	var klines [][]interface{}
	if err := json.Unmarshal(body, &klines); err != nil {
		return nil, apperrors.NewProviderError(p.Name(), symbol, "unexpected klines payload", err)
	}

	raw := make([]market.RawCandle, 0, len(klines))
	for _, k := range klines {
		if len(k) < 6 {
			continue
		}
		raw = append(raw, market.RawCandle{
			Timestamp: k[0],
			Open:      k[1],
			High:      k[2],
			Low:       k[3],
			Close:     k[4],
			Volume:    k[5],
		})
	}
	return raw, nil
}

func (p *BinanceProvider) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, apperrors.ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
}
