package signal

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"tahlil-bot/internal/models"
)

func TestComputeLevels_NilForNeutral(t *testing.T) {
	got := ComputeLevels(models.DecisionNeutral, 100, 2, DefaultRiskTable(), models.Timeframe1h)
	if got != nil {
		t.Errorf("NEUTRAL: levels = %+v, want nil", got)
	}
}

func TestComputeLevels_BuyOrdering(t *testing.T) {
	// 1h multiplier is 1.0, so riskUnit == ATR == 2.
	got := ComputeLevels(models.DecisionBuy, 100, 2, DefaultRiskTable(), models.Timeframe1h)
	if got == nil {
		t.Fatal("BUY: levels is nil")
	}
	want := models.Levels{Entry: 100, StopLoss: 98, TakeProfit1: 102, TakeProfit2: 104}
	if *got != want {
		t.Errorf("levels = %+v, want %+v", *got, want)
	}
}

func TestComputeLevels_SellOrdering(t *testing.T) {
	got := ComputeLevels(models.DecisionSell, 100, 2, DefaultRiskTable(), models.Timeframe1h)
	if got == nil {
		t.Fatal("SELL: levels is nil")
	}
	want := models.Levels{Entry: 100, StopLoss: 102, TakeProfit1: 98, TakeProfit2: 96}
	if *got != want {
		t.Errorf("levels = %+v, want %+v", *got, want)
	}
}

func TestComputeLevels_TimeframeMultipliers(t *testing.T) {
	tests := []struct {
		tf       models.Timeframe
		wantStop float64
	}{
		{models.Timeframe1m, 100 - 0.35*10},
		{models.Timeframe5m, 100 - 0.5*10},
		{models.Timeframe15m, 100 - 0.7*10},
		{models.Timeframe30m, 100 - 0.9*10},
		{models.Timeframe1h, 100 - 1.0*10},
		{models.Timeframe4h, 100 - 1.5*10},
		{models.Timeframe1d, 100 - 2.0*10},
	}
	for _, tt := range tests {
		t.Run(string(tt.tf), func(t *testing.T) {
			got := ComputeLevels(models.DecisionBuy, 100, 10, DefaultRiskTable(), tt.tf)
			if got == nil {
				t.Fatal("levels is nil")
			}
			if math.Abs(got.StopLoss-tt.wantStop) > 1e-9 {
				t.Errorf("stop = %v, want %v", got.StopLoss, tt.wantStop)
			}
		})
	}
}

func TestComputeLevels_MissingTimeframeFallsBack(t *testing.T) {
	got := ComputeLevels(models.DecisionBuy, 100, 2, RiskTable{}, models.Timeframe1h)
	if got == nil {
		t.Fatal("levels is nil")
	}
	if got.StopLoss != 98 {
		t.Errorf("fallback multiplier: stop = %v, want 98", got.StopLoss)
	}
}

func TestProperty_LevelGeometry(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("BUY levels: sl < entry < tp1 < tp2, tp2 two risk units out", prop.ForAll(
		func(entry, atr float64) bool {
			levels := ComputeLevels(models.DecisionBuy, entry, atr, DefaultRiskTable(), models.Timeframe1h)
			if levels == nil {
				return false
			}
			if !(levels.StopLoss < levels.Entry && levels.Entry < levels.TakeProfit1 && levels.TakeProfit1 < levels.TakeProfit2) {
				return false
			}
			return math.Abs((levels.TakeProfit2-levels.Entry)-2*(levels.Entry-levels.StopLoss)) < 0.0001
		},
		gen.Float64Range(1, 100000),
		gen.Float64Range(0.001, 500),
	))

	properties.Property("SELL levels mirror BUY around the entry", prop.ForAll(
		func(entry, atr float64) bool {
			buy := ComputeLevels(models.DecisionBuy, entry, atr, DefaultRiskTable(), models.Timeframe4h)
			sell := ComputeLevels(models.DecisionSell, entry, atr, DefaultRiskTable(), models.Timeframe4h)
			if buy == nil || sell == nil {
				return false
			}
			return math.Abs((buy.Entry-buy.StopLoss)-(sell.StopLoss-sell.Entry)) < 0.0001 &&
				math.Abs((buy.TakeProfit2-buy.Entry)-(sell.Entry-sell.TakeProfit2)) < 0.0001
		},
		gen.Float64Range(1, 100000),
		gen.Float64Range(0.001, 500),
	))

	properties.TestingRun(t)
}
