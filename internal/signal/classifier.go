// Package signal classifies directional trading signals and derives
// risk-managed price levels from indicator snapshots.
package signal

import (
	"tahlil-bot/internal/models"
)

// RSI thresholds of the decision rule. These are calibration constants, not
// incidental values: the BUY side requires RSI to sit outside a one-point
// band around 55, the SELL side requires RSI at or below 45.
const (
	RSIBuyCenter = 55.0
	RSIBuyBand   = 1.0
	RSISellMax   = 45.0
)

// Classify applies the fixed decision rule to the latest indicator values.
// BUY and SELL conditions are independent full-predicate checks with no
// partial scoring; anything else is NEUTRAL. The close/EMA50 comparisons make
// the two predicates mutually exclusive.
func Classify(snap *models.IndicatorSnapshot) models.Decision {
	buy := snap.Close > snap.EMA50 &&
		snap.EMA20 > snap.EMA50 &&
		rsiOutsideBuyBand(snap.RSI14) &&
		snap.MACDLine > snap.MACDSignal

	if buy {
		return models.DecisionBuy
	}

	sell := snap.Close < snap.EMA50 &&
		snap.EMA20 < snap.EMA50 &&
		snap.RSI14 <= RSISellMax &&
		snap.MACDLine < snap.MACDSignal

	if sell {
		return models.DecisionSell
	}
	return models.DecisionNeutral
}

func rsiOutsideBuyBand(rsi float64) bool {
	diff := rsi - RSIBuyCenter
	if diff < 0 {
		diff = -diff
	}
	return diff > RSIBuyBand
}
