package signal

import (
	"tahlil-bot/internal/models"
)

// RiskTable maps a timeframe to the multiplier that scales ATR into one risk
// unit. Smaller timeframes get smaller multipliers. The table is tunable
// configuration; DefaultRiskTable is the shipped calibration.
type RiskTable map[models.Timeframe]float64

// DefaultRiskTable returns the default per-timeframe risk multipliers.
func DefaultRiskTable() RiskTable {
	return RiskTable{
		models.Timeframe1m:  0.35,
		models.Timeframe5m:  0.5,
		models.Timeframe15m: 0.7,
		models.Timeframe30m: 0.9,
		models.Timeframe1h:  1.0,
		models.Timeframe4h:  1.5,
		models.Timeframe1d:  2.0,
	}
}

// ComputeLevels derives entry/stop/target prices from the decision, the
// latest close and the ATR-scaled risk unit. Returns nil for NEUTRAL: levels
// exist exactly when a direction was called. The second take-profit always
// sits two risk units from entry, mirroring the stop on the opposite side.
func ComputeLevels(decision models.Decision, entryClose, atr float64, table RiskTable, tf models.Timeframe) *models.Levels {
	if decision == models.DecisionNeutral {
		return nil
	}

	mult, ok := table[tf]
	if !ok {
		mult = 1.0
	}
	riskUnit := mult * atr

	if decision == models.DecisionBuy {
		return &models.Levels{
			Entry:       entryClose,
			StopLoss:    entryClose - riskUnit,
			TakeProfit1: entryClose + riskUnit,
			TakeProfit2: entryClose + 2*riskUnit,
		}
	}
	return &models.Levels{
		Entry:       entryClose,
		StopLoss:    entryClose + riskUnit,
		TakeProfit1: entryClose - riskUnit,
		TakeProfit2: entryClose - 2*riskUnit,
	}
}
