package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tahlil-bot/internal/analysis/indicators"
	apperrors "tahlil-bot/internal/errors"
	"tahlil-bot/internal/models"
	"tahlil-bot/pkg/utils"
)

func newIndicatorsCmd(app *App) *cobra.Command {
	var timeframe string

	cmd := &cobra.Command{
		Use:   "indicators SYMBOL",
		Short: "Print the indicator snapshot for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := strings.ToUpper(args[0])
			tf, ok := models.ParseTimeframe(timeframe)
			if !ok {
				return apperrors.ErrInvalidTimeframe
			}

			out := NewOutput(cmd, app.Config.UI.ColorEnabled)
			ctx := cmd.Context()

			raw, err := app.Provider.Fetch(ctx, symbol, tf, app.Config.Signals.CandleLimit)
			if err != nil {
				return err
			}

			candles, fresh, err := app.Normalizer.Normalize(raw, tf)
			if err != nil {
				out.Println(app.Formatter.NoData(symbol, string(tf)))
				return nil
			}

			snap, err := indicators.Snapshot(candles)
			if err != nil {
				out.Println(app.Formatter.InsufficientData(symbol, string(tf), len(candles), indicators.MinCandles))
				return nil
			}

			out.Header(fmt.Sprintf("%s %s — %d candles", symbol, tf, len(candles)))
			out.Row("Close", utils.FormatPrice(snap.Close))
			out.Row("EMA(20)", utils.FormatPrice(snap.EMA20))
			out.Row("EMA(50)", utils.FormatPrice(snap.EMA50))
			out.Row("RSI(14)", fmt.Sprintf("%.2f", snap.RSI14))
			out.Row("MACD line", fmt.Sprintf("%.6f", snap.MACDLine))
			out.Row("MACD signal", fmt.Sprintf("%.6f", snap.MACDSignal))
			out.Row("MACD hist", fmt.Sprintf("%.6f", snap.MACDHist))
			out.Row("ATR(14)", utils.FormatPrice(snap.ATR14))
			out.Row("Last candle", fresh.LastCandle.Format("2006-01-02 15:04:05 UTC"))
			out.Row("Age", utils.FormatAge(fresh.AgeSeconds))
			if fresh.TooOld {
				out.Warn("data is too old to be usable for decisions")
			} else if fresh.IsStale {
				out.Warn("data is stale for this timeframe")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&timeframe, "timeframe", "t", "1h", "candle timeframe (1m, 5m, 15m, 30m, 1h, 4h, 1d)")
	return cmd
}
