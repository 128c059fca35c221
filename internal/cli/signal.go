package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "tahlil-bot/internal/errors"
	"tahlil-bot/internal/logging"
	"tahlil-bot/internal/models"
)

func newSignalCmd(app *App) *cobra.Command {
	var (
		timeframe string
		notifyOut bool
	)

	cmd := &cobra.Command{
		Use:   "signal SYMBOL",
		Short: "Compute a trading signal for a symbol",
		Long: `Fetches candles for the symbol, computes the indicator snapshot and prints
the classified signal with entry/stop/target levels.

Examples:
  tahlil signal BTCUSDT
  tahlil signal ETHUSDT --timeframe 4h`,
		Args: cobra.ExactArgs(1),
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

			res, snap, err := app.Engine.Analyze(symbol, tf, raw)
			if err != nil {
				return renderAnalysisError(out, app, symbol, tf, err)
			}

			if app.Store != nil {
				if err := app.Store.LogSignal(ctx, res); err != nil {
					symLogger := logging.WithSymbol(app.Logger, symbol)
					symLogger.Warn().Err(err).Msg("Failed to log signal")
				}
			}

			block := app.Formatter.Signal(res, snap)
			out.Decision(res.Decision)
			out.Println(block)

			if notifyOut {
				if app.Notifier == nil {
					return apperrors.Wrap(apperrors.ErrNotConfigured, "no notifier configured")
				}
				if err := app.Notifier.Send(ctx, app.Config.Credentials.Telegram.ChatID, block); err != nil {
					return fmt.Errorf("sending notification: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&timeframe, "timeframe", "t", "1h", "candle timeframe (1m, 5m, 15m, 30m, 1h, 4h, 1d)")
	cmd.Flags().BoolVar(&notifyOut, "notify", false, "also send the signal block to the messaging channel")
	return cmd
}

// renderAnalysisError prints the user-facing block for typed analysis
// failures and returns nil; unexpected errors propagate.
func renderAnalysisError(out *Output, app *App, symbol string, tf models.Timeframe, err error) error {
	var tooOld *apperrors.TooOldError
	if apperrors.As(err, &tooOld) {
		out.Println(app.Formatter.Unusable(symbol, string(tf), tooOld.LastCandle, tooOld.AgeSeconds))
		return nil
	}
	var insufficient *apperrors.InsufficientDataError
	if apperrors.As(err, &insufficient) {
		out.Println(app.Formatter.InsufficientData(symbol, string(tf), insufficient.Have, insufficient.Need))
		return nil
	}
	if apperrors.Is(err, apperrors.ErrNoData) {
		out.Println(app.Formatter.NoData(symbol, string(tf)))
		return nil
	}
	return fmt.Errorf("analyzing %s %s: %w", symbol, tf, err)
}
