package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "tahlil-bot/internal/errors"
	"tahlil-bot/internal/models"
	"tahlil-bot/internal/store"
	"tahlil-bot/pkg/utils"
)

func newHistoryCmd(app *App) *cobra.Command {
	var (
		symbol    string
		timeframe string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previously computed signals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return apperrors.Wrap(apperrors.ErrDatabaseError, "store unavailable")
			}

			filter := store.SignalFilter{Limit: limit}
			if symbol != "" {
				filter.Symbol = strings.ToUpper(symbol)
			}
			if timeframe != "" {
				tf, ok := models.ParseTimeframe(timeframe)
				if !ok {
					return apperrors.ErrInvalidTimeframe
				}
				filter.Timeframe = tf
			}

			records, err := app.Store.GetSignalHistory(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := NewOutput(cmd, app.Config.UI.ColorEnabled)
			if len(records) == 0 {
				out.Println("No signals recorded yet.")
				return nil
			}

			out.Header(fmt.Sprintf("%-20s %-10s %-4s %-8s %-12s %-12s %-8s", "TIME (UTC)", "SYMBOL", "TF", "SIGNAL", "ENTRY", "STOP", "RISK"))
			for _, r := range records {
				entry, stop, risk := "-", "-", "-"
				if r.Decision != models.DecisionNeutral {
					entry = utils.FormatPrice(r.Entry)
					stop = utils.FormatPrice(r.StopLoss)
					if r.Entry != 0 {
						// Stop distance as a percentage of entry
						risk = utils.FormatPercent((r.Entry - r.StopLoss) / r.Entry * 100)
					}
				}
				out.Println(fmt.Sprintf("%-20s %-10s %-4s %-8s %-12s %-12s %-8s",
					r.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
					r.Symbol, r.Timeframe, r.Decision, entry, stop, risk))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "filter by symbol")
	cmd.Flags().StringVarP(&timeframe, "timeframe", "t", "", "filter by timeframe")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum rows")
	return cmd
}
