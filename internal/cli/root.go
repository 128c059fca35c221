// Package cli provides the command-line interface for the signal assistant.
package cli

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tahlil-bot/internal/agents"
	"tahlil-bot/internal/config"
	"tahlil-bot/internal/format"
	"tahlil-bot/internal/market"
	"tahlil-bot/internal/notify"
	"tahlil-bot/internal/provider"
	"tahlil-bot/internal/signal"
	"tahlil-bot/internal/store"
)

// Version information
const Version = "0.1.0"

// App holds the application dependencies.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Provider   provider.Provider
	Normalizer *market.Normalizer
	Engine     *signal.Engine
	Formatter  *format.Formatter
	Store      store.ConversationStore
	Assistant  *agents.Assistant
	Notifier   notify.Notifier
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Normalizer = market.NewNormalizer(
		market.WithStaleMultiple(cfg.Signals.StaleMultiple),
		market.WithTooOldMultiple(cfg.Signals.TooOldMultiple),
	)
	app.Engine = signal.NewEngine(app.Normalizer, cfg.RiskTable(), logger)
	app.Formatter = format.New(cfg.Assistant.Language)

	switch cfg.Provider.Name {
	case "csv":
		app.Provider = provider.NewCSVProvider(cfg.Provider.CSVDir)
	default:
		app.Provider = provider.NewBinanceProvider(cfg.Provider.BaseURL)
	}
	logger.Debug().Str("provider", app.Provider.Name()).Msg("Market data provider initialized")

	dbPath := filepath.Join(config.DefaultConfigDir(), "tahlil.db")
	if st, err := store.NewSQLiteStore(dbPath); err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, history will be unavailable")
	} else {
		app.Store = st
	}

	if cfg.Credentials.Telegram.BotToken != "" {
		app.Notifier = notify.NewTelegramNotifier(cfg.Credentials.Telegram.BotToken)
		logger.Debug().Msg("Telegram notifier initialized")
	}

	if cfg.Credentials.OpenAI.APIKey != "" {
		llm := agents.NewOpenAIClient(cfg.Credentials.OpenAI.APIKey, cfg.Assistant.Model, cfg.Assistant.MaxToolRounds)
		executor := agents.NewToolExecutor(app.Provider, app.Normalizer, app.Engine, app.Formatter,
			app.Store, cfg.Signals.CandleLimit, logger)
		app.Assistant = agents.NewAssistant(llm, executor, app.Store, cfg.Assistant.HistoryLimit, logger)
		logger.Debug().Str("model", cfg.Assistant.Model).Msg("Assistant initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "tahlil",
		Short: "Tahlil Bot - bilingual AI trading-signal assistant",
		Long: `Tahlil Bot is a bilingual (Arabic/English) trading assistant.

It normalizes OHLC candle data from market providers, computes technical
indicators (RSI, EMA, MACD, ATR), classifies BUY/SELL/NEUTRAL signals with
risk-managed levels, and answers chat questions through an AI tool loop.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Store != nil {
				app.Store.Close()
			}
		},
	}

	rootCmd.AddCommand(
		newSignalCmd(app),
		newIndicatorsCmd(app),
		newChatCmd(app),
		newHistoryCmd(app),
	)

	return rootCmd
}
