// Package config provides configuration management for the signal assistant.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	apperrors "tahlil-bot/internal/errors"
	"tahlil-bot/internal/models"
	"tahlil-bot/internal/signal"
)

// Config holds all application configuration.
type Config struct {
	Signals     SignalConfig      `mapstructure:"signals"`
	Provider    ProviderConfig    `mapstructure:"provider"`
	Assistant   AssistantConfig   `mapstructure:"assistant"`
	UI          UIConfig          `mapstructure:"ui"`
	Credentials Credentials       `mapstructure:"-"` // Loaded separately
}

// SignalConfig holds the tunable constants of the signal engine: the
// freshness policy and the per-timeframe risk multipliers. Both are
// calibration, kept here so recalibration never touches the algorithm.
type SignalConfig struct {
	StaleMultiple   float64            `mapstructure:"stale_multiple"`
	TooOldMultiple  float64            `mapstructure:"too_old_multiple"`
	RiskMultipliers map[string]float64 `mapstructure:"risk_multipliers"`
	CandleLimit     int                `mapstructure:"candle_limit"`
}

// ProviderConfig selects and configures the market-data source.
type ProviderConfig struct {
	Name    string `mapstructure:"name"`     // "binance" or "csv"
	BaseURL string `mapstructure:"base_url"` // override for binance REST endpoint
	CSVDir  string `mapstructure:"csv_dir"`  // directory of <SYMBOL>_<TF>.csv files
}

// AssistantConfig holds the LLM assistant configuration.
type AssistantConfig struct {
	Model         string `mapstructure:"model"`
	MaxToolRounds int    `mapstructure:"max_tool_rounds"`
	HistoryLimit  int    `mapstructure:"history_limit"`
	Language      string `mapstructure:"language"` // "ar", "en", "both"
}

// UIConfig holds terminal output configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	TimeFormat   string `mapstructure:"time_format"`
}

// Credentials holds API credentials.
type Credentials struct {
	OpenAI   OpenAICredentials   `mapstructure:"openai"`
	Telegram TelegramCredentials `mapstructure:"telegram"`
}

// OpenAICredentials holds OpenAI API credentials.
type OpenAICredentials struct {
	APIKey string `mapstructure:"api_key"`
}

// TelegramCredentials holds the bot credentials for the messaging channel.
type TelegramCredentials struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/tahlil-bot"
	}
	return filepath.Join(home, ".config", "tahlil-bot")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if werr := createTemplateConfig(configDir); werr != nil {
				return werr
			}
			// First run: template written, proceed on defaults.
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("signals.stale_multiple", 3.0)
	v.SetDefault("signals.too_old_multiple", 10.0)
	v.SetDefault("signals.candle_limit", 200)
	for tf, mult := range signal.DefaultRiskTable() {
		v.SetDefault("signals.risk_multipliers."+string(tf), mult)
	}
	v.SetDefault("provider.name", "binance")
	v.SetDefault("assistant.model", "gpt-4o")
	v.SetDefault("assistant.max_tool_rounds", 8)
	v.SetDefault("assistant.history_limit", 20)
	v.SetDefault("assistant.language", "both")
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.time_format", "15:04:05")
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createTemplateCredentials(configDir)
		}
		return err
	}

	return v.Unmarshal(creds)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Credentials.OpenAI.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Credentials.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Credentials.Telegram.ChatID = v
	}
	if v := os.Getenv("TAHLIL_PROVIDER"); v != "" {
		cfg.Provider.Name = v
	}
}

// Validate validates the configuration. The risk-multiplier table must cover
// every supported timeframe so levels and staleness stay in lock-step with
// the timeframe enum.
func (c *Config) Validate() error {
	if c.Signals.StaleMultiple <= 0 {
		return apperrors.NewValidationError("signals.stale_multiple", c.Signals.StaleMultiple, "must be positive")
	}
	if c.Signals.TooOldMultiple <= 1 {
		return apperrors.NewValidationError("signals.too_old_multiple", c.Signals.TooOldMultiple, "must be greater than 1")
	}
	if c.Signals.CandleLimit < 60 {
		return apperrors.NewValidationError("signals.candle_limit", c.Signals.CandleLimit, "must be at least 60")
	}

	for _, tf := range models.AllTimeframes {
		mult, ok := c.Signals.RiskMultipliers[string(tf)]
		if !ok {
			return apperrors.NewValidationError("signals.risk_multipliers", tf, "missing timeframe")
		}
		if mult <= 0 {
			return apperrors.NewValidationError("signals.risk_multipliers."+string(tf), mult, "must be positive")
		}
	}

	switch c.Provider.Name {
	case "binance", "csv":
	default:
		return apperrors.NewValidationError("provider.name", c.Provider.Name, "must be 'binance' or 'csv'")
	}

	switch c.Assistant.Language {
	case "ar", "en", "both":
	default:
		return apperrors.NewValidationError("assistant.language", c.Assistant.Language, "must be 'ar', 'en' or 'both'")
	}

	return nil
}

// RiskTable converts the configured multipliers into the engine's table.
func (c *Config) RiskTable() signal.RiskTable {
	table := make(signal.RiskTable, len(c.Signals.RiskMultipliers))
	for tf, mult := range c.Signals.RiskMultipliers {
		table[models.Timeframe(tf)] = mult
	}
	return table
}
