package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tahlil-bot/internal/models"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Signals.StaleMultiple = 3.0
	cfg.Signals.TooOldMultiple = 10.0
	cfg.Signals.CandleLimit = 200
	cfg.Signals.RiskMultipliers = map[string]float64{
		"1m": 0.35, "5m": 0.5, "15m": 0.7, "30m": 0.9, "1h": 1.0, "4h": 1.5, "1d": 2.0,
	}
	cfg.Provider.Name = "binance"
	cfg.Assistant.Language = "both"
	return cfg
}

func TestLoad_FirstRunUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Signals.StaleMultiple != 3.0 || cfg.Signals.TooOldMultiple != 10.0 {
		t.Errorf("freshness defaults wrong: %+v", cfg.Signals)
	}
	if cfg.Signals.CandleLimit != 200 {
		t.Errorf("candle_limit = %d, want 200", cfg.Signals.CandleLimit)
	}
	if cfg.Provider.Name != "binance" {
		t.Errorf("provider = %q, want binance", cfg.Provider.Name)
	}
	if cfg.Assistant.Language != "both" {
		t.Errorf("language = %q, want both", cfg.Assistant.Language)
	}
	for _, tf := range models.AllTimeframes {
		if _, ok := cfg.Signals.RiskMultipliers[string(tf)]; !ok {
			t.Errorf("default risk multipliers missing %s", tf)
		}
	}

	// First run writes editable templates
	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("config template not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "credentials.toml")); err != nil {
		t.Errorf("credentials template not written: %v", err)
	}
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	configTOML := `
[signals]
stale_multiple = 2.0
too_old_multiple = 5.0
candle_limit = 120

[signals.risk_multipliers]
"1m" = 0.3
"5m" = 0.4
"15m" = 0.6
"30m" = 0.8
"1h" = 1.0
"4h" = 1.4
"1d" = 1.8

[provider]
name = "csv"
csv_dir = "/data/candles"

[assistant]
language = "ar"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(configTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	credsTOML := `
[openai]
api_key = "sk-test"

[telegram]
bot_token = "tok"
chat_id = "42"
`
	if err := os.WriteFile(filepath.Join(dir, "credentials.toml"), []byte(credsTOML), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Signals.StaleMultiple != 2.0 || cfg.Signals.CandleLimit != 120 {
		t.Errorf("signals = %+v", cfg.Signals)
	}
	if cfg.Provider.Name != "csv" || cfg.Provider.CSVDir != "/data/candles" {
		t.Errorf("provider = %+v", cfg.Provider)
	}
	if cfg.Assistant.Language != "ar" {
		t.Errorf("language = %q", cfg.Assistant.Language)
	}
	if cfg.Credentials.OpenAI.APIKey != "sk-test" {
		t.Errorf("api key = %q", cfg.Credentials.OpenAI.APIKey)
	}
	if cfg.Credentials.Telegram.ChatID != "42" {
		t.Errorf("chat id = %q", cfg.Credentials.Telegram.ChatID)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok-env")
	t.Setenv("TAHLIL_PROVIDER", "csv")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Credentials.OpenAI.APIKey != "sk-env" {
		t.Errorf("api key = %q, want env override", cfg.Credentials.OpenAI.APIKey)
	}
	if cfg.Credentials.Telegram.BotToken != "tok-env" {
		t.Errorf("bot token = %q, want env override", cfg.Credentials.Telegram.BotToken)
	}
	if cfg.Provider.Name != "csv" {
		t.Errorf("provider = %q, want env override", cfg.Provider.Name)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"zero stale multiple", func(c *Config) { c.Signals.StaleMultiple = 0 }, "stale_multiple"},
		{"too-old multiple at 1", func(c *Config) { c.Signals.TooOldMultiple = 1 }, "too_old_multiple"},
		{"candle limit too small", func(c *Config) { c.Signals.CandleLimit = 50 }, "candle_limit"},
		{"missing timeframe", func(c *Config) { delete(c.Signals.RiskMultipliers, "4h") }, "missing timeframe"},
		{"negative multiplier", func(c *Config) { c.Signals.RiskMultipliers["1h"] = -1 }, "must be positive"},
		{"bad provider", func(c *Config) { c.Provider.Name = "kraken" }, "provider"},
		{"bad language", func(c *Config) { c.Assistant.Language = "fr" }, "language"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRiskTable(t *testing.T) {
	cfg := validConfig()
	table := cfg.RiskTable()
	if got := table[models.Timeframe1h]; got != 1.0 {
		t.Errorf("1h multiplier = %v, want 1.0", got)
	}
	if got := table[models.Timeframe1d]; got != 2.0 {
		t.Errorf("1d multiplier = %v, want 2.0", got)
	}
	if len(table) != len(models.AllTimeframes) {
		t.Errorf("table size = %d, want %d", len(table), len(models.AllTimeframes))
	}
}
