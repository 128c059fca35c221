package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Tahlil Bot Configuration

[signals]
# Soft staleness threshold as a multiple of the bar duration
stale_multiple = 3.0
# Hard unusability ceiling as a multiple of the stale threshold
too_old_multiple = 10.0
# Number of candles fetched per analysis request
candle_limit = 200

# Per-timeframe ATR multipliers used to size stop-loss/take-profit distances.
# Must cover every supported timeframe.
[signals.risk_multipliers]
1m = 0.35
5m = 0.5
15m = 0.7
30m = 0.9
1h = 1.0
4h = 1.5
1d = 2.0

[provider]
# Market data source: "binance" or "csv"
name = "binance"
# Override for the Binance REST endpoint (leave empty for default)
base_url = ""
# Directory of <SYMBOL>_<TIMEFRAME>.csv files for the csv provider
csv_dir = ""

[assistant]
# LLM model to use
model = "gpt-4o"
# Maximum rounds of tool calls per message
max_tool_rounds = 8
# Conversation history messages loaded per request
history_limit = 20
# Reply language: "ar", "en", "both"
language = "both"

[ui]
# Enable colored output
color_enabled = true
# Time format
time_format = "15:04:05"
`

const credentialsTemplate = `# Tahlil Bot Credentials
# WARNING: Keep this file secure! Do not commit to version control.

[openai]
api_key = ""

[telegram]
bot_token = ""
chat_id = ""
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}

func createTemplateCredentials(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "credentials.toml")
	// Use restricted permissions for credentials file
	if err := os.WriteFile(path, []byte(credentialsTemplate), 0600); err != nil {
		return fmt.Errorf("writing credentials template: %w", err)
	}

	return nil
}
