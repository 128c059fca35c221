package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "tahlil-bot/internal/errors"
)

const defaultTelegramBaseURL = "https://api.telegram.org"

// TelegramNotifier sends messages through the Telegram bot API.
type TelegramNotifier struct {
	client   *http.Client
	baseURL  string
	botToken string
}

// NewTelegramNotifier creates a Telegram notifier.
func NewTelegramNotifier(botToken string) *TelegramNotifier {
	return &TelegramNotifier{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  defaultTelegramBaseURL,
		botToken: botToken,
	}
}

func (t *TelegramNotifier) Name() string { return "telegram" }

// Send posts one message to the chat.
func (t *TelegramNotifier) Send(ctx context.Context, chatID, text string) error {
	if t.botToken == "" {
		return apperrors.ErrNotConfigured
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id": chatID,
		"text":    text,
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram send failed: status %d", resp.StatusCode)
	}
	return nil
}
