// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"tahlil-bot/internal/models"
)

// ConversationStore persists chat history and computed signals.
type ConversationStore interface {
	// Conversations
	SaveMessage(ctx context.Context, msg *models.Message) error
	GetRecentMessages(ctx context.Context, chatID string, limit int) ([]models.Message, error)
	ClearConversation(ctx context.Context, chatID string) error

	// Signal log
	LogSignal(ctx context.Context, res *models.SignalResult) error
	GetSignalHistory(ctx context.Context, filter SignalFilter) ([]models.SignalRecord, error)

	// Lifecycle
	Close() error
}

// SignalFilter represents filters for querying the signal log.
type SignalFilter struct {
	Symbol    string
	Timeframe models.Timeframe
	Since     time.Time
	Limit     int
}
