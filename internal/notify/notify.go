// Package notify delivers formatted reply blocks to the messaging channel.
package notify

import (
	"context"
)

// Notifier sends one formatted text block to a chat.
type Notifier interface {
	Name() string
	Send(ctx context.Context, chatID, text string) error
}
