package agents

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	apperrors "tahlil-bot/internal/errors"
	"tahlil-bot/internal/logging"
	"tahlil-bot/internal/models"
	"tahlil-bot/internal/store"
)

const systemPrompt = `You are a bilingual (Arabic/English) trading assistant.
You answer questions about crypto markets using your tools: price lookups,
technical analysis, news search and the knowledge base. When a tool returns a
formatted signal block, relay it verbatim and add at most one short comment.
Reply in the language the user wrote in; if unclear, reply in both Arabic and
English. Never invent prices or indicator values: always use the tools.
You provide analysis, not financial advice, and you say so when asked for
certainty.`

// Assistant routes a chat message through the LLM tool loop, maintaining
// conversation history in the store.
type Assistant struct {
	llm          LLMClient
	executor     *ToolExecutor
	store        store.ConversationStore
	historyLimit int
	logger       zerolog.Logger
}

// NewAssistant creates an assistant.
func NewAssistant(llm LLMClient, executor *ToolExecutor, st store.ConversationStore, historyLimit int, logger zerolog.Logger) *Assistant {
	if historyLimit <= 0 {
		historyLimit = 20
	}
	return &Assistant{
		llm:          llm,
		executor:     executor,
		store:        st,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// HandleMessage processes one inbound chat message and returns the reply.
// Both sides of the exchange are persisted; history persistence failures are
// logged but do not fail the reply.
func (a *Assistant) HandleMessage(ctx context.Context, chatID, text string) (string, error) {
	logger := logging.WithChat(a.logger, chatID)

	history, err := a.loadHistory(ctx, chatID)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load history")
		history = nil
	}

	trace, err := a.llm.CompleteWithTools(ctx, systemPrompt, history, text, GetToolDefinitions(), a.executor)
	if err != nil {
		return "", apperrors.NewAgentError("complete", err)
	}

	logger.Info().
		Str("event", "chat").
		Int("tool_calls", len(trace.ToolCalls)).
		Msg("Message handled")

	a.persist(ctx, chatID, "user", text)
	a.persist(ctx, chatID, "assistant", trace.Response)

	return trace.Response, nil
}

func (a *Assistant) loadHistory(ctx context.Context, chatID string) ([]openai.ChatCompletionMessage, error) {
	if a.store == nil {
		return nil, nil
	}
	msgs, err := a.store.GetRecentMessages(ctx, chatID, a.historyLimit)
	if err != nil {
		return nil, err
	}

	history := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		history = append(history, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return history, nil
}

func (a *Assistant) persist(ctx context.Context, chatID, role, content string) {
	if a.store == nil || content == "" {
		return
	}
	err := a.store.SaveMessage(ctx, &models.Message{
		ChatID:    chatID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		a.logger.Warn().Err(err).Str("chat_id", chatID).Msg("Failed to save message")
	}
}
