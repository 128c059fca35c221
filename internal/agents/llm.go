// Package agents provides the LLM assistant loop and its tool surface.
package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// LLMClient abstracts the chat-completion backend.
type LLMClient interface {
	Complete(ctx context.Context, systemPrompt string, history []openai.ChatCompletionMessage, userPrompt string) (string, error)
	CompleteWithTools(ctx context.Context, systemPrompt string, history []openai.ChatCompletionMessage, userPrompt string, tools []openai.Tool, executor ToolExecutorInterface) (*ToolTrace, error)
}

// ToolExecutorInterface executes one named tool call.
type ToolExecutorInterface interface {
	ExecuteTool(ctx context.Context, toolName string, args json.RawMessage) (string, error)
}

// ToolCallLog represents a single tool call in the assistant's reasoning.
type ToolCallLog struct {
	ToolName  string
	Arguments string
	Result    string
}

// ToolTrace captures the tool calls made on the way to a final response.
type ToolTrace struct {
	ToolCalls []ToolCallLog
	Response  string
}

// OpenAIClient implements LLMClient using the OpenAI API.
type OpenAIClient struct {
	client    *openai.Client
	model     string
	maxRounds int
}

// NewOpenAIClient creates a new OpenAI LLM client.
func NewOpenAIClient(apiKey, model string, maxRounds int) *OpenAIClient {
	if maxRounds <= 0 {
		maxRounds = 8
	}
	return &OpenAIClient{
		client:    openai.NewClient(apiKey),
		model:     model,
		maxRounds: maxRounds,
	}
}

// Complete sends a prompt with history and returns the response.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt string, history []openai.ChatCompletionMessage, userPrompt string) (string, error) {
	messages := buildMessages(systemPrompt, history, userPrompt)
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	return resp.Choices[0].Message.Content, nil
}

// CompleteWithTools runs the tool-calling loop: the model may request tool
// executions for a bounded number of rounds before it must answer.
func (c *OpenAIClient) CompleteWithTools(ctx context.Context, systemPrompt string, history []openai.ChatCompletionMessage, userPrompt string, tools []openai.Tool, executor ToolExecutorInterface) (*ToolTrace, error) {
	messages := buildMessages(systemPrompt, history, userPrompt)
	trace := &ToolTrace{ToolCalls: make([]ToolCallLog, 0)}

	for round := 0; round < c.maxRounds; round++ {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    c.model,
			Messages: messages,
			Tools:    tools,
		})
		if err != nil {
			return nil, fmt.Errorf("openai completion failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("no response from openai")
		}

		choice := resp.Choices[0]
		if len(choice.Message.ToolCalls) == 0 {
			trace.Response = choice.Message.Content
			return trace, nil
		}

		messages = append(messages, choice.Message)

		for _, toolCall := range choice.Message.ToolCalls {
			result, err := executor.ExecuteTool(ctx, toolCall.Function.Name, json.RawMessage(toolCall.Function.Arguments))
			if err != nil {
				result = fmt.Sprintf("Error executing tool %s: %v", toolCall.Function.Name, err)
			}

			trace.ToolCalls = append(trace.ToolCalls, ToolCallLog{
				ToolName:  toolCall.Function.Name,
				Arguments: toolCall.Function.Arguments,
				Result:    result,
			})

			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    result,
				ToolCallID: toolCall.ID,
			})
		}
	}

	return nil, fmt.Errorf("exceeded maximum tool call iterations")
}

func buildMessages(systemPrompt string, history []openai.ChatCompletionMessage, userPrompt string) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleSystem, Content: systemPrompt,
	})
	messages = append(messages, history...)
	messages = append(messages, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser, Content: userPrompt,
	})
	return messages
}
