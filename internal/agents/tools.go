package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	apperrors "tahlil-bot/internal/errors"
	"tahlil-bot/internal/format"
	"tahlil-bot/internal/logging"
	"tahlil-bot/internal/market"
	"tahlil-bot/internal/models"
	"tahlil-bot/internal/provider"
	"tahlil-bot/internal/signal"
	"tahlil-bot/internal/store"
)

// ToolExecutor executes assistant tool calls against the signal system.
type ToolExecutor struct {
	provider    provider.Provider
	normalizer  *market.Normalizer
	engine      *signal.Engine
	formatter   *format.Formatter
	signals     store.ConversationStore
	news        NewsSearcher
	kb          KnowledgeBase
	candleLimit int
	logger      zerolog.Logger
}

// NewToolExecutor creates a tool executor. News and knowledge-base
// collaborators are optional; their tools report not-configured when absent.
func NewToolExecutor(p provider.Provider, normalizer *market.Normalizer, engine *signal.Engine, formatter *format.Formatter, signals store.ConversationStore, candleLimit int, logger zerolog.Logger) *ToolExecutor {
	if candleLimit <= 0 {
		candleLimit = 200
	}
	return &ToolExecutor{
		provider:    p,
		normalizer:  normalizer,
		engine:      engine,
		formatter:   formatter,
		signals:     signals,
		candleLimit: candleLimit,
		logger:      logger,
	}
}

// WithNews attaches the news-search collaborator.
func (e *ToolExecutor) WithNews(n NewsSearcher) *ToolExecutor {
	e.news = n
	return e
}

// WithKnowledgeBase attaches the knowledge-base collaborator.
func (e *ToolExecutor) WithKnowledgeBase(kb KnowledgeBase) *ToolExecutor {
	e.kb = kb
	return e
}

// GetToolDefinitions returns all tool definitions for OpenAI function calling.
func GetToolDefinitions() []openai.Tool {
	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        "get_price",
				Description: "Get the latest price for a trading pair (e.g. BTCUSDT, ETHUSDT).",
				Parameters: json.RawMessage(`{
					"type": "object",
					"properties": {
						"symbol": {
							"type": "string",
							"description": "Trading pair symbol (e.g. BTCUSDT)"
						}
					},
					"required": ["symbol"]
				}`),
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        "analyze_market",
				Description: "Run full technical analysis for a trading pair: indicators (RSI, EMA, MACD, ATR), a BUY/SELL/NEUTRAL signal and entry/stop/target levels. Returns a ready-to-send bilingual text block.",
				Parameters: json.RawMessage(`{
					"type": "object",
					"properties": {
						"symbol": {
							"type": "string",
							"description": "Trading pair symbol (e.g. BTCUSDT)"
						},
						"timeframe": {
							"type": "string",
							"enum": ["1m", "5m", "15m", "30m", "1h", "4h", "1d"],
							"description": "Candle timeframe (default 1h)"
						}
					},
					"required": ["symbol"]
				}`),
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        "search_news",
				Description: "Search recent market news for a topic or coin and return a short summary.",
				Parameters: json.RawMessage(`{
					"type": "object",
					"properties": {
						"query": {
							"type": "string",
							"description": "Search query (e.g. 'bitcoin ETF')"
						}
					},
					"required": ["query"]
				}`),
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        "ask_knowledge_base",
				Description: "Answer educational trading questions (what is RSI, how do stop losses work, ...) from the knowledge base.",
				Parameters: json.RawMessage(`{
					"type": "object",
					"properties": {
						"question": {
							"type": "string",
							"description": "The user's question"
						}
					},
					"required": ["question"]
				}`),
			},
		},
	}
}

// ExecuteTool dispatches one tool call.
func (e *ToolExecutor) ExecuteTool(ctx context.Context, toolName string, args json.RawMessage) (string, error) {
	start := time.Now()
	result, err := e.dispatch(ctx, toolName, args)
	logging.LogToolCall(e.logger, toolName, string(args), time.Since(start), err)
	return result, err
}

func (e *ToolExecutor) dispatch(ctx context.Context, toolName string, args json.RawMessage) (string, error) {
	switch toolName {
	case "get_price":
		return e.getPrice(ctx, args)
	case "analyze_market":
		return e.analyzeMarket(ctx, args)
	case "search_news":
		return e.searchNews(ctx, args)
	case "ask_knowledge_base":
		return e.askKnowledgeBase(ctx, args)
	default:
		return "", fmt.Errorf("unknown tool: %s", toolName)
	}
}

func (e *ToolExecutor) getPrice(ctx context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Symbol string `json:"symbol"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	// A short 1m window is enough for a latest-price lookup.
	raw, err := e.provider.Fetch(ctx, params.Symbol, models.Timeframe1m, 2)
	logging.LogFetch(e.logger, e.provider.Name(), params.Symbol, string(models.Timeframe1m), len(raw), err)
	if err != nil {
		return "", err
	}
	candles, _, err := e.normalizer.Normalize(raw, models.Timeframe1m)
	if err != nil {
		return e.formatter.NoData(params.Symbol, string(models.Timeframe1m)), nil
	}

	last := candles[len(candles)-1]
	return e.formatter.Price(params.Symbol, last.Close, last.Timestamp), nil
}

func (e *ToolExecutor) analyzeMarket(ctx context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Symbol    string `json:"symbol"`
		Timeframe string `json:"timeframe"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if params.Timeframe == "" {
		params.Timeframe = string(models.Timeframe1h)
	}
	tf, ok := models.ParseTimeframe(params.Timeframe)
	if !ok {
		return "", apperrors.ErrInvalidTimeframe
	}

	raw, err := e.provider.Fetch(ctx, params.Symbol, tf, e.candleLimit)
	logging.LogFetch(e.logger, e.provider.Name(), params.Symbol, string(tf), len(raw), err)
	if err != nil {
		return "", err
	}

	res, snap, err := e.engine.Analyze(params.Symbol, tf, raw)
	if err != nil {
		// Typed failures become user-facing blocks; the model relays them.
		var tooOld *apperrors.TooOldError
		if apperrors.As(err, &tooOld) {
			return e.formatter.Unusable(params.Symbol, string(tf), tooOld.LastCandle, tooOld.AgeSeconds), nil
		}
		var insufficient *apperrors.InsufficientDataError
		if apperrors.As(err, &insufficient) {
			return e.formatter.InsufficientData(params.Symbol, string(tf), insufficient.Have, insufficient.Need), nil
		}
		if apperrors.Is(err, apperrors.ErrNoData) {
			return e.formatter.NoData(params.Symbol, string(tf)), nil
		}
		return "", err
	}

	if e.signals != nil {
		if err := e.signals.LogSignal(ctx, res); err != nil {
			e.logger.Warn().Err(err).Msg("Failed to log signal")
		}
	}

	return e.formatter.Signal(res, snap), nil
}

func (e *ToolExecutor) searchNews(ctx context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if e.news == nil {
		return "News search is not configured.", nil
	}
	return e.news.Search(ctx, params.Query, 5)
}

func (e *ToolExecutor) askKnowledgeBase(ctx context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Question string `json:"question"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if e.kb == nil {
		return "The knowledge base is not configured.", nil
	}
	return e.kb.Answer(ctx, params.Question)
}
