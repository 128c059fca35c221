package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tahlil-bot/internal/models"
)

// SQLiteStore implements ConversationStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Conversation history, one row per message
	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		chat_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_messages_chat ON messages(chat_id, created_at);

	-- Computed signals, kept for history queries
	CREATE TABLE IF NOT EXISTS signals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		timeframe TEXT NOT NULL,
		decision TEXT NOT NULL,
		entry REAL,
		stop_loss REAL,
		tp1 REAL,
		tp2 REAL,
		age_seconds INTEGER NOT NULL,
		is_stale INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_signals_symbol ON signals(symbol, created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveMessage persists one conversation message.
func (s *SQLiteStore) SaveMessage(ctx context.Context, msg *models.Message) error {
	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (chat_id, role, content, created_at) VALUES (?, ?, ?, ?)`,
		msg.ChatID, msg.Role, msg.Content, createdAt)
	if err != nil {
		return fmt.Errorf("saving message: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		msg.ID = id
	}
	return nil
}

// GetRecentMessages returns the last `limit` messages for a chat in
// chronological order.
func (s *SQLiteStore) GetRecentMessages(ctx context.Context, chatID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, chat_id, role, content, created_at
		 FROM messages WHERE chat_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var msgs []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ChatID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse into chronological order
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// ClearConversation removes all messages of a chat.
func (s *SQLiteStore) ClearConversation(ctx context.Context, chatID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE chat_id = ?`, chatID)
	return err
}

// LogSignal records one computed signal. Level columns stay NULL for NEUTRAL.
func (s *SQLiteStore) LogSignal(ctx context.Context, res *models.SignalResult) error {
	var entry, sl, tp1, tp2 interface{}
	if res.Levels != nil {
		entry, sl, tp1, tp2 = res.Levels.Entry, res.Levels.StopLoss, res.Levels.TakeProfit1, res.Levels.TakeProfit2
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO signals (symbol, timeframe, decision, entry, stop_loss, tp1, tp2, age_seconds, is_stale)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.Symbol, string(res.Timeframe), string(res.Decision), entry, sl, tp1, tp2,
		res.AgeSeconds, boolToInt(res.IsStale))
	if err != nil {
		return fmt.Errorf("logging signal: %w", err)
	}
	return nil
}

// GetSignalHistory returns logged signals matching the filter, newest first.
func (s *SQLiteStore) GetSignalHistory(ctx context.Context, filter SignalFilter) ([]models.SignalRecord, error) {
	query := `SELECT id, symbol, timeframe, decision, entry, stop_loss, tp1, tp2, age_seconds, is_stale, created_at FROM signals`
	var conds []string
	var args []interface{}

	if filter.Symbol != "" {
		conds = append(conds, "symbol = ?")
		args = append(args, filter.Symbol)
	}
	if filter.Timeframe != "" {
		conds = append(conds, "timeframe = ?")
		args = append(args, string(filter.Timeframe))
	}
	if !filter.Since.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, filter.Since)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying signals: %w", err)
	}
	defer rows.Close()

	var records []models.SignalRecord
	for rows.Next() {
		var r models.SignalRecord
		var entry, sl, tp1, tp2 sql.NullFloat64
		var isStale int
		var tf, decision string
		if err := rows.Scan(&r.ID, &r.Symbol, &tf, &decision, &entry, &sl, &tp1, &tp2, &r.AgeSeconds, &isStale, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning signal: %w", err)
		}
		r.Timeframe = models.Timeframe(tf)
		r.Decision = models.Decision(decision)
		r.Entry = entry.Float64
		r.StopLoss = sl.Float64
		r.TP1 = tp1.Float64
		r.TP2 = tp2.Float64
		r.IsStale = isStale != 0
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
