package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates the requested thread or message does not exist.
var ErrNotFound = errors.New("not found")

// Role labels who wrote a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Thread is one deck generation conversation.
type Thread struct {
	ID           string
	Topic        string
	TemplatePath string
	LastJSON     string // the last accepted deck JSON, for refinement
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Message is one turn of a thread.
type Message struct {
	ID        string
	ThreadID  string
	Seq       int
	Role      Role
	Content   string
	CreatedAt time.Time
}

// Store persists threads and messages in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store over an open database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateThread starts a new thread for a topic and returns it.
func (s *Store) CreateThread(ctx context.Context, topic, templatePath string) (*Thread, error) {
	now := time.Now().UTC()
	t := &Thread{
		ID:           uuid.NewString(),
		Topic:        topic,
		TemplatePath: templatePath,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	query := `INSERT INTO threads (id, topic, template_path, last_json, created_at, updated_at)
		VALUES (?, ?, ?, '', ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		t.ID, t.Topic, t.TemplatePath,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("inserting thread: %w", err)
	}
	return t, nil
}

// GetThread loads one thread by ID.
func (s *Store) GetThread(ctx context.Context, id string) (*Thread, error) {
	query := `SELECT id, topic, template_path, last_json, created_at, updated_at
		FROM threads WHERE id = ?`
	return s.scanThread(s.db.QueryRowContext(ctx, query, id))
}

// ListThreads returns threads most recently updated first.
func (s *Store) ListThreads(ctx context.Context, limit int) ([]*Thread, error) {
	if limit <= 0 {
		limit = -1 // no limit
	}
	query := `SELECT id, topic, template_path, last_json, created_at, updated_at
		FROM threads ORDER BY updated_at DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing threads: %w", err)
	}
	defer rows.Close()

	var threads []*Thread
	for rows.Next() {
		t, err := scanThreadRow(rows)
		if err != nil {
			return nil, err
		}
		threads = append(threads, t)
	}
	return threads, rows.Err()
}

// SetLastJSON records the latest accepted deck JSON on a thread.
func (s *Store) SetLastJSON(ctx context.Context, threadID, lastJSON string) error {
	query := `UPDATE threads SET last_json = ?, updated_at = ? WHERE id = ?`
	res, err := s.db.ExecContext(ctx, query, lastJSON, time.Now().UTC().Format(time.RFC3339Nano), threadID)
	if err != nil {
		return fmt.Errorf("updating thread: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating thread: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("thread %s: %w", threadID, ErrNotFound)
	}
	return nil
}

// DeleteThread removes a thread and, through the foreign key, its messages.
func (s *Store) DeleteThread(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM threads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting thread: %w", err)
	}
	return nil
}

// AppendMessage adds the next message to a thread.
func (s *Store) AppendMessage(ctx context.Context, threadID string, role Role, content string) (*Message, error) {
	now := time.Now().UTC()
	m := &Message{
		ID:        uuid.NewString(),
		ThreadID:  threadID,
		Role:      role,
		Content:   content,
		CreatedAt: now,
	}

	query := `INSERT INTO messages (id, thread_id, seq, role, content, created_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE thread_id = ?), ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		m.ID, threadID, threadID, string(role), content, now.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("inserting message: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `SELECT seq FROM messages WHERE id = ?`, m.ID)
	if err := row.Scan(&m.Seq); err != nil {
		return nil, fmt.Errorf("reading message seq: %w", err)
	}
	return m, nil
}

// Messages returns a thread's messages oldest first.
func (s *Store) Messages(ctx context.Context, threadID string) ([]*Message, error) {
	query := `SELECT id, thread_id, seq, role, content, created_at
		FROM messages WHERE thread_id = ? ORDER BY seq`
	rows, err := s.db.QueryContext(ctx, query, threadID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var m Message
		var role, createdAtStr string
		if err := rows.Scan(&m.ID, &m.ThreadID, &m.Seq, &role, &m.Content, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		m.Role = Role(role)
		m.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAtStr)
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// CountMessages reports how many messages a thread holds.
func (s *Store) CountMessages(ctx context.Context, threadID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE thread_id = ?`, threadID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting messages: %w", err)
	}
	return n, nil
}

// UserMessages returns only the user turns of a thread, oldest first.
func (s *Store) UserMessages(ctx context.Context, threadID string) ([]string, error) {
	messages, err := s.Messages(ctx, threadID)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, m := range messages {
		if m.Role == RoleUser {
			out = append(out, m.Content)
		}
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanThread(row *sql.Row) (*Thread, error) {
	t, err := scanThreadRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("thread: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning thread: %w", err)
	}
	return t, nil
}

func scanThreadRow(row rowScanner) (*Thread, error) {
	var t Thread
	var createdAtStr, updatedAtStr string
	err := row.Scan(&t.ID, &t.Topic, &t.TemplatePath, &t.LastJSON, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAtStr)
	t.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAtStr)
	return &t, nil
}
