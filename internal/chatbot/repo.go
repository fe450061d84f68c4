package chatbot

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSessionNotFound = errors.New("chat session not found")

// SessionStatus tracks who is driving a conversation.
type SessionStatus string

const (
	// SessionBot means the bot is answering.
	SessionBot SessionStatus = "bot"
	// SessionRequested means the customer asked for staff and is waiting.
	SessionRequested SessionStatus = "requested"
	// SessionAdmin means a staff member has taken over.
	SessionAdmin SessionStatus = "admin"
	// SessionResolved means the conversation is closed.
	SessionResolved SessionStatus = "resolved"
)

type Session struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id,omitempty"`
	Status     SessionStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// Sender is who wrote a message: "customer", "bot" or "admin".
type Message struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionStore interface {
	CreateSession(ctx context.Context, customerID string) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
	SetSessionStatus(ctx context.Context, id string, st SessionStatus) error
	// ListWaiting returns sessions queued for staff, oldest first.
	ListWaiting(ctx context.Context) ([]Session, error)
	AppendMessage(ctx context.Context, m *Message) error
	Messages(ctx context.Context, sessionID string) ([]Message, error)
}

type PGStore struct{ db *pgxpool.Pool }

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{db: db} }

func (s *PGStore) CreateSession(ctx context.Context, customerID string) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sess := &Session{ID: uuid.NewString(), CustomerID: customerID, Status: SessionBot}
	err := s.db.QueryRow(ctx, `
		INSERT INTO chat_sessions (id, customer_id, status, created_at, updated_at)
		VALUES ($1, NULLIF($2,''), $3, NOW(), NOW())
		RETURNING created_at, updated_at
	`, sess.ID, customerID, sess.Status).Scan(&sess.CreatedAt, &sess.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *PGStore) GetSession(ctx context.Context, id string) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sess Session
	err := s.db.QueryRow(ctx, `
		SELECT id, COALESCE(customer_id,''), status, created_at, updated_at
		FROM chat_sessions WHERE id=$1
	`, id).Scan(&sess.ID, &sess.CustomerID, &sess.Status, &sess.CreatedAt, &sess.UpdatedAt)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (s *PGStore) SetSessionStatus(ctx context.Context, id string, st SessionStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := s.db.Exec(ctx, `
		UPDATE chat_sessions SET status=$2, updated_at=NOW() WHERE id=$1
	`, id, st)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *PGStore) ListWaiting(ctx context.Context) ([]Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT id, COALESCE(customer_id,''), status, created_at, updated_at
		FROM chat_sessions WHERE status=$1 ORDER BY updated_at
	`, SessionRequested)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.CustomerID, &sess.Status,
			&sess.CreatedAt, &sess.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func (s *PGStore) AppendMessage(ctx context.Context, m *Message) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.db.QueryRow(ctx, `
		INSERT INTO chat_messages (session_id, sender, text, created_at)
		VALUES ($1,$2,$3,NOW())
		RETURNING id, created_at
	`, m.SessionID, m.Sender, m.Text).Scan(&m.ID, &m.CreatedAt)
}

func (s *PGStore) Messages(ctx context.Context, sessionID string) ([]Message, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT id, session_id, sender, text, created_at
		FROM chat_messages WHERE session_id=$1 ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Sender, &m.Text, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
