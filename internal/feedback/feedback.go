// Package feedback stores customer feedback messages.
package feedback

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Feedback struct {
	ID         int64     `json:"id"`
	CustomerID string    `json:"customer_id,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	Rating     int       `json:"rating,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Store interface {
	Create(ctx context.Context, f *Feedback) error
	List(ctx context.Context, limit int) ([]Feedback, error)
}

type PGStore struct{ db *pgxpool.Pool }

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{db: db} }

func (s *PGStore) Create(ctx context.Context, f *Feedback) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.db.QueryRow(ctx, `
		INSERT INTO feedback (customer_id, name, email, message, rating, created_at)
		VALUES (NULLIF($1,''),$2,$3,$4,$5,NOW())
		RETURNING id, created_at
	`, f.CustomerID, f.Name, f.Email, f.Message, f.Rating).Scan(&f.ID, &f.CreatedAt)
}

func (s *PGStore) List(ctx context.Context, limit int) ([]Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, COALESCE(customer_id,''), name, email, message, COALESCE(rating,0), created_at
		FROM feedback ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Feedback
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.CustomerID, &f.Name, &f.Email,
			&f.Message, &f.Rating, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
