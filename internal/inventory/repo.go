// Package inventory owns the authoritative stock ledger. All decrements run
// inside a single transaction with row locks so concurrent finalizations
// cannot both pass the sufficiency check; quantities never go negative.
package inventory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("inventory item not found")
)

type Store interface {
	Get(ctx context.Context, key string) (*Item, error)
	List(ctx context.Context) ([]Item, error)
	Create(ctx context.Context, it *Item) error
	SetQuantity(ctx context.Context, id int64, quantity int) error
	Delete(ctx context.Context, id int64) (bool, error)
	// DecrementAll applies every need in one transaction, or none of them.
	DecrementAll(ctx context.Context, needs []Need) (*Report, error)
	// Restock adds quantity back to a ledger key if it exists.
	Restock(ctx context.Context, key string, qty int) error
}

type PGStore struct{ db *pgxpool.Pool }

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{db: db} }

func (s *PGStore) Get(ctx context.Context, key string) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var it Item
	err := s.db.QueryRow(ctx, `
		SELECT id, name, quantity, COALESCE(description,'')
		FROM inventory_items WHERE name=$1
	`, key).Scan(&it.ID, &it.Name, &it.Quantity, &it.Description)
	if err != nil {
		return nil, ErrNotFound
	}
	return &it, nil
}

func (s *PGStore) List(ctx context.Context) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT id, name, quantity, COALESCE(description,'')
		FROM inventory_items ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Quantity, &it.Description); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *PGStore) Create(ctx context.Context, it *Item) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.db.QueryRow(ctx, `
		INSERT INTO inventory_items (name, quantity, description)
		VALUES ($1,$2,$3) RETURNING id
	`, it.Name, it.Quantity, it.Description).Scan(&it.ID)
}

func (s *PGStore) SetQuantity(ctx context.Context, id int64, quantity int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := s.db.Exec(ctx, `
		UPDATE inventory_items SET quantity=$2 WHERE id=$1
	`, id, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := s.db.Exec(ctx, `DELETE FROM inventory_items WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DecrementAll locks each tracked row FOR UPDATE, verifies sufficiency, then
// decrements. Any shortage rolls the whole transaction back; keys without a
// ledger row are reported as Missing and skipped.
func (s *PGStore) DecrementAll(ctx context.Context, needs []Need) (*Report, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock in a stable order to avoid deadlocks between concurrent batches.
	ordered := make([]Need, len(needs))
	copy(ordered, needs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Key < ordered[j].Key })

	rep := &Report{}
	for _, n := range ordered {
		var available int
		err := tx.QueryRow(ctx, `
			SELECT quantity FROM inventory_items WHERE name=$1 FOR UPDATE
		`, n.Key).Scan(&available)
		if errors.Is(err, pgx.ErrNoRows) {
			rep.Missing = append(rep.Missing, n.Key)
			continue
		}
		if err != nil {
			return nil, err
		}
		if available < n.Qty {
			rep.Shortages = append(rep.Shortages, Shortage{
				Key: n.Key, Required: n.Qty, Available: available,
			})
			continue
		}
		if _, err := tx.Exec(ctx, `
			UPDATE inventory_items SET quantity = quantity - $2 WHERE name=$1
		`, n.Key, n.Qty); err != nil {
			return nil, err
		}
	}

	if len(rep.Shortages) > 0 {
		return rep, nil // rollback via defer
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	rep.Applied = true
	return rep, nil
}

func (s *PGStore) Restock(ctx context.Context, key string, qty int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.db.Exec(ctx, `
		UPDATE inventory_items SET quantity = quantity + $2 WHERE name=$1
	`, key, qty)
	return err
}
