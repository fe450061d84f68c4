// Package cart holds per-customer shopping carts and prices them with the
// same VAT and shipping rules checkout uses.
package cart

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("cart item not found")

// Item is one cart line. A customer holds at most one line per
// product/size pair; adding the same pair again raises the quantity.
type Item struct {
	ID         int64     `json:"id"`
	CustomerID string    `json:"customer_id"`
	ProductID  string    `json:"product_id"`
	Size       string    `json:"size"`
	Quantity   int       `json:"quantity"`
	AddedAt    time.Time `json:"added_at"`
}

// Line is a priced cart line joined against the catalog.
type Line struct {
	Item
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type Store interface {
	Add(ctx context.Context, customerID, productID, size string, qty int) error
	UpdateQuantity(ctx context.Context, customerID string, itemID int64, qty int) error
	Remove(ctx context.Context, customerID string, itemID int64) (bool, error)
	Clear(ctx context.Context, customerID string) error
	List(ctx context.Context, customerID string) ([]Line, error)
}

type PGStore struct{ db *pgxpool.Pool }

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{db: db} }

func (s *PGStore) Add(ctx context.Context, customerID, productID, size string, qty int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.db.Exec(ctx, `
		INSERT INTO cart_items (customer_id, product_id, size, quantity, added_at)
		VALUES ($1,$2,$3,$4,NOW())
		ON CONFLICT (customer_id, product_id, size)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`, customerID, productID, size, qty)
	return err
}

func (s *PGStore) UpdateQuantity(ctx context.Context, customerID string, itemID int64, qty int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if qty <= 0 {
		_, err := s.Remove(ctx, customerID, itemID)
		return err
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE cart_items SET quantity=$3 WHERE id=$2 AND customer_id=$1
	`, customerID, itemID, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) Remove(ctx context.Context, customerID string, itemID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := s.db.Exec(ctx, `
		DELETE FROM cart_items WHERE id=$2 AND customer_id=$1
	`, customerID, itemID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PGStore) Clear(ctx context.Context, customerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.db.Exec(ctx, `DELETE FROM cart_items WHERE customer_id=$1`, customerID)
	return err
}

func (s *PGStore) List(ctx context.Context, customerID string) ([]Line, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT ci.id, ci.customer_id, ci.product_id, COALESCE(ci.size,''), ci.quantity,
		       ci.added_at, p.name, p.price::text
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.customer_id=$1
		ORDER BY ci.added_at
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var ln Line
		var price string
		if err := rows.Scan(&ln.ID, &ln.CustomerID, &ln.ProductID, &ln.Size,
			&ln.Quantity, &ln.AddedAt, &ln.ProductName, &price); err != nil {
			return nil, err
		}
		if ln.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		ln.LineTotal = ln.UnitPrice.Mul(decimal.NewFromInt(int64(ln.Quantity)))
		out = append(out, ln)
	}
	return out, rows.Err()
}
