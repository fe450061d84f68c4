package order

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Store interface {
	Create(ctx context.Context, o *Order, items []Item) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	GetByRef(ctx context.Context, ref string) (*Order, error)
	Items(ctx context.Context, orderID int64) ([]Item, error)
	ListByStatus(ctx context.Context, st Status) ([]Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]Order, error)
	// ListActive returns every order not yet Delivered or Cancelled.
	ListActive(ctx context.Context) ([]Order, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
	SetStatus(ctx context.Context, id int64, st Status, at time.Time) error
	SetEstimatedDelivery(ctx context.Context, id int64, est time.Time) error
	Delete(ctx context.Context, id int64) (bool, error)
}

const orderColumns = `
	id, order_ref, customer_id, COALESCE(email,''), COALESCE(mobile,''),
	COALESCE(address,''), status, payment_method, delivery_fee::text,
	COALESCE(notes,''), estimated_delivery_date, status_updated_at,
	created_at, updated_at`

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, o *Order, items []Item) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (order_ref, customer_id, email, mobile, address, status,
		                    payment_method, delivery_fee, notes, status_updated_at,
		                    created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW(),NOW())
		RETURNING id, created_at, updated_at
	`, o.Ref, o.CustomerID, o.Email, o.Mobile, o.Address, o.Status,
		o.PaymentMethod, o.DeliveryFee, o.Notes, o.StatusUpdatedAt,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range items {
		items[i].OrderID = o.ID
		if err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, quantity, price, size)
			VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING id
		`, o.ID, items[i].ProductID, items[i].ProductName, items[i].Quantity,
			items[i].Price, items[i].Size,
		).Scan(&items[i].ID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var fee string
	if err := row.Scan(&o.ID, &o.Ref, &o.CustomerID, &o.Email, &o.Mobile,
		&o.Address, &o.Status, &o.PaymentMethod, &fee, &o.Notes,
		&o.EstimatedDelivery, &o.StatusUpdatedAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, ErrNotFound
	}
	var err error
	if o.DeliveryFee, err = decimal.NewFromString(fee); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
}

func (r *PGRepo) GetByRef(ctx context.Context, ref string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_ref=$1`, ref))
}

func (r *PGRepo) Items(ctx context.Context, orderID int64) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, price::text, COALESCE(size,'')
		FROM order_items WHERE order_id=$1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]Item, error) {
	var items []Item
	for rows.Next() {
		var it Item
		var price string
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.Quantity, &price, &it.Size); err != nil {
			return nil, err
		}
		var err error
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PGRepo) listWhere(ctx context.Context, where string, args ...any) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders `+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListByStatus(ctx context.Context, st Status) ([]Order, error) {
	return r.listWhere(ctx, `WHERE status=$1`, st)
}

func (r *PGRepo) ListByCustomer(ctx context.Context, customerID string) ([]Order, error) {
	return r.listWhere(ctx, `WHERE customer_id=$1`, customerID)
}

func (r *PGRepo) ListActive(ctx context.Context) ([]Order, error) {
	return r.listWhere(ctx, `WHERE status NOT IN ($1,$2)`, StatusDelivered, StatusCancelled)
}

func (r *PGRepo) CountByStatus(ctx context.Context) (map[Status]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[Status]int)
	for rows.Next() {
		var st Status
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, err
		}
		out[st] = n
	}
	return out, rows.Err()
}

func (r *PGRepo) SetStatus(ctx context.Context, id int64, st Status, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $2, status_updated_at = $3, updated_at = NOW()
		WHERE id = $1
	`, id, st, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) SetEstimatedDelivery(ctx context.Context, id int64, est time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET estimated_delivery_date = $2, updated_at = NOW() WHERE id = $1
	`, id, est)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// order_items go with the order (ON DELETE CASCADE)
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
