package customer

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("customer not found")
	ErrAlreadyExist = errors.New("customer already exists")
)

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
	GetByEmail(ctx context.Context, email string) (*Customer, error)
	Update(ctx context.Context, c *Customer, updatePassword bool) error
	Delete(ctx context.Context, id string) (bool, error)
	// NextCode allocates the next customer code from a sequence.
	NextCode(ctx context.Context) (string, error)
}

const customerColumns = `
	id, customer_code, username, email, password_hash,
	COALESCE(first_name,''), COALESCE(last_name,''), COALESCE(mobile,''),
	COALESCE(region,''), COALESCE(province,''), COALESCE(city_municipality,''),
	COALESCE(barangay,''), COALESCE(street,''), COALESCE(postal_code,''),
	created_at, updated_at`

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, c *Customer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO customers (id, customer_code, username, email, password_hash,
		                       first_name, last_name, mobile, region, province,
		                       city_municipality, barangay, street, postal_code,
		                       created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,NOW(),NOW())
	`, c.ID, c.Code, c.Username, c.Email, c.PasswordHash,
		c.FirstName, c.LastName, c.Mobile, c.Region, c.Province,
		c.CityMun, c.Barangay, c.Street, c.PostalCode)
	if err != nil {
		// username/email carry UNIQUE constraints
		return ErrAlreadyExist
	}
	return nil
}

func (r *PGRepo) getWhere(ctx context.Context, where string, arg any) (*Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers `+where, arg)
	var c Customer
	if err := row.Scan(&c.ID, &c.Code, &c.Username, &c.Email, &c.PasswordHash,
		&c.FirstName, &c.LastName, &c.Mobile, &c.Region, &c.Province,
		&c.CityMun, &c.Barangay, &c.Street, &c.PostalCode,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Customer, error) {
	return r.getWhere(ctx, `WHERE id=$1`, id)
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (*Customer, error) {
	return r.getWhere(ctx, `WHERE email=$1`, email)
}

func (r *PGRepo) Update(ctx context.Context, c *Customer, updatePassword bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if updatePassword {
		_, err := r.db.Exec(ctx, `
			UPDATE customers
			SET username   = COALESCE(NULLIF($2, ''), username),
			    email      = COALESCE(NULLIF($3, ''), email),
			    first_name = COALESCE(NULLIF($4, ''), first_name),
			    last_name  = COALESCE(NULLIF($5, ''), last_name),
			    mobile     = COALESCE(NULLIF($6, ''), mobile),
			    region     = COALESCE(NULLIF($7, ''), region),
			    province   = COALESCE(NULLIF($8, ''), province),
			    city_municipality = COALESCE(NULLIF($9, ''), city_municipality),
			    barangay   = COALESCE(NULLIF($10, ''), barangay),
			    street     = COALESCE(NULLIF($11, ''), street),
			    postal_code = COALESCE(NULLIF($12, ''), postal_code),
			    password_hash = $13,
			    updated_at = NOW()
			WHERE id = $1
		`, c.ID, c.Username, c.Email, c.FirstName, c.LastName, c.Mobile,
			c.Region, c.Province, c.CityMun, c.Barangay, c.Street, c.PostalCode,
			c.PasswordHash)
		return err
	}

	_, err := r.db.Exec(ctx, `
		UPDATE customers
		SET username   = COALESCE(NULLIF($2, ''), username),
		    email      = COALESCE(NULLIF($3, ''), email),
		    first_name = COALESCE(NULLIF($4, ''), first_name),
		    last_name  = COALESCE(NULLIF($5, ''), last_name),
		    mobile     = COALESCE(NULLIF($6, ''), mobile),
		    region     = COALESCE(NULLIF($7, ''), region),
		    province   = COALESCE(NULLIF($8, ''), province),
		    city_municipality = COALESCE(NULLIF($9, ''), city_municipality),
		    barangay   = COALESCE(NULLIF($10, ''), barangay),
		    street     = COALESCE(NULLIF($11, ''), street),
		    postal_code = COALESCE(NULLIF($12, ''), postal_code),
		    updated_at = NOW()
		WHERE id = $1
	`, c.ID, c.Username, c.Email, c.FirstName, c.LastName, c.Mobile,
		c.Region, c.Province, c.CityMun, c.Barangay, c.Street, c.PostalCode)
	return err
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) NextCode(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var seq int64
	if err := r.db.QueryRow(ctx, `SELECT nextval('customer_code_seq')`).Scan(&seq); err != nil {
		return "", err
	}
	return FormatCode(seq), nil
}
