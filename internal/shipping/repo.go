package shipping

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Rate struct {
	ID                int64           `json:"id"`
	Courier           string          `json:"courier"`
	OriginRegion      string          `json:"origin_region"`
	DestinationRegion string          `json:"destination_region"`
	WeightKg          decimal.Decimal `json:"weight_kg"`
	PricePHP          decimal.Decimal `json:"price_php"`
}

type Store interface {
	// FindFee returns the price of the smallest recorded weight tier
	// >= weightKg for the exact courier/origin/destination triple.
	FindFee(ctx context.Context, courier, origin, destination string, weightKg decimal.Decimal) (decimal.Decimal, bool, error)
	List(ctx context.Context) ([]Rate, error)
	Upsert(ctx context.Context, r *Rate) error
}

type PGStore struct{ db *pgxpool.Pool }

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{db: db} }

func (s *PGStore) FindFee(ctx context.Context, courier, origin, destination string, weightKg decimal.Decimal) (decimal.Decimal, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var price string
	err := s.db.QueryRow(ctx, `
		SELECT price_php::text
		FROM shipping_fees
		WHERE courier=$1 AND origin_region=$2 AND destination_region=$3 AND weight_kg >= $4
		ORDER BY weight_kg ASC
		LIMIT 1
	`, courier, origin, destination, weightKg).Scan(&price)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return decimal.Zero, false, err
	}
	return d, true, nil
}

func (s *PGStore) List(ctx context.Context) ([]Rate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT id, courier, origin_region, destination_region, weight_kg::text, price_php::text
		FROM shipping_fees
		ORDER BY origin_region, destination_region, weight_kg
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Rate
	for rows.Next() {
		var r Rate
		var weight, price string
		if err := rows.Scan(&r.ID, &r.Courier, &r.OriginRegion, &r.DestinationRegion, &weight, &price); err != nil {
			return nil, err
		}
		if r.WeightKg, err = decimal.NewFromString(weight); err != nil {
			return nil, err
		}
		if r.PricePHP, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PGStore) Upsert(ctx context.Context, r *Rate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.db.QueryRow(ctx, `
		INSERT INTO shipping_fees (courier, origin_region, destination_region, weight_kg, price_php)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (courier, origin_region, destination_region, weight_kg)
		DO UPDATE SET price_php = EXCLUDED.price_php
		RETURNING id
	`, r.Courier, r.OriginRegion, r.DestinationRegion, r.WeightKg, r.PricePHP).Scan(&r.ID)
}
