package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(f *fixture, st Status, createdDaysAgo int, est *time.Time) *Order {
	f.orders.seq++
	id := f.orders.seq
	created := f.clock.now.AddDate(0, 0, -createdDaysAgo)
	statusAt := created
	o := &Order{
		ID: id, Ref: NewRef(), CustomerID: "cust-1",
		Status: st, PaymentMethod: PaymentCOD,
		EstimatedDelivery: est,
		StatusUpdatedAt:   &statusAt,
		CreatedAt:         created, UpdatedAt: created,
	}
	f.orders.orders[id] = o
	f.orders.items[id] = []Item{{
		ID: 1, OrderID: id, ProductID: "p1", ProductName: "Home Jersey",
		Quantity: 2, Price: d("899.00"), Size: "M",
	}}
	return o
}

func TestSweep_AssignsDefaultEstimate(t *testing.T) {
	f := newFixture(t)
	// Processing order, 2 days old, no estimate yet.
	o := seedOrder(f, StatusProcessing, 2, nil)

	res, err := f.engine.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Scanned)

	cur, _ := f.orders.GetByID(context.Background(), o.ID)
	require.NotNil(t, cur.EstimatedDelivery)
	// Processing default is today + 5 days, date-aligned.
	wantEst := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, wantEst, *cur.EstimatedDelivery)
	// Two days since creation also advances it one step in the same run.
	assert.Equal(t, StatusOrderConfirmed, cur.Status)
	assert.Equal(t, 1, res.Advanced)
}

func TestSweep_MeasuresAgeFromCreation(t *testing.T) {
	f := newFixture(t)
	// Created 2 days ago, moved to Processing only yesterday. Age since
	// creation is what counts, so it confirms today regardless.
	o := seedOrder(f, StatusProcessing, 2, nil)
	movedAt := f.clock.now.AddDate(0, 0, -1)
	o.StatusUpdatedAt = &movedAt

	res, err := f.engine.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Advanced)

	cur, _ := f.orders.GetByID(context.Background(), o.ID)
	assert.Equal(t, StatusOrderConfirmed, cur.Status)
}

func TestSweep_PendingAdvancesAfterOneDay(t *testing.T) {
	f := newFixture(t)
	fresh := seedOrder(f, StatusPending, 0, nil)
	stale := seedOrder(f, StatusPending, 1, nil)

	res, err := f.engine.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Scanned)
	assert.Equal(t, 1, res.Advanced)

	curFresh, _ := f.orders.GetByID(context.Background(), fresh.ID)
	curStale, _ := f.orders.GetByID(context.Background(), stale.ID)
	assert.Equal(t, StatusPending, curFresh.Status)
	assert.Equal(t, StatusProcessing, curStale.Status)
}

func TestSweep_OutForDeliveryDeliversOnEstimateDay(t *testing.T) {
	f := newFixture(t)
	f.stock.qty["Home Jersey - M"] = 10

	estToday := f.clock.now
	o := seedOrder(f, StatusOutForDelivery, 1, &estToday)

	res, err := f.engine.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Advanced)

	cur, _ := f.orders.GetByID(context.Background(), o.ID)
	assert.Equal(t, StatusDelivered, cur.Status)
	// Ledger reconciled on automatic delivery too.
	assert.Equal(t, 8, f.stock.qty["Home Jersey - M"])
}

func TestSweep_OutForDeliveryWaitsForEstimate(t *testing.T) {
	f := newFixture(t)
	f.stock.qty["Home Jersey - M"] = 10

	estTomorrow := f.clock.now.AddDate(0, 0, 1)
	o := seedOrder(f, StatusOutForDelivery, 1, &estTomorrow)

	res, err := f.engine.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Advanced)

	cur, _ := f.orders.GetByID(context.Background(), o.ID)
	assert.Equal(t, StatusOutForDelivery, cur.Status)
	assert.Equal(t, 10, f.stock.qty["Home Jersey - M"])
}

func TestSweep_ConfirmedMovesOutWhenEstimateNear(t *testing.T) {
	f := newFixture(t)
	estTomorrow := f.clock.now.AddDate(0, 0, 1)
	near := seedOrder(f, StatusOrderConfirmed, 3, &estTomorrow)
	estFar := f.clock.now.AddDate(0, 0, 4)
	far := seedOrder(f, StatusOrderConfirmed, 3, &estFar)

	_, err := f.engine.Sweep(context.Background())
	require.NoError(t, err)

	curNear, _ := f.orders.GetByID(context.Background(), near.ID)
	curFar, _ := f.orders.GetByID(context.Background(), far.ID)
	assert.Equal(t, StatusOutForDelivery, curNear.Status)
	assert.Equal(t, StatusOrderConfirmed, curFar.Status)
}

func TestSweep_InsufficientStockSkipsOrderAndContinues(t *testing.T) {
	f := newFixture(t)
	f.stock.qty["Home Jersey - M"] = 1 // order needs 2

	estToday := f.clock.now
	blocked := seedOrder(f, StatusOutForDelivery, 1, &estToday)
	healthy := seedOrder(f, StatusPending, 1, nil)

	res, err := f.engine.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Advanced)

	curBlocked, _ := f.orders.GetByID(context.Background(), blocked.ID)
	curHealthy, _ := f.orders.GetByID(context.Background(), healthy.ID)
	assert.Equal(t, StatusOutForDelivery, curBlocked.Status, "blocked order stays put")
	assert.Equal(t, StatusProcessing, curHealthy.Status, "sweep keeps going")
	assert.Equal(t, 1, f.stock.qty["Home Jersey - M"])
}

func TestSweep_TerminalOrdersIgnored(t *testing.T) {
	f := newFixture(t)
	seedOrder(f, StatusDelivered, 5, nil)
	seedOrder(f, StatusCancelled, 5, nil)

	res, err := f.engine.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Scanned)
}
