// Package order implements the order lifecycle: checkout, staff status
// updates with inventory reconciliation, cancellation, and the daily sweep
// that nudges stale orders forward.
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/worksteamwear/storefront/internal/catalog"
	"github.com/worksteamwear/storefront/internal/config"
	"github.com/worksteamwear/storefront/internal/inventory"
	"github.com/worksteamwear/storefront/internal/notify"
	"github.com/worksteamwear/storefront/internal/shipping"
)

// Clock abstracts time.Now so estimate and sweep logic is testable.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type Engine struct {
	orders   Store
	stock    inventory.Store
	products catalog.Repository
	shipping *shipping.Service
	notifier notify.Notifier
	settings config.Settings
	clock    Clock
	log      *zap.Logger
}

func NewEngine(orders Store, stock inventory.Store, products catalog.Repository,
	ship *shipping.Service, notifier notify.Notifier, settings config.Settings,
	clock Clock, log *zap.Logger) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Engine{
		orders:   orders,
		stock:    stock,
		products: products,
		shipping: ship,
		notifier: notifier,
		settings: settings,
		clock:    clock,
		log:      log,
	}
}

// Line is one requested product at checkout.
type Line struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
}

type PlaceOrderInput struct {
	CustomerID    string
	Email         string
	Mobile        string
	Address       string
	Region        string
	PaymentMethod PaymentMethod
	Lines         []Line
}

// PlaceOrder creates an order from the given lines, snapshotting product names
// and unit prices from the catalog. Stock decrements at checkout are best
// effort: shortfalls and missing ledger rows are reported as warnings but
// never block the sale.
func (e *Engine) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*Order, []Item, error) {
	if len(in.Lines) == 0 {
		return nil, nil, ErrNoItems
	}
	if !in.PaymentMethod.Valid() {
		return nil, nil, fmt.Errorf("unsupported payment method %q", in.PaymentMethod)
	}

	items := make([]Item, 0, len(in.Lines))
	for _, ln := range in.Lines {
		p, err := e.products.GetByID(ctx, ln.ProductID)
		if err != nil {
			return nil, nil, fmt.Errorf("product %s: %w", ln.ProductID, err)
		}
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, nil, fmt.Errorf("product %s price: %w", ln.ProductID, err)
		}
		size := ln.Size
		if size == "" {
			size = p.Size
		}
		items = append(items, Item{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    ln.Quantity,
			Price:       price,
			Size:        size,
		})
	}

	now := e.clock.Now()
	initial := StatusPending
	if in.PaymentMethod == PaymentPayPal {
		initial = StatusProcessing
	}
	ref := NewRef()

	o := &Order{
		Ref:             ref,
		CustomerID:      in.CustomerID,
		Email:           in.Email,
		Mobile:          in.Mobile,
		Address:         in.Address,
		Status:          initial,
		PaymentMethod:   in.PaymentMethod,
		DeliveryFee:     e.shipping.CheckoutFee(ctx, in.Region),
		Notes:           "Order Group ID: " + ref,
		StatusUpdatedAt: &now,
	}
	if err := e.orders.Create(ctx, o, items); err != nil {
		return nil, nil, err
	}

	// Checkout stock adjustments happen after the order is committed so a
	// ledger problem never loses a sale.
	for _, it := range items {
		key := inventory.Key(it.ProductName, it.Size)
		rep, err := e.stock.DecrementAll(ctx, []inventory.Need{{Key: key, Qty: it.Quantity}})
		switch {
		case err != nil:
			e.log.Warn("checkout stock decrement failed",
				zap.String("order_ref", o.Ref), zap.String("key", key), zap.Error(err))
		case len(rep.Missing) > 0:
			e.notifier.Warn(ctx, fmt.Sprintf("No inventory item found for %s", key))
		case !rep.Applied:
			for _, s := range rep.Shortages {
				e.notifier.Warn(ctx, fmt.Sprintf(
					"Insufficient stock for %s: need %d, have %d", s.Key, s.Required, s.Available))
			}
		}
		if err := e.products.DecrementQuantity(ctx, it.ProductID, it.Quantity); err != nil {
			e.log.Warn("product quantity decrement failed",
				zap.String("order_ref", o.Ref), zap.String("product_id", it.ProductID), zap.Error(err))
		}
	}

	e.notifier.Success(ctx, fmt.Sprintf("Order %s placed (%s)", o.Ref, o.Status))
	return o, items, nil
}

// UpdateStatus moves one order to target, enforcing the forward-only pipeline.
// Moving to Delivered decrements the stock ledger first; if any line has
// insufficient stock the status does not change and an
// *InsufficientStockError is returned.
func (e *Engine) UpdateStatus(ctx context.Context, id int64, target Status) (*Order, error) {
	if !target.Valid() {
		return nil, ErrUnknownStatus
	}
	o, err := e.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == StatusCancelled {
		return e.cancel(ctx, o)
	}
	if !CanTransition(o.Status, target) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.Status, target)
	}

	if target == StatusDelivered {
		items, err := e.orders.Items(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		if err := e.reconcile(ctx, aggregateNeeds(items)); err != nil {
			return nil, err
		}
	}

	now := e.clock.Now()
	if o.EstimatedDelivery == nil {
		if days, ok := manualEstimateOffsets[target]; ok {
			est := now.AddDate(0, 0, days)
			if err := e.orders.SetEstimatedDelivery(ctx, o.ID, est); err != nil {
				return nil, err
			}
			o.EstimatedDelivery = &est
		}
	}
	if err := e.orders.SetStatus(ctx, o.ID, target, now); err != nil {
		return nil, err
	}
	o.Status = target
	o.StatusUpdatedAt = &now

	e.notifier.Success(ctx, fmt.Sprintf("Order %s moved to %s", o.Ref, target))
	return o, nil
}

// BulkUpdateStatus moves every listed order to target in one operation. The
// batch is all or nothing: one unknown id or illegal transition rejects the
// whole request, and a Delivered batch decrements inventory once with the
// needs of all orders combined.
func (e *Engine) BulkUpdateStatus(ctx context.Context, ids []int64, target Status) ([]Order, error) {
	if !target.Valid() {
		return nil, ErrUnknownStatus
	}
	if target == StatusCancelled {
		return nil, ErrNoBulkCancel
	}

	loaded := make([]*Order, 0, len(ids))
	for _, id := range ids {
		o, err := e.orders.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", id, err)
		}
		if !CanTransition(o.Status, target) {
			return nil, fmt.Errorf("order %s: %w: %s to %s", o.Ref, ErrInvalidTransition, o.Status, target)
		}
		loaded = append(loaded, o)
	}

	if target == StatusDelivered {
		var all []Item
		for _, o := range loaded {
			items, err := e.orders.Items(ctx, o.ID)
			if err != nil {
				return nil, err
			}
			all = append(all, items...)
		}
		if err := e.reconcile(ctx, aggregateNeeds(all)); err != nil {
			return nil, err
		}
	}

	now := e.clock.Now()
	out := make([]Order, 0, len(loaded))
	for _, o := range loaded {
		if o.EstimatedDelivery == nil {
			if days, ok := manualEstimateOffsets[target]; ok {
				est := now.AddDate(0, 0, days)
				if err := e.orders.SetEstimatedDelivery(ctx, o.ID, est); err != nil {
					return nil, err
				}
				o.EstimatedDelivery = &est
			}
		}
		if err := e.orders.SetStatus(ctx, o.ID, target, now); err != nil {
			return nil, err
		}
		o.Status = target
		o.StatusUpdatedAt = &now
		out = append(out, *o)
	}

	e.notifier.Success(ctx, fmt.Sprintf("%d orders moved to %s", len(out), target))
	return out, nil
}

// Cancel cancels a Pending order and restores the reserved product
// quantities. Orders in any other state cannot be cancelled.
func (e *Engine) Cancel(ctx context.Context, id int64) (*Order, error) {
	o, err := e.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.cancel(ctx, o)
}

func (e *Engine) cancel(ctx context.Context, o *Order) (*Order, error) {
	if o.Status != StatusPending {
		return nil, ErrNotCancellable
	}
	items, err := e.orders.Items(ctx, o.ID)
	if err != nil {
		return nil, err
	}

	restock := make(map[string]int, len(items))
	for _, it := range items {
		restock[it.ProductID] += it.Quantity
	}
	if err := e.products.Restock(ctx, restock); err != nil {
		return nil, err
	}
	for _, it := range items {
		key := inventory.Key(it.ProductName, it.Size)
		if err := e.stock.Restock(ctx, key, it.Quantity); err != nil {
			e.log.Warn("ledger restock failed",
				zap.String("order_ref", o.Ref), zap.String("key", key), zap.Error(err))
		}
	}

	now := e.clock.Now()
	if err := e.orders.SetStatus(ctx, o.ID, StatusCancelled, now); err != nil {
		return nil, err
	}
	o.Status = StatusCancelled
	o.StatusUpdatedAt = &now

	e.notifier.Success(ctx, fmt.Sprintf("Order %s cancelled, stock restored", o.Ref))
	return o, nil
}

// aggregateNeeds collapses order items into per-ledger-key quantities so a
// batch with repeated product/size pairs is checked against stock once.
func aggregateNeeds(items []Item) []inventory.Need {
	byKey := make(map[string]int)
	var keys []string
	for _, it := range items {
		k := inventory.Key(it.ProductName, it.Size)
		if _, seen := byKey[k]; !seen {
			keys = append(keys, k)
		}
		byKey[k] += it.Quantity
	}
	needs := make([]inventory.Need, 0, len(keys))
	for _, k := range keys {
		needs = append(needs, inventory.Need{Key: k, Qty: byKey[k]})
	}
	return needs
}

// reconcile applies the needs against the stock ledger. Missing ledger rows
// raise warnings only; shortages abort with an *InsufficientStockError and
// leave the ledger untouched.
func (e *Engine) reconcile(ctx context.Context, needs []inventory.Need) error {
	if len(needs) == 0 {
		return nil
	}
	rep, err := e.stock.DecrementAll(ctx, needs)
	if err != nil {
		return err
	}
	for _, key := range rep.Missing {
		e.notifier.Warn(ctx, fmt.Sprintf("No inventory item found for %s", key))
	}
	if !rep.Applied {
		for _, s := range rep.Shortages {
			e.notifier.Error(ctx, fmt.Sprintf(
				"Insufficient stock for %s: need %d, have %d", s.Key, s.Required, s.Available))
		}
		return &InsufficientStockError{Shortages: rep.Shortages}
	}
	for _, n := range needs {
		e.notifier.Success(ctx, fmt.Sprintf("Inventory updated: %s reduced by %d", n.Key, n.Qty))
	}
	return nil
}
