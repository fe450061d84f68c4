package order

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// SweepResult summarizes one sweep run.
type SweepResult struct {
	Scanned  int `json:"scanned"`
	Advanced int `json:"advanced"`
	Failed   int `json:"failed"`
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}

// Sweep walks every active order once, assigns a default estimated delivery
// date where one is missing, and advances orders whose age since creation
// has crossed the stage threshold. Each order moves at most one step per
// run. Per-order failures are logged and skipped; the sweep keeps going.
func (e *Engine) Sweep(ctx context.Context) (SweepResult, error) {
	active, err := e.orders.ListActive(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	var res SweepResult
	now := e.clock.Now()
	today := dateOnly(now)

	for i := range active {
		o := &active[i]
		res.Scanned++

		if o.EstimatedDelivery == nil {
			if days, ok := sweepEstimateOffsets[o.Status]; ok {
				est := today.AddDate(0, 0, days)
				if err := e.orders.SetEstimatedDelivery(ctx, o.ID, est); err != nil {
					e.log.Warn("sweep: set estimate failed",
						zap.String("order_ref", o.Ref), zap.Error(err))
					res.Failed++
					continue
				}
				o.EstimatedDelivery = &est
			}
		}

		daysSinceOrder := daysBetween(o.CreatedAt, now)

		var target Status
		switch o.Status {
		case StatusPending:
			if daysSinceOrder >= 1 {
				target = StatusProcessing
			}
		case StatusProcessing:
			if daysSinceOrder >= 2 {
				target = StatusOrderConfirmed
			}
		case StatusOrderConfirmed:
			if o.EstimatedDelivery != nil && daysBetween(today, *o.EstimatedDelivery) <= 1 {
				target = StatusOutForDelivery
			}
		case StatusOutForDelivery:
			if o.EstimatedDelivery != nil && !today.Before(dateOnly(*o.EstimatedDelivery)) {
				target = StatusDelivered
			}
		}
		if target == "" {
			continue
		}

		if target == StatusDelivered {
			items, err := e.orders.Items(ctx, o.ID)
			if err != nil {
				e.log.Warn("sweep: load items failed", zap.String("order_ref", o.Ref), zap.Error(err))
				res.Failed++
				continue
			}
			if err := e.reconcile(ctx, aggregateNeeds(items)); err != nil {
				e.log.Warn("sweep: inventory reconciliation failed",
					zap.String("order_ref", o.Ref), zap.Error(err))
				e.notifier.Error(ctx, fmt.Sprintf("Order %s could not be delivered: %v", o.Ref, err))
				res.Failed++
				continue
			}
		}

		if err := e.orders.SetStatus(ctx, o.ID, target, now); err != nil {
			e.log.Warn("sweep: status update failed", zap.String("order_ref", o.Ref), zap.Error(err))
			res.Failed++
			continue
		}
		o.Status = target
		o.StatusUpdatedAt = &now
		res.Advanced++
		e.log.Info("sweep: order advanced",
			zap.String("order_ref", o.Ref), zap.String("status", string(target)))
	}

	e.log.Info("sweep complete",
		zap.Int("scanned", res.Scanned),
		zap.Int("advanced", res.Advanced),
		zap.Int("failed", res.Failed))
	return res, nil
}
