package order

// Status is the lifecycle state of an order. Orders only move forward through
// the delivery pipeline; Cancelled is an absorbing exit reachable from Pending
// only.
type Status string

const (
	StatusPending        Status = "Pending"
	StatusProcessing     Status = "Processing"
	StatusOrderConfirmed Status = "Order Confirmed"
	StatusOutForDelivery Status = "Out for Delivery"
	StatusDelivered      Status = "Delivered"
	StatusCancelled      Status = "Cancelled"
)

// forwardRank orders the pipeline states. Cancelled has no rank; it is
// handled explicitly.
var forwardRank = map[Status]int{
	StatusPending:        0,
	StatusProcessing:     1,
	StatusOrderConfirmed: 2,
	StatusOutForDelivery: 3,
	StatusDelivered:      4,
}

func (s Status) Valid() bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := forwardRank[s]
	return ok
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether to is a legal move from from: any strictly
// forward move through the pipeline, or Cancelled from Pending.
func CanTransition(from, to Status) bool {
	if to == StatusCancelled {
		return from == StatusPending
	}
	rf, okFrom := forwardRank[from]
	rt, okTo := forwardRank[to]
	return okFrom && okTo && rt > rf
}

// manualEstimateOffsets are the default estimated-delivery offsets (in days)
// assigned by staff-initiated status updates when no estimate is set yet.
var manualEstimateOffsets = map[Status]int{
	StatusProcessing:     7,
	StatusOrderConfirmed: 5,
	StatusOutForDelivery: 1,
}

// sweepEstimateOffsets are the defaults the daily sweep assigns to orders
// that have no estimated delivery date.
var sweepEstimateOffsets = map[Status]int{
	StatusPending:        7,
	StatusProcessing:     5,
	StatusOrderConfirmed: 3,
	StatusOutForDelivery: 1,
}
