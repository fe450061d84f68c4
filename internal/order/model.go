package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	// PaymentCOD is cash on delivery.
	PaymentCOD PaymentMethod = "cod"
	// PaymentPayPal is the prepaid gateway. Gateway orders skip Pending
	// because payment is already confirmed at checkout.
	PaymentPayPal PaymentMethod = "paypal"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCOD || m == PaymentPayPal
}

type Order struct {
	ID int64 `json:"id"`
	// Ref is the short shareable reference shown to customers. Unique and
	// immutable once created.
	Ref               string          `json:"order_ref"`
	CustomerID        string          `json:"customer_id"`
	Email             string          `json:"email,omitempty"`
	Mobile            string          `json:"mobile,omitempty"`
	Address           string          `json:"address,omitempty"`
	Status            Status          `json:"status"`
	PaymentMethod     PaymentMethod   `json:"payment_method"`
	DeliveryFee       decimal.Decimal `json:"delivery_fee"`
	Notes             string          `json:"notes,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery_date,omitempty"`
	StatusUpdatedAt   *time.Time      `json:"status_updated_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Item is one order line. Price is the unit price captured at order time and
// never follows later catalog price changes.
type Item struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Size        string          `json:"size"`
}
