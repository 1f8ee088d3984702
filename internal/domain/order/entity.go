package order

import (
	"time"

	"github.com/shopspring/decimal"

	"crm_api/internal/domain/product"
)

// Order lifecycle labels. Orders are create-only; the reminders job filters
// on StatusPending.
const (
	StatusPending = "PENDING"
)

type Order struct {
	ID          string             `json:"id"`
	CustomerID  string             `json:"customer_id"`
	Products    []*product.Product `json:"products"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Status      string             `json:"status"`
	OrderDate   time.Time          `json:"order_date"`
}

// New builds an order linked to the given products. TotalAmount is derived
// once here, as the sum of the product prices at creation time; it is never
// recomputed afterwards.
func New(id, customerID string, products []*product.Product, orderDate time.Time) (*Order, error) {
	if id == "" || customerID == "" {
		return nil, ErrMissingField
	}
	if len(products) == 0 {
		return nil, ErrNoProducts
	}

	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}

	if orderDate.IsZero() {
		orderDate = time.Now().UTC()
	}

	return &Order{
		ID:          id,
		CustomerID:  customerID,
		Products:    products,
		TotalAmount: total,
		Status:      StatusPending,
		OrderDate:   orderDate,
	}, nil
}

// Reminder is the read model consumed by the order-reminder job.
type Reminder struct {
	OrderID       string    `json:"order_id"`
	CustomerEmail string    `json:"customer_email"`
	OrderDate     time.Time `json:"order_date"`
}
