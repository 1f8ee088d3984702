package repository

import (
	"context"
	"time"

	"crm_api/internal/domain/customer"
	"crm_api/internal/domain/order"
	"crm_api/internal/domain/product"
)

// Lookup methods return (nil, nil) when no record matches; callers branch on
// the nil entity instead of catching a not-found error.

type CustomerRepository interface {
	Create(ctx context.Context, c *customer.Customer) error
	// CreateAll writes the whole batch inside a single transaction.
	CreateAll(ctx context.Context, customers []*customer.Customer) error
	FindByID(ctx context.Context, id string) (*customer.Customer, error)
	FindByEmail(ctx context.Context, email string) (*customer.Customer, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *product.Product) error
	FindByName(ctx context.Context, name string) (*product.Product, error)
	// FilterByIDs returns the subset of products whose ids exist, in no
	// particular order. Unknown ids are simply absent from the result.
	FilterByIDs(ctx context.Context, ids []string) ([]*product.Product, error)
}

type OrderRepository interface {
	// Create writes the order and its product links inside one transaction.
	Create(ctx context.Context, o *order.Order) error
	CountAll(ctx context.Context) (int64, error)
	// FilterReminders returns orders with the given status whose order date
	// is at or after since, joined with the owning customer's email.
	FilterReminders(ctx context.Context, since time.Time, status string) ([]order.Reminder, error)
}
