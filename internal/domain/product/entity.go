package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
}

func New(id, name string, price decimal.Decimal, stock int) (*Product, error) {
	if id == "" || name == "" {
		return nil, ErrMissingField
	}
	if !ValidPrice(price) {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	return &Product{
		ID:        id,
		Name:      name,
		Price:     price,
		Stock:     stock,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ValidPrice reports whether price is strictly positive.
func ValidPrice(price decimal.Decimal) bool {
	return price.IsPositive()
}

// ValidStock reports whether stock is absent or non-negative. An absent
// stock defaults to zero downstream.
func ValidStock(stock *int) bool {
	return stock == nil || *stock >= 0
}
