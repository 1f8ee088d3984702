package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm_api/internal/domain/product"
)

func testProduct(t *testing.T, name, price string) *product.Product {
	t.Helper()
	p, err := product.New("id-"+name, name, decimal.RequireFromString(price), 5)
	require.NoError(t, err)
	return p
}

func TestNew_DerivesTotal(t *testing.T) {
	laptop := testProduct(t, "Laptop", "999.99")
	headphones := testProduct(t, "Headphones", "79.99")

	o, err := New("order-1", "cust-1", []*product.Product{laptop, headphones}, time.Time{})
	require.NoError(t, err)

	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("1079.98")),
		"got total %s", o.TotalAmount)
	assert.Len(t, o.Products, 2)
	assert.Equal(t, StatusPending, o.Status)
	assert.False(t, o.OrderDate.IsZero())
}

func TestNew_KeepsSuppliedOrderDate(t *testing.T) {
	when := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	o, err := New("order-1", "cust-1", []*product.Product{testProduct(t, "Phone", "499.99")}, when)
	require.NoError(t, err)

	assert.Equal(t, when, o.OrderDate)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("order-1", "cust-1", nil, time.Time{})
	assert.ErrorIs(t, err, ErrNoProducts)

	_, err = New("", "cust-1", []*product.Product{testProduct(t, "Phone", "499.99")}, time.Time{})
	assert.ErrorIs(t, err, ErrMissingField)
}
