package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema applies the required database schema. The UNIQUE constraint on
// customers.email is the backstop for the check-then-write uniqueness race in
// the mutation layer.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS customers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			price NUMERIC NOT NULL CHECK (price > 0),
			stock INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL REFERENCES customers(id),
			total_amount NUMERIC NOT NULL,
			status TEXT NOT NULL,
			order_date TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS order_products (
			order_id TEXT NOT NULL REFERENCES orders(id),
			product_id TEXT NOT NULL REFERENCES products(id),
			PRIMARY KEY (order_id, product_id)
		);
		CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders (order_date);
	`
	_, err := pool.Exec(ctx, stmt)
	return err
}
