package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	domain "crm_api/internal/domain/order"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create writes the order row and its product links in one transaction.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertOrder = `
		INSERT INTO orders (id, customer_id, total_amount, status, order_date)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := tx.Exec(ctx, insertOrder, o.ID, o.CustomerID, o.TotalAmount, o.Status, o.OrderDate); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	const insertLink = `
		INSERT INTO order_products (order_id, product_id)
		VALUES ($1, $2);
	`
	for _, p := range o.Products {
		if _, err := tx.Exec(ctx, insertLink, o.ID, p.ID); err != nil {
			return fmt.Errorf("link product %s: %w", p.ID, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *OrderRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders;`).Scan(&count)
	return count, err
}

func (r *OrderRepository) FilterReminders(ctx context.Context, since time.Time, status string) ([]domain.Reminder, error) {
	const query = `
		SELECT o.id, c.email, o.order_date
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.order_date >= $1 AND o.status = $2
		ORDER BY o.order_date;
	`
	rows, err := r.pool.Query(ctx, query, since, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []domain.Reminder
	for rows.Next() {
		var rem domain.Reminder
		if err := rows.Scan(&rem.OrderID, &rem.CustomerEmail, &rem.OrderDate); err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}
