package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "crm_api/internal/domain/customer"
)

type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

const insertCustomer = `
	INSERT INTO customers (id, name, email, phone, created_at)
	VALUES ($1, $2, $3, $4, $5);
`

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	if c == nil {
		return fmt.Errorf("customer is nil")
	}

	_, err := r.pool.Exec(ctx, insertCustomer, c.ID, c.Name, c.Email, c.Phone, c.CreatedAt)
	return err
}

// CreateAll inserts the batch inside a single transaction so the accepted
// subset becomes visible atomically.
func (r *CustomerRepository) CreateAll(ctx context.Context, customers []*domain.Customer) error {
	if len(customers) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range customers {
		if _, err := tx.Exec(ctx, insertCustomer, c.ID, c.Name, c.Email, c.Phone, c.CreatedAt); err != nil {
			return fmt.Errorf("insert customer %s: %w", c.Email, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	const query = `
		SELECT id, name, email, phone, created_at
		FROM customers
		WHERE id = $1;
	`
	return r.findOne(ctx, query, id)
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const query = `
		SELECT id, name, email, phone, created_at
		FROM customers
		WHERE email = $1;
	`
	return r.findOne(ctx, query, email)
}

func (r *CustomerRepository) findOne(ctx context.Context, query string, arg any) (*domain.Customer, error) {
	var c domain.Customer
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
