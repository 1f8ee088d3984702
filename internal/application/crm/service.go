package crm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crm_api/internal/domain/customer"
	"crm_api/internal/domain/order"
	"crm_api/internal/domain/product"
	"crm_api/internal/domain/repository"
	"crm_api/pkg/logger"
)

// Publisher emits order-created events after a successful write. Publishing
// is fire-and-forget; failures are logged, never returned to the caller.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, payload []byte) error
}

// Service implements the mutation and query operations of the CRM surface.
// Validation failures come back as error-string lists inside the result; a
// non-nil Go error means an infrastructure fault (store unreachable etc.).
type Service struct {
	customers repository.CustomerRepository
	products  repository.ProductRepository
	orders    repository.OrderRepository
	events    Publisher
	log       logger.Logger
}

func NewService(
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	events Publisher,
	log logger.Logger,
) *Service {
	return &Service{
		customers: customers,
		products:  products,
		orders:    orders,
		events:    events,
		log:       log,
	}
}

type CustomerInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone"`
}

type ProductInput struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price"`
	Stock *int            `json:"stock"`
}

type OrderInput struct {
	CustomerID string     `json:"customer_id"`
	ProductIDs []string   `json:"product_ids"`
	OrderDate  *time.Time `json:"order_date"`
}

type CreateCustomerResult struct {
	Customer *customer.Customer `json:"customer,omitempty"`
	Message  string             `json:"message"`
	Errors   []string           `json:"errors,omitempty"`
}

type BulkCreateCustomersResult struct {
	Customers []*customer.Customer `json:"customers"`
	Errors    []string             `json:"errors,omitempty"`
}

type CreateProductResult struct {
	Product *product.Product `json:"product,omitempty"`
	Errors  []string         `json:"errors,omitempty"`
}

type CreateOrderResult struct {
	Order  *order.Order `json:"order,omitempty"`
	Errors []string     `json:"errors,omitempty"`
}

// CreateCustomer runs the uniqueness and phone checks before any write; a
// customer is created only when the accumulated error list is empty.
func (s *Service) CreateCustomer(ctx context.Context, in CustomerInput) (*CreateCustomerResult, error) {
	var errs []string

	existing, err := s.customers.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup customer email: %w", err)
	}
	if existing != nil {
		errs = append(errs, "Email already exists.")
	}
	if !customer.ValidPhone(in.Phone) {
		errs = append(errs, "Invalid phone format.")
	}
	if len(errs) > 0 {
		return &CreateCustomerResult{Message: "Failed to create customer.", Errors: errs}, nil
	}

	c, err := customer.New(uuid.NewString(), in.Name, in.Email, in.Phone)
	if err != nil {
		return nil, fmt.Errorf("build customer: %w", err)
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	return &CreateCustomerResult{Customer: c, Message: "Customer created successfully."}, nil
}

// BulkCreateCustomers validates each item independently, skipping invalid
// ones with a descriptive error, then writes the surviving subset in one
// transaction. Item failures never abort the batch.
func (s *Service) BulkCreateCustomers(ctx context.Context, in []CustomerInput) (*BulkCreateCustomersResult, error) {
	accepted := make([]*customer.Customer, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	var errs []string

	for _, item := range in {
		if _, dup := seen[item.Email]; dup {
			errs = append(errs, fmt.Sprintf("Email %s already exists.", item.Email))
			continue
		}
		existing, err := s.customers.FindByEmail(ctx, item.Email)
		if err != nil {
			return nil, fmt.Errorf("lookup customer email: %w", err)
		}
		if existing != nil {
			errs = append(errs, fmt.Sprintf("Email %s already exists.", item.Email))
			continue
		}
		if !customer.ValidPhone(item.Phone) {
			errs = append(errs, fmt.Sprintf("Invalid phone format for %s.", item.Email))
			continue
		}

		c, err := customer.New(uuid.NewString(), item.Name, item.Email, item.Phone)
		if err != nil {
			return nil, fmt.Errorf("build customer: %w", err)
		}
		seen[item.Email] = struct{}{}
		accepted = append(accepted, c)
	}

	if len(accepted) > 0 {
		if err := s.customers.CreateAll(ctx, accepted); err != nil {
			return nil, fmt.Errorf("bulk create customers: %w", err)
		}
	}

	return &BulkCreateCustomersResult{Customers: accepted, Errors: errs}, nil
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*CreateProductResult, error) {
	var errs []string

	if !product.ValidPrice(in.Price) {
		errs = append(errs, "Price must be positive.")
	}
	if !product.ValidStock(in.Stock) {
		errs = append(errs, "Stock cannot be negative.")
	}
	if len(errs) > 0 {
		return &CreateProductResult{Errors: errs}, nil
	}

	stock := 0
	if in.Stock != nil {
		stock = *in.Stock
	}

	p, err := product.New(uuid.NewString(), in.Name, in.Price, stock)
	if err != nil {
		return nil, fmt.Errorf("build product: %w", err)
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return &CreateProductResult{Product: p}, nil
}

// CreateOrder resolves the customer and products, derives the total from the
// resolved product prices and writes the order with its links in one
// transaction. Product ids that do not resolve are dropped leniently; only a
// fully-empty resolution is fatal.
func (s *Service) CreateOrder(ctx context.Context, in OrderInput) (*CreateOrderResult, error) {
	cust, err := s.customers.FindByID(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("lookup customer: %w", err)
	}
	if cust == nil {
		return &CreateOrderResult{Errors: []string{"Invalid customer ID."}}, nil
	}

	if len(in.ProductIDs) == 0 {
		return &CreateOrderResult{Errors: []string{"At least one product ID is required."}}, nil
	}

	products, err := s.products.FilterByIDs(ctx, in.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}
	if len(products) == 0 {
		return &CreateOrderResult{Errors: []string{"No valid products found."}}, nil
	}
	if missing := unresolvedIDs(in.ProductIDs, products); len(missing) > 0 {
		s.log.Warn("order references unknown product ids",
			logger.String("customer_id", cust.ID),
			logger.Any("missing_product_ids", missing),
		)
	}

	orderDate := time.Now().UTC()
	if in.OrderDate != nil {
		orderDate = in.OrderDate.UTC()
	}

	o, err := order.New(uuid.NewString(), cust.ID, products, orderDate)
	if err != nil {
		return nil, fmt.Errorf("build order: %w", err)
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.publishOrderCreated(ctx, o)

	return &CreateOrderResult{Order: o}, nil
}

// RecentOrders serves the read side used by the order-reminder job.
func (s *Service) RecentOrders(ctx context.Context, since time.Time, status string) ([]order.Reminder, error) {
	reminders, err := s.orders.FilterReminders(ctx, since, status)
	if err != nil {
		return nil, fmt.Errorf("filter reminders: %w", err)
	}
	return reminders, nil
}

type orderCreatedEvent struct {
	OrderID     string          `json:"order_id"`
	CustomerID  string          `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrderDate   time.Time       `json:"order_date"`
}

func (s *Service) publishOrderCreated(ctx context.Context, o *order.Order) {
	if s.events == nil {
		return
	}

	payload, err := json.Marshal(orderCreatedEvent{
		OrderID:     o.ID,
		CustomerID:  o.CustomerID,
		TotalAmount: o.TotalAmount,
		OrderDate:   o.OrderDate,
	})
	if err != nil {
		s.log.Error("encode order event", logger.Error(err))
		return
	}

	if err := s.events.PublishOrderCreated(ctx, payload); err != nil {
		s.log.Warn("publish order event", logger.String("order_id", o.ID), logger.Error(err))
	}
}

func unresolvedIDs(requested []string, found []*product.Product) []string {
	resolved := make(map[string]struct{}, len(found))
	for _, p := range found {
		resolved[p.ID] = struct{}{}
	}
	var missing []string
	for _, id := range requested {
		if _, ok := resolved[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
