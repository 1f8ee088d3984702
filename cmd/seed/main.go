// Development seeding utility. Idempotent: existing customers and products
// are looked up instead of recreated, and orders are only inserted while the
// store holds fewer than the sample count. Not part of the production
// contract.
package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crm_api/internal/config"
	"crm_api/internal/domain/customer"
	"crm_api/internal/domain/order"
	"crm_api/internal/domain/product"
	"crm_api/internal/infrastructure/persistence/postgres"
)

const sampleOrderCount = 5

type customerSeed struct {
	name  string
	email string
	phone string
}

type productSeed struct {
	name  string
	price string
	stock int
}

var customerSeeds = []customerSeed{
	{name: "Alice", email: "alice@example.com", phone: "+1234567890"},
	{name: "Bob", email: "bob@example.com", phone: "123-456-7890"},
	{name: "Carol", email: "carol@example.com"},
}

var productSeeds = []productSeed{
	{name: "Laptop", price: "999.99", stock: 10},
	{name: "Phone", price: "499.99", stock: 25},
	{name: "Headphones", price: "79.99", stock: 50},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	pool, err := postgres.NewPool(cfg.DB)
	if err != nil {
		log.Fatalf("postgres connection failed: %v", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("apply schema failed: %v", err)
	}

	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)

	customers, err := seedCustomers(ctx, customerRepo)
	if err != nil {
		log.Fatalf("seed customers failed: %v", err)
	}

	products, err := seedProducts(ctx, productRepo)
	if err != nil {
		log.Fatalf("seed products failed: %v", err)
	}

	created, err := seedOrders(ctx, orderRepo, customers, products)
	if err != nil {
		log.Fatalf("seed orders failed: %v", err)
	}

	log.Printf("database seeded: %d customers, %d products, %d new orders",
		len(customers), len(products), created)
}

func seedCustomers(ctx context.Context, repo *postgres.CustomerRepository) ([]*customer.Customer, error) {
	customers := make([]*customer.Customer, 0, len(customerSeeds))
	for _, seed := range customerSeeds {
		existing, err := repo.FindByEmail(ctx, seed.email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			customers = append(customers, existing)
			continue
		}

		c, err := customer.New(uuid.NewString(), seed.name, seed.email, seed.phone)
		if err != nil {
			return nil, err
		}
		if err := repo.Create(ctx, c); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func seedProducts(ctx context.Context, repo *postgres.ProductRepository) ([]*product.Product, error) {
	products := make([]*product.Product, 0, len(productSeeds))
	for _, seed := range productSeeds {
		existing, err := repo.FindByName(ctx, seed.name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			products = append(products, existing)
			continue
		}

		p, err := product.New(uuid.NewString(), seed.name, decimal.RequireFromString(seed.price), seed.stock)
		if err != nil {
			return nil, err
		}
		if err := repo.Create(ctx, p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func seedOrders(
	ctx context.Context,
	repo *postgres.OrderRepository,
	customers []*customer.Customer,
	products []*product.Product,
) (int, error) {
	existing, err := repo.CountAll(ctx)
	if err != nil {
		return 0, err
	}
	if existing >= sampleOrderCount {
		return 0, nil
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := 0

	for i := existing; i < sampleOrderCount; i++ {
		cust := customers[rnd.Intn(len(customers))]
		picks := pickTwo(rnd, products)

		o, err := order.New(uuid.NewString(), cust.ID, picks, time.Now().UTC())
		if err != nil {
			return created, err
		}
		if err := repo.Create(ctx, o); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func pickTwo(rnd *rand.Rand, products []*product.Product) []*product.Product {
	shuffled := make([]*product.Product, len(products))
	copy(shuffled, products)
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:2]
}
