package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "crm_api/internal/application/crm"
	"crm_api/internal/domain/customer"
	"crm_api/internal/domain/order"
	"crm_api/internal/domain/product"
	"crm_api/internal/interfaces/http/handler"
	"crm_api/internal/interfaces/http/router"
	"crm_api/pkg/logger"
)

// In-memory repositories backing the handler tests.

type fakeCustomerRepo struct {
	byID    map[string]*customer.Customer
	byEmail map[string]*customer.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		byID:    map[string]*customer.Customer{},
		byEmail: map[string]*customer.Customer{},
	}
}

func (f *fakeCustomerRepo) add(c *customer.Customer) {
	f.byID[c.ID] = c
	f.byEmail[c.Email] = c
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *customer.Customer) error {
	f.add(c)
	return nil
}

func (f *fakeCustomerRepo) CreateAll(_ context.Context, customers []*customer.Customer) error {
	for _, c := range customers {
		f.add(c)
	}
	return nil
}

func (f *fakeCustomerRepo) FindByID(_ context.Context, id string) (*customer.Customer, error) {
	return f.byID[id], nil
}

func (f *fakeCustomerRepo) FindByEmail(_ context.Context, email string) (*customer.Customer, error) {
	return f.byEmail[email], nil
}

type fakeProductRepo struct {
	byID map[string]*product.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: map[string]*product.Product{}}
}

func (f *fakeProductRepo) Create(_ context.Context, p *product.Product) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProductRepo) FindByName(_ context.Context, name string) (*product.Product, error) {
	for _, p := range f.byID {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) FilterByIDs(_ context.Context, ids []string) ([]*product.Product, error) {
	var found []*product.Product
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			found = append(found, p)
		}
	}
	return found, nil
}

type fakeOrderRepo struct {
	orders []*order.Order
}

func (f *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeOrderRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeOrderRepo) FilterReminders(_ context.Context, since time.Time, status string) ([]order.Reminder, error) {
	var reminders []order.Reminder
	for _, o := range f.orders {
		if o.Status == status && !o.OrderDate.Before(since) {
			reminders = append(reminders, order.Reminder{
				OrderID:       o.ID,
				CustomerEmail: "alice@example.com",
				OrderDate:     o.OrderDate,
			})
		}
	}
	return reminders, nil
}

type testEnv struct {
	engine    *gin.Engine
	customers *fakeCustomerRepo
	products  *fakeProductRepo
	orders    *fakeOrderRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	customers := newFakeCustomerRepo()
	products := newFakeProductRepo()
	orders := &fakeOrderRepo{}

	svc := app.NewService(customers, products, orders, nil, logger.NewNop())
	engine := gin.New()
	router.RegisterRoutes(engine, handler.NewCRMHandler(svc))

	return &testEnv{engine: engine, customers: customers, products: products, orders: orders}
}

func (e *testEnv) do(t *testing.T, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestHello(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/hello", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Hello, CRM!", resp["hello"])
}

func TestCreateCustomer(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/customers", map[string]string{
		"name":  "Alice",
		"email": "alice@example.com",
		"phone": "+1234567890",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var res app.CreateCustomerResult
	decodeBody(t, rec, &res)
	assert.Empty(t, res.Errors)
	assert.Equal(t, "Customer created successfully.", res.Message)
	require.NotNil(t, res.Customer)
	assert.NotEmpty(t, res.Customer.ID)
}

func TestCreateCustomer_DuplicateEmailReturnsErrorsInPayload(t *testing.T) {
	env := newTestEnv(t)
	existing, err := customer.New("c1", "Alice", "alice@example.com", "")
	require.NoError(t, err)
	env.customers.add(existing)

	rec := env.do(t, http.MethodPost, "/api/customers", map[string]string{
		"name":  "Alice",
		"email": "alice@example.com",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var res app.CreateCustomerResult
	decodeBody(t, rec, &res)
	assert.Equal(t, []string{"Email already exists."}, res.Errors)
	assert.Nil(t, res.Customer)
}

func TestCreateCustomer_MalformedJSON(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBulkCreateCustomers(t *testing.T) {
	env := newTestEnv(t)
	existing, err := customer.New("c1", "Taken", "taken@example.com", "")
	require.NoError(t, err)
	env.customers.add(existing)

	rec := env.do(t, http.MethodPost, "/api/customers/bulk", []map[string]string{
		{"name": "Alice", "email": "alice@example.com"},
		{"name": "Taken", "email": "taken@example.com"},
		{"name": "Carol", "email": "carol@example.com"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var res app.BulkCreateCustomersResult
	decodeBody(t, rec, &res)
	assert.Len(t, res.Customers, 2)
	assert.Equal(t, []string{"Email taken@example.com already exists."}, res.Errors)
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/products", map[string]interface{}{
		"name":  "Laptop",
		"price": "10.5",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var res app.CreateProductResult
	decodeBody(t, rec, &res)
	assert.Empty(t, res.Errors)
	require.NotNil(t, res.Product)
	assert.Equal(t, 0, res.Product.Stock)
}

func TestCreateProduct_NonPositivePrice(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/products", map[string]interface{}{
		"name":  "Laptop",
		"price": 0,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var res app.CreateProductResult
	decodeBody(t, rec, &res)
	assert.Equal(t, []string{"Price must be positive."}, res.Errors)
	assert.Nil(t, res.Product)
}

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)
	cust, err := customer.New("c1", "Alice", "alice@example.com", "")
	require.NoError(t, err)
	env.customers.add(cust)

	laptop, err := product.New("p1", "Laptop", decimal.RequireFromString("999.99"), 10)
	require.NoError(t, err)
	headphones, err := product.New("p2", "Headphones", decimal.RequireFromString("79.99"), 50)
	require.NoError(t, err)
	env.products.byID["p1"] = laptop
	env.products.byID["p2"] = headphones

	rec := env.do(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"customer_id": "c1",
		"product_ids": []string{"p1", "p2"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var res app.CreateOrderResult
	decodeBody(t, rec, &res)
	assert.Empty(t, res.Errors)
	require.NotNil(t, res.Order)
	assert.True(t, res.Order.TotalAmount.Equal(decimal.RequireFromString("1079.98")),
		"got total %s", res.Order.TotalAmount)
	assert.Len(t, res.Order.Products, 2)
}

func TestCreateOrder_InvalidCustomer(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"customer_id": "missing",
		"product_ids": []string{"p1"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var res app.CreateOrderResult
	decodeBody(t, rec, &res)
	assert.Equal(t, []string{"Invalid customer ID."}, res.Errors)
	assert.Empty(t, env.orders.orders)
}

func TestRecentOrders(t *testing.T) {
	env := newTestEnv(t)
	laptop, err := product.New("p1", "Laptop", decimal.RequireFromString("999.99"), 10)
	require.NoError(t, err)

	recent, err := order.New("o-recent", "c1", []*product.Product{laptop}, time.Now().UTC())
	require.NoError(t, err)
	old, err := order.New("o-old", "c1", []*product.Product{laptop}, time.Now().UTC().AddDate(0, 0, -30))
	require.NoError(t, err)
	env.orders.orders = append(env.orders.orders, recent, old)

	since := time.Now().UTC().AddDate(0, 0, -7).Format(time.RFC3339)
	rec := env.do(t, http.MethodGet, "/api/orders?since="+since+"&status=PENDING", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Orders []order.Reminder `json:"orders"`
	}
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "o-recent", resp.Orders[0].OrderID)
}

func TestRecentOrders_BadSince(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/orders?since=yesterday", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
