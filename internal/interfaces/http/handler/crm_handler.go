package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	app "crm_api/internal/application/crm"
	"crm_api/internal/domain/order"
)

type CRMHandler struct {
	svc *app.Service
}

func NewCRMHandler(svc *app.Service) *CRMHandler {
	return &CRMHandler{svc: svc}
}

// Validation failures travel inside the 200 payload as error lists; only
// malformed requests (400) and infrastructure faults (500) use HTTP status
// codes.

func (h *CRMHandler) CreateCustomer(c *gin.Context) {
	var in app.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.svc.CreateCustomer(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *CRMHandler) BulkCreateCustomers(c *gin.Context) {
	var in []app.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.svc.BulkCreateCustomers(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *CRMHandler) CreateProduct(c *gin.Context) {
	var in app.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.svc.CreateProduct(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *CRMHandler) CreateOrder(c *gin.Context) {
	var in app.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.svc.CreateOrder(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

// Hello is the read-only liveness query consumed by the heartbeat job.
func (h *CRMHandler) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hello": "Hello, CRM!"})
}

// RecentOrders serves the order-reminder job. Defaults: since = 7 days ago,
// status = PENDING.
func (h *CRMHandler) RecentOrders(c *gin.Context) {
	since := time.Now().UTC().AddDate(0, 0, -7)
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be RFC3339"})
			return
		}
		since = parsed
	}

	status := c.DefaultQuery("status", order.StatusPending)

	reminders, err := h.svc.RecentOrders(c.Request.Context(), since, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if reminders == nil {
		reminders = []order.Reminder{}
	}

	c.JSON(http.StatusOK, gin.H{"orders": reminders})
}
