package router

import (
	"github.com/gin-gonic/gin"

	"crm_api/internal/interfaces/http/handler"
)

// RegisterRoutes is the explicit operation registry: every query and mutation
// the API exposes is wired here, nowhere else.
func RegisterRoutes(r *gin.Engine, h *handler.CRMHandler) {
	api := r.Group("/api")
	{
		api.GET("/hello", h.Hello)
		api.GET("/orders", h.RecentOrders)

		api.POST("/customers", h.CreateCustomer)
		api.POST("/customers/bulk", h.BulkCreateCustomers)
		api.POST("/products", h.CreateProduct)
		api.POST("/orders", h.CreateOrder)
	}
}
