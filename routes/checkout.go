package routes

import (
	"github.com/gin-gonic/gin"

	checkoutControllers "github.com/knirb/bikeshop-api/controllers/checkout"
	"github.com/knirb/bikeshop-api/mailer"
	"github.com/knirb/bikeshop-api/store"
)

// SetupCheckoutRoutes registers the order form and submission endpoints.
func SetupCheckoutRoutes(r *gin.Engine, catalog *store.Catalog, orders *store.Orders, notifier mailer.Notifier) {
	r.GET("/checkout", checkoutControllers.ShowCheckout())                          // GET /checkout
	r.POST("/checkout", checkoutControllers.SubmitOrder(catalog, orders, notifier)) // POST /checkout
}
