package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/knirb/bikeshop-api/mailer"
	"github.com/knirb/bikeshop-api/store"
)

// SetupRoutes is the single entry-point that wires up the storefront route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, notifier mailer.Notifier) {
	catalog := store.NewCatalog(db)
	orders := store.NewOrders(db)

	// Product listing and details
	SetupProductRoutes(r, catalog)

	// Session cart
	SetupCartRoutes(r)

	// Checkout
	SetupCheckoutRoutes(r, catalog, orders, notifier)
}
