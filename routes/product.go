package routes

import (
	"github.com/gin-gonic/gin"

	productControllers "github.com/knirb/bikeshop-api/controllers/product"
	"github.com/knirb/bikeshop-api/store"
)

// SetupProductRoutes registers the public catalog endpoints.
func SetupProductRoutes(r *gin.Engine, catalog *store.Catalog) {
	r.GET("/", productControllers.ListProducts(catalog))                // GET /
	r.GET("/products/:id", productControllers.GetProductByID(catalog)) // GET /products/:id
	r.POST("/products/:id", productControllers.AddToCart(catalog))     // POST /products/:id
}
