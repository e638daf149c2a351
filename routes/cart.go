package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/knirb/bikeshop-api/controllers/cart"
)

// SetupCartRoutes registers the session cart endpoints.
func SetupCartRoutes(r *gin.Engine) {
	r.GET("/cart", cartControllers.ViewCart())    // GET /cart
	r.POST("/cart", cartControllers.RemoveItem()) // POST /cart (field "id")
}
