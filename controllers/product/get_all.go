package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/knirb/bikeshop-api/models"
)

// Catalog is the read-only slice of the product store these handlers need.
type Catalog interface {
	ListAll() ([]models.Product, error)
	FindByID(id string) (models.Product, error)
}

// GET /
func ListProducts(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.ListAll()
		if err != nil {
			c.HTML(http.StatusInternalServerError, "500.html", gin.H{"error": "Failed to load products"})
			return
		}

		c.HTML(http.StatusOK, "homepage.html", gin.H{
			"products": products,
		})
	}
}
