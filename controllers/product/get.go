package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	cartControllers "github.com/knirb/bikeshop-api/controllers/cart"
	"github.com/knirb/bikeshop-api/store"
)

// GetProductByID renders a single product with its in-cart flag.
// URL param: /products/:id
func GetProductByID(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		product, err := catalog.FindByID(id)
		if err != nil {
			if errors.Is(err, store.ErrProductNotFound) {
				c.HTML(http.StatusNotFound, "404.html", gin.H{"error": "Product not found"})
			} else {
				c.HTML(http.StatusInternalServerError, "500.html", gin.H{"error": "Failed to retrieve product"})
			}
			return
		}

		cart := cartControllers.LoadCart(sessions.Default(c))
		c.HTML(http.StatusOK, "details.html", gin.H{
			"product": product,
			"inCart":  cart.Has(id),
		})
	}
}

// AddToCart puts a snapshot of the product in the session cart, then renders
// the details view with inCart set. Re-adding an id overwrites its entry.
// POST /products/:id
func AddToCart(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		product, err := catalog.FindByID(id)
		if err != nil {
			if errors.Is(err, store.ErrProductNotFound) {
				c.HTML(http.StatusNotFound, "404.html", gin.H{"error": "Product not found"})
			} else {
				c.HTML(http.StatusInternalServerError, "500.html", gin.H{"error": "Failed to retrieve product"})
			}
			return
		}

		sess := sessions.Default(c)
		cart := cartControllers.LoadCart(sess)
		cart.Add(product)
		if err := cartControllers.SaveCart(sess, cart); err != nil {
			c.HTML(http.StatusInternalServerError, "500.html", gin.H{"error": "Failed to update cart"})
			return
		}

		c.HTML(http.StatusOK, "details.html", gin.H{
			"product": product,
			"inCart":  true,
		})
	}
}
