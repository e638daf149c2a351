package cartControllers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/knirb/bikeshop-api/models"
	"github.com/knirb/bikeshop-api/session"
)

// CartKey is the session value holding the cart mapping.
const CartKey = "cart"

// LoadCart reads the cart from the session, defaulting to an empty mapping
// when the key is absent or holds something unexpected.
func LoadCart(sess session.Session) models.Cart {
	if cart, ok := sess.Get(CartKey).(models.Cart); ok && cart != nil {
		return cart
	}
	return models.Cart{}
}

// SaveCart writes the cart mapping back to the session.
func SaveCart(sess session.Session, cart models.Cart) error {
	sess.Set(CartKey, cart)
	return sess.Save()
}

// GET /cart
func ViewCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		cart := LoadCart(sessions.Default(c))
		c.HTML(http.StatusOK, "cart.html", gin.H{
			"cart":  cart,
			"total": cart.Total(),
		})
	}
}

// POST /cart with form field "id"
// Removing an id that is not in the cart is a no-op, not an error.
func RemoveItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		cart := LoadCart(sess)
		cart.Remove(c.PostForm("id"))
		if err := SaveCart(sess, cart); err != nil {
			c.HTML(http.StatusInternalServerError, "500.html", gin.H{"error": "Failed to update cart"})
			return
		}

		c.HTML(http.StatusOK, "cart.html", gin.H{
			"cart":  cart,
			"total": cart.Total(),
		})
	}
}
