package checkoutControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	cartControllers "github.com/knirb/bikeshop-api/controllers/cart"
	"github.com/knirb/bikeshop-api/mailer"
	"github.com/knirb/bikeshop-api/models"
)

// -------- Request Structs --------

type OrderForm struct {
	Name    string `form:"name" binding:"required"`
	Email   string `form:"email" binding:"required,email"`
	Address string `form:"address" binding:"required"`
}

// -------- Collaborator Contracts --------

// ProductFinder resolves a cart id to the catalog-owned product record.
type ProductFinder interface {
	FindByID(id string) (models.Product, error)
}

// OrderCreator persists an order with its product associations atomically.
type OrderCreator interface {
	Create(order *models.Order) error
}

// -------- Helpers --------

// fieldErrors flattens a binding error into per-field messages for the form.
func fieldErrors(err error) map[string]string {
	msgs := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		msgs["form"] = "Invalid form submission"
		return msgs
	}

	for _, fe := range verrs {
		switch fe.Field() {
		case "Name":
			msgs["name"] = "Please enter your name"
		case "Email":
			if fe.Tag() == "email" {
				msgs["email"] = "Please enter a valid email address"
			} else {
				msgs["email"] = "Please enter your email address"
			}
		case "Address":
			msgs["address"] = "Please enter your shipping address"
		}
	}
	return msgs
}

// Generate unique order reference
func generateOrderRef() string {
	// Example: 20250908130500-<uuid4>
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// PlaceOrder builds an order from the validated form, re-resolves every cart
// entry against the catalog and persists the result. Session snapshots are
// never attached to the order: attaching a detached copy would let the
// storage layer mistake it for a brand new product. If any lookup or the
// write fails, no order exists and the caller must leave the cart alone.
func PlaceOrder(catalog ProductFinder, orders OrderCreator, cart models.Cart, form OrderForm) (*models.Order, error) {
	order := &models.Order{
		OrderRef:  generateOrderRef(),
		Name:      form.Name,
		Email:     form.Email,
		Address:   form.Address,
		CreatedAt: time.Now(),
	}

	for id := range cart {
		product, err := catalog.FindByID(id)
		if err != nil {
			return nil, fmt.Errorf("resolve cart product %s: %w", id, err)
		}
		order.Products = append(order.Products, product)
	}

	if err := orders.Create(order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}
	return order, nil
}

// -------- Handlers --------

// GET /checkout
func ShowCheckout() gin.HandlerFunc {
	return func(c *gin.Context) {
		cart := cartControllers.LoadCart(sessions.Default(c))
		c.HTML(http.StatusOK, "checkout.html", gin.H{
			"total":  cart.Total(),
			"form":   OrderForm{},
			"errors": map[string]string{},
		})
	}
}

// POST /checkout with fields name, email, address
func SubmitOrder(catalog ProductFinder, orders OrderCreator, notifier mailer.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		cart := cartControllers.LoadCart(sess)

		var form OrderForm
		if err := c.ShouldBind(&form); err != nil {
			// Re-render with messages and whatever the customer typed.
			c.HTML(http.StatusBadRequest, "checkout.html", gin.H{
				"total": cart.Total(),
				"form": OrderForm{
					Name:    c.PostForm("name"),
					Email:   c.PostForm("email"),
					Address: c.PostForm("address"),
				},
				"errors": fieldErrors(err),
			})
			return
		}

		order, err := PlaceOrder(catalog, orders, cart, form)
		if err != nil {
			// Nothing was persisted and the cart stays as it was, so the
			// customer can retry.
			c.HTML(http.StatusInternalServerError, "500.html", gin.H{"error": "Failed to place order"})
			return
		}

		// The order is committed; a failed confirmation email does not undo it.
		if err := notifier.SendConfirmation(order); err != nil {
			log.Printf("❌ Confirmation email for order %s failed: %v", order.OrderRef, err)
		}

		if err := cartControllers.SaveCart(sess, models.Cart{}); err != nil {
			log.Printf("❌ Failed to clear cart after order %s: %v", order.OrderRef, err)
		}

		c.HTML(http.StatusOK, "confirmation.html", gin.H{
			"order": order,
		})
	}
}
