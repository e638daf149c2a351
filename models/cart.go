package models

import (
	"strconv"
	"time"
)

// CartItem is a snapshot of a product captured when it was added to the cart.
// It lives only in the session payload and is never persisted through GORM;
// checkout re-resolves products against the catalog before anything is written.
type CartItem struct {
	ProductID   uint      `json:"product_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	AddedAt     time.Time `json:"added_at"`
}

// Cart maps product ids (decimal strings, stable across gob round-trips) to
// the snapshot taken at add-time. Adding an id that is already present
// overwrites the entry; there is no quantity.
type Cart map[string]CartItem

func (c Cart) Add(p Product) {
	c[strconv.FormatUint(uint64(p.ID), 10)] = CartItem{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		AddedAt:     time.Now(),
	}
}

// Remove deletes the entry for id. Removing an absent id is a no-op.
func (c Cart) Remove(id string) {
	delete(c, id)
}

func (c Cart) Has(id string) bool {
	_, ok := c[id]
	return ok
}

// Total sums the snapshot prices of every item in the cart.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c {
		total += item.Price
	}
	return total
}
