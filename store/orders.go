package store

import (
	"gorm.io/gorm"

	"github.com/knirb/bikeshop-api/models"
)

// Orders persists completed orders.
type Orders struct {
	db *gorm.DB
}

func NewOrders(db *gorm.DB) *Orders {
	return &Orders{db: db}
}

// Create writes the order row and its product associations in one
// transaction. Omit("Products.*") keeps GORM from upserting the attached
// products themselves: only join rows referencing existing catalog ids are
// written. On any error nothing is persisted.
func (o *Orders) Create(order *models.Order) error {
	return o.db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Products.*").Create(order).Error
	})
}
