package models

import "time"

type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderRef  string    `gorm:"uniqueIndex;not null" json:"order_ref"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Address   string    `gorm:"not null" json:"address"`
	Products  []Product `gorm:"many2many:order_products;" json:"products"`
	CreatedAt time.Time `json:"created_at"`
}
