package store

import (
	"errors"
	"strconv"

	"github.com/knirb/bikeshop-api/models"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned when no product matches the requested id.
// Malformed ids are reported the same way: from the storefront's point of view
// a garbage id is just an id that matches nothing.
var ErrProductNotFound = errors.New("product not found")

// Catalog reads products. This service never writes to the products table
// outside of the startup seed; the catalog is owned elsewhere.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// ListAll returns every product in storage order.
func (c *Catalog) ListAll() ([]models.Product, error) {
	var products []models.Product
	if err := c.db.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID looks up a single product by its decimal id string.
func (c *Catalog) FindByID(id string) (models.Product, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return models.Product{}, ErrProductNotFound
	}

	var product models.Product
	if err := c.db.First(&product, "id = ?", uint(n)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}
	return product, nil
}
