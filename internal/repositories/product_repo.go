package repositories

import (
	"katalog/internal/models"
)

// ProductRepository defines the interface for product data access.
// GetByID, Update and Delete return models.ErrNotFound for unknown ids.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}
