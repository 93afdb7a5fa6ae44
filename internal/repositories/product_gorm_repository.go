package repositories

import (
	"errors"
	"fmt"

	"catalog/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository
// scoped to a single transaction owned by its unit of work.
type GORMProductRepository struct {
	tx       *gorm.DB
	affected int64
}

// NewGORMProductRepository creates a repository over the given transaction.
func NewGORMProductRepository(tx *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		tx: tx,
	}
}

// GetAll retrieves all products visible to the current transaction.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.tx.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID. A missing row is not an
// error; it returns (nil, nil).
func (r *GORMProductRepository) GetByID(id int) (*models.Product, error) {
	var product models.Product
	if err := r.tx.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create stages a new product. The database assigns the ID, which becomes
// durable only when the unit of work commits.
func (r *GORMProductRepository) Create(product *models.Product) error {
	res := r.tx.Create(product)
	if res.Error != nil {
		return fmt.Errorf("failed to create product: %w", res.Error)
	}
	r.affected += res.RowsAffected
	return nil
}

// Update stages a full-record replace keyed by the product's ID, updating
// all fields including zero values. A plain Save would fall back to an
// insert when no row matches, letting callers mint their own identifiers;
// the identifier is only ever assigned by the database on create.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.tx.Model(&models.Product{}).Where("id = ?", product.ID).Select("*").Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, res.Error)
	}
	r.affected += res.RowsAffected
	return nil
}

// Delete stages the removal of the product with the given ID. A missing
// row is a no-op, never an error.
func (r *GORMProductRepository) Delete(id int) error {
	product, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return nil
	}
	res := r.tx.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	r.affected += res.RowsAffected
	return nil
}

// stagedRows reports how many rows the staged writes touched so far.
func (r *GORMProductRepository) stagedRows() int64 {
	return r.affected
}
