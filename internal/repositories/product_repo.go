package repositories

import (
	"catalog/internal/models"
)

// ProductRepository defines the interface for product data access.
// All operations issued through one repository share the transactional
// context of the unit of work that created it; nothing is durable until
// that unit of work commits.
type ProductRepository interface {
	// GetAll returns every persisted product, in no guaranteed order.
	GetAll() ([]models.Product, error)
	// GetByID returns (nil, nil) when no product matches id; absence is
	// not a failure.
	GetByID(id int) (*models.Product, error)
	// Create stages an insert. The backend assigns the product's ID.
	Create(product *models.Product) error
	// Update stages a full-record replace keyed by the product's ID. The
	// ID must already be assigned; no existence check happens here.
	Update(product *models.Product) error
	// Delete stages the removal of the product with the given id. When no
	// such product exists this is a silent no-op, so delete is idempotent.
	Delete(id int) error
}

// UnitOfWork groups repository operations behind one atomic commit
// boundary over a single persistence session.
type UnitOfWork interface {
	// Products returns the one product repository scoped to this unit of
	// work's session.
	Products() ProductRepository
	// Commit flushes all staged operations atomically and returns the
	// number of affected rows. On failure nothing is made durable.
	Commit() (int64, error)
	// Close releases the underlying session, rolling back any work that
	// was never committed. Safe to call after a successful commit.
	Close() error
}

// UnitOfWorkFactory creates a fresh unit of work per request so that no
// transactional state is shared across concurrent requests.
type UnitOfWorkFactory interface {
	Begin() (UnitOfWork, error)
}
