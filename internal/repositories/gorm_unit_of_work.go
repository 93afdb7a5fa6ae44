package repositories

import (
	"fmt"

	"gorm.io/gorm"
)

// GormUnitOfWork implements UnitOfWork over a single GORM transaction.
// Staged operations run inside the transaction and become durable only at
// Commit; Close without a prior Commit rolls everything back.
type GormUnitOfWork struct {
	tx        *gorm.DB
	products  *GORMProductRepository
	committed bool
}

// Products returns the product repository scoped to this transaction.
func (u *GormUnitOfWork) Products() ProductRepository {
	return u.products
}

// Commit flushes all staged operations atomically and returns the total
// number of rows the staged writes affected.
func (u *GormUnitOfWork) Commit() (int64, error) {
	if err := u.tx.Commit().Error; err != nil {
		return 0, fmt.Errorf("failed to commit unit of work: %w", err)
	}
	u.committed = true
	return u.products.stagedRows(), nil
}

// Close releases the transaction. If Commit was never reached the staged
// work is rolled back, so callers can defer Close on every path.
func (u *GormUnitOfWork) Close() error {
	if u.committed {
		return nil
	}
	if err := u.tx.Rollback().Error; err != nil {
		return fmt.Errorf("failed to roll back unit of work: %w", err)
	}
	return nil
}

// GormUnitOfWorkFactory creates one GormUnitOfWork per request.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory over the shared database handle.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db: db,
	}
}

// Begin opens a new transaction and a repository scoped to it.
func (f *GormUnitOfWorkFactory) Begin() (UnitOfWork, error) {
	tx := f.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", tx.Error)
	}
	return &GormUnitOfWork{
		tx:       tx,
		products: NewGORMProductRepository(tx),
	}, nil
}
