package models

// Product represents a product in the catalog.
// The ID is assigned by the database on insert and is strictly positive
// once persisted; callers never set it themselves.
type Product struct {
	ID          int     `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
}
