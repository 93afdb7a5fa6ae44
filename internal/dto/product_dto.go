package dto

import "catalog/internal/models"

// ProductResponse is the transport shape returned for a product.
// Description is omitted from the JSON payload when absent.
type ProductResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

// CreateProductRequest is the request body for creating a product.
// No bound is enforced on price.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
}

// UpdateProductRequest is the request body for replacing a product.
// The ID must match the path parameter; the handler enforces that.
type UpdateProductRequest struct {
	ID          int     `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
}

// ToModel builds a new, not-yet-persisted product entity.
func (r CreateProductRequest) ToModel() *models.Product {
	return &models.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
	}
}

// ToModel builds the replacement entity keyed by the request's ID.
func (r UpdateProductRequest) ToModel() *models.Product {
	return &models.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
	}
}

// NewProductResponse maps an entity to its transport shape.
func NewProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
	}
}

// NewProductListResponse maps a slice of entities. It always returns a
// non-nil slice so an empty list serializes as [] rather than null.
func NewProductListResponse(products []models.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, NewProductResponse(&products[i]))
	}
	return responses
}
