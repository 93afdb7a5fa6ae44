package services

import (
	"log"

	"catalog/internal/dto"
	"catalog/internal/models"
	"catalog/internal/repositories"
)

// ProductEventPublisher publishes product lifecycle events after a write
// commits. Implemented by the RabbitMQ client; a nil publisher disables
// events entirely.
type ProductEventPublisher interface {
	PublishProductEvent(event string, payload map[string]interface{}) error
}

// ProductService orchestrates one unit of work per call and maps between
// entities and transport DTOs. Writes stage their mutation first and commit
// after; reads never commit.
type ProductService struct {
	uowFactory repositories.UnitOfWorkFactory
	events     ProductEventPublisher
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(uowFactory repositories.UnitOfWorkFactory, events ProductEventPublisher) *ProductService {
	return &ProductService{
		uowFactory: uowFactory,
		events:     events,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]dto.ProductResponse, error) {
	uow, err := s.uowFactory.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	products, err := uow.Products().GetAll()
	if err != nil {
		return nil, err
	}
	return dto.NewProductListResponse(products), nil
}

// GetProductByID retrieves a single product by its ID. It returns
// (nil, nil) when no product matches; absence is not a failure.
func (s *ProductService) GetProductByID(id int) (*dto.ProductResponse, error) {
	uow, err := s.uowFactory.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	product, err := uow.Products().GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// CreateProduct creates a new product and returns it with its assigned ID.
func (s *ProductService) CreateProduct(req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	uow, err := s.uowFactory.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	product := req.ToModel()
	if err := uow.Products().Create(product); err != nil {
		return nil, err
	}
	if _, err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishEvent("product.created", product)

	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// UpdateProduct replaces a product's mutable fields.
func (s *ProductService) UpdateProduct(req dto.UpdateProductRequest) error {
	uow, err := s.uowFactory.Begin()
	if err != nil {
		return err
	}
	defer uow.Close()

	product := req.ToModel()
	if err := uow.Products().Update(product); err != nil {
		return err
	}
	affected, err := uow.Commit()
	if err != nil {
		return err
	}

	// No event when the update matched nothing.
	if affected > 0 {
		s.publishEvent("product.updated", product)
	}
	return nil
}

// DeleteProduct deletes a product by its ID. Deleting a product that does
// not exist is a no-op, so the operation is idempotent.
func (s *ProductService) DeleteProduct(id int) error {
	uow, err := s.uowFactory.Begin()
	if err != nil {
		return err
	}
	defer uow.Close()

	if err := uow.Products().Delete(id); err != nil {
		return err
	}
	affected, err := uow.Commit()
	if err != nil {
		return err
	}

	// No event for a no-op delete of a product that never existed.
	if affected > 0 {
		s.publishEvent("product.deleted", &models.Product{ID: id})
	}
	return nil
}

// publishEvent sends a lifecycle event when a publisher is configured.
// Publish failures are logged and never affect the request outcome.
func (s *ProductService) publishEvent(event string, product *models.Product) {
	if s.events == nil {
		return
	}
	payload := map[string]interface{}{
		"id":    product.ID,
		"name":  product.Name,
		"price": product.Price,
	}
	if err := s.events.PublishProductEvent(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event for product %d: %v", event, product.ID, err)
	} else {
		log.Printf("Published %s event for product %d", event, product.ID)
	}
}
