package handlers

import (
	"fmt"

	"catalog/internal/apperrors"
	"catalog/internal/dto"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products. An empty catalog yields an
// empty JSON array, never null.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID, or answers
// 404 with an empty body when no such product exists.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.Validation(fmt.Sprintf("invalid product id: %s", c.Params("id")))
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		// 404 with an empty body; SendStatus would fill in the status text.
		return c.Status(fiber.StatusNotFound).Send(nil)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product and answers 201 with the
// created DTO and a Location header pointing at the new resource.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	created, err := h.service.CreateProduct(req)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/products/%d", created.ID))
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateProduct replaces an existing product. A mismatch between the
// path ID and the body ID is a plain 400 with no body.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	pathID, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.Validation(fmt.Sprintf("invalid product id: %s", c.Params("id")))
	}

	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if pathID != req.ID {
		return c.Status(fiber.StatusBadRequest).Send(nil)
	}

	if err := h.service.UpdateProduct(req); err != nil {
		return err
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}

// HandleDeleteProduct deletes a product by its ID. The delete is
// idempotent, so the answer is 204 whether or not the product existed.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.Validation(fmt.Sprintf("invalid product id: %s", c.Params("id")))
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return err
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}

// validationMessages flattens validator errors into a field -> message map.
func validationMessages(err error) map[string]string {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return errorMessages
}
