package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"catalog/internal/dto"
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp sets up a Fiber app for testing with an isolated in-memory
// SQLite database behind the real unit-of-work stack. Events are disabled
// (nil publisher), matching a deployment without a broker.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("failed to auto-migrate database: %v", err)
	}

	uowFactory := repositories.NewGormUnitOfWorkFactory(db)
	productService := services.NewProductService(uowFactory, nil)
	productHandler := handlers.NewProductHandler(productService)

	app := fiber.New()
	app.Use(middleware.ErrorHandler(false))
	productHandler.RegisterRoutes(app)

	return app
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// jsonRequest issues a request with an optional JSON body.
func jsonRequest(t *testing.T, app *fiber.App, method, path string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func createProduct(t *testing.T, app *fiber.App, payload map[string]interface{}) dto.ProductResponse {
	t.Helper()

	resp := jsonRequest(t, app, http.MethodPost, "/products", payload)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.ProductResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	return created
}

func TestCreateThenGetProduct(t *testing.T) {
	app := setupApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/products", map[string]interface{}{
		"name":  "T",
		"price": 3,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.ProductResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	assert.Greater(t, created.ID, 0)
	assert.Equal(t, "T", created.Name)
	assert.Equal(t, fmt.Sprintf("/products/%d", created.ID), resp.Header.Get("Location"))

	resp = jsonRequest(t, app, http.MethodGet, fmt.Sprintf("/products/%d", created.ID), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched dto.ProductResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "T", fetched.Name)
	assert.Equal(t, 3.0, fetched.Price)
}

func TestListProducts(t *testing.T) {
	app := setupApp(t)

	// An empty catalog serializes as [], never null.
	resp := jsonRequest(t, app, http.MethodGet, "/products", nil)
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))

	createProduct(t, app, map[string]interface{}{"name": "Laptop", "price": 1200.00})
	createProduct(t, app, map[string]interface{}{"name": "Mouse", "description": "Wireless mouse", "price": 25.00})

	resp = jsonRequest(t, app, http.MethodGet, "/products", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var products []dto.ProductResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	assert.Len(t, products, 2)
}

func TestGetMissingProduct(t *testing.T) {
	app := setupApp(t)

	resp := jsonRequest(t, app, http.MethodGet, "/products/999", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Empty(t, raw, "a missing product answers with an empty body")
}

func TestGetInvalidID(t *testing.T) {
	app := setupApp(t)

	// A non-integer id classifies as a validation failure and renders
	// through the error middleware.
	resp := jsonRequest(t, app, http.MethodGet, "/products/abc", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "invalid product id")
}

func TestCreateValidationFailure(t *testing.T) {
	app := setupApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/products", map[string]interface{}{
		"price": 10.0,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Validation failed", body["message"])
	assert.Contains(t, body["errors"].(map[string]interface{}), "Name")

	// Nothing was created.
	resp = jsonRequest(t, app, http.MethodGet, "/products", nil)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.JSONEq(t, `[]`, string(raw))
}

func TestCreateOmitsAbsentDescription(t *testing.T) {
	app := setupApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/products", map[string]interface{}{
		"name":  "Laptop",
		"price": 1200.00,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.NotContains(t, string(raw), "description")
}

func TestUpdateProduct(t *testing.T) {
	app := setupApp(t)
	created := createProduct(t, app, map[string]interface{}{"name": "Laptop", "price": 1200.00})

	resp := jsonRequest(t, app, http.MethodPut, fmt.Sprintf("/products/%d", created.ID), map[string]interface{}{
		"id":          created.ID,
		"name":        "Laptop Pro",
		"description": "Refreshed model",
		"price":       1500.00,
	})
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, raw)

	resp = jsonRequest(t, app, http.MethodGet, fmt.Sprintf("/products/%d", created.ID), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched dto.ProductResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	assert.Equal(t, "Laptop Pro", fetched.Name)
	assert.Equal(t, 1500.00, fetched.Price)
	assert.NotNil(t, fetched.Description)
	assert.Equal(t, "Refreshed model", *fetched.Description)
}

func TestUpdateNonexistentMintsNoProduct(t *testing.T) {
	app := setupApp(t)

	// Replacing an id that was never assigned must not create the row.
	resp := jsonRequest(t, app, http.MethodPut, "/products/999", map[string]interface{}{
		"id":    999,
		"name":  "Ghost",
		"price": 1.00,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodGet, "/products/999", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateIDMismatch(t *testing.T) {
	app := setupApp(t)
	created := createProduct(t, app, map[string]interface{}{"name": "Laptop", "price": 1200.00})

	// Path says 1, body says 2: a plain 400 with no body, and the
	// service is never invoked.
	resp := jsonRequest(t, app, http.MethodPut, fmt.Sprintf("/products/%d", created.ID), map[string]interface{}{
		"id":    created.ID + 1,
		"name":  "Hijacked",
		"price": 1.00,
	})
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, raw)

	// The stored product is untouched.
	resp = jsonRequest(t, app, http.MethodGet, fmt.Sprintf("/products/%d", created.ID), nil)
	defer resp.Body.Close()
	var fetched dto.ProductResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	assert.Equal(t, "Laptop", fetched.Name)
}

func TestDeleteProductIsIdempotent(t *testing.T) {
	app := setupApp(t)
	created := createProduct(t, app, map[string]interface{}{"name": "Webcam", "price": 49.99})

	path := fmt.Sprintf("/products/%d", created.ID)

	resp := jsonRequest(t, app, http.MethodDelete, path, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Deleting again answers 204 as well.
	resp = jsonRequest(t, app, http.MethodDelete, path, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodGet, path, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMalformedBody(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Invalid request body", body["message"])
}
