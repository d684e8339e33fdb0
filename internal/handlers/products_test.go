package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/naiaprojects/linkwedding/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productsRouter(handler *Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/api/products", handler.ProductsList)
	router.Get("/api/products/{id}", handler.GetProduct)
	router.Post("/api/admin/products", handler.AdminCreateProduct)
	router.Put("/api/admin/products/{id}", handler.AdminUpdateProduct)
	router.Delete("/api/admin/products/{id}", handler.AdminDeleteProduct)
	return router
}

func TestGetProductHandler(t *testing.T) {
	handler, mock, closeDB := newTestHandler(t)
	defer closeDB()
	router := productsRouter(handler)

	packages := []models.ProductPackage{
		{Name: "Basic", Price: 99000, Undangan: "1 undangan"},
		{Name: "Premium", Price: 129000, Undangan: "unlimited"},
	}

	mock.ExpectQuery(`SELECT (.+) FROM products`).
		WithArgs("prod-1").
		WillReturnRows(productRows(t, "prod-1", packages))

	r := httptest.NewRequest(http.MethodGet, "/api/products/prod-1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, r)

	require.Equal(t, http.StatusOK, rr.Code)

	var product models.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &product))
	assert.Equal(t, "prod-1", product.ID)
	assert.Len(t, product.Packages, 2)
	assert.Equal(t, int64(129000), product.Packages[1].Price)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductNotFound(t *testing.T) {
	handler, mock, closeDB := newTestHandler(t)
	defer closeDB()
	router := productsRouter(handler)

	mock.ExpectQuery(`SELECT (.+) FROM products`).
		WithArgs("ghost").
		WillReturnError(assert.AnError)

	r := httptest.NewRequest(http.MethodGet, "/api/products/ghost", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, r)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductsListEmpty(t *testing.T) {
	handler, mock, closeDB := newTestHandler(t)
	defer closeDB()
	router := productsRouter(handler)

	mock.ExpectQuery(`SELECT (.+) FROM products`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "category", "jenis", "design", "packages",
			"image_url", "demo_url", "created_at", "updated_at",
		}))

	r := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, r)

	require.Equal(t, http.StatusOK, rr.Code)
	// An empty list must serialize as [], not null.
	assert.Equal(t, "[]\n", rr.Body.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminCreateProduct(t *testing.T) {
	handler, mock, closeDB := newTestHandler(t)
	defer closeDB()
	router := productsRouter(handler)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO products`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		body, _ := json.Marshal(productRequest{
			Name: "Undangan Digital",
			Packages: []models.ProductPackage{
				{Name: "Basic", Price: 99000},
			},
		})
		r := httptest.NewRequest(http.MethodPost, "/api/admin/products", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, r)

		require.Equal(t, http.StatusCreated, rr.Code)

		var product models.Product
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &product))
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, "Undangan Digital", product.Name)
	})

	t.Run("MissingName", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/admin/products", bytes.NewBufferString(`{}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, r)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
