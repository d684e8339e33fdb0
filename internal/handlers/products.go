package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/naiaprojects/linkwedding/internal/pixel"
	"github.com/naiaprojects/linkwedding/models"
	"go.uber.org/zap"
)

func (h *Handler) ProductsList(w http.ResponseWriter, r *http.Request) {
	products, err := h.Database.GetProductsList()
	if err != nil {
		h.Logger.Error("error fetching products", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if products == nil {
		products = []*models.Product{}
	}

	h.writeJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	product, err := h.Database.GetProduct(productID)
	if err != nil {
		h.Logger.Error("error fetching product", zap.Error(err))
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	// The storefront passes checkout=1 when loading the order page, which
	// is where the original fires InitiateCheckout.
	if h.Pixel != nil && r.URL.Query().Get("checkout") != "" && len(product.Packages) > 0 {
		pkg := product.Packages[0]
		h.Pixel.Track(pixel.Event{
			Name:        pixel.EventInitiateCheckout,
			ContentName: product.Name + " - " + pkg.Name,
			ContentIDs:  []string{product.ID},
			Value:       pkg.Price,
			Currency:    "IDR",
			NumItems:    1,
		})
	}

	h.writeJSON(w, http.StatusOK, product)
}

type productRequest struct {
	Name        string                  `json:"name"`
	Description *string                 `json:"description,omitempty"`
	Category    *string                 `json:"category,omitempty"`
	Jenis       *string                 `json:"jenis,omitempty"`
	Design      *string                 `json:"design,omitempty"`
	Packages    []models.ProductPackage `json:"packages"`
	ImageURL    *string                 `json:"image_url,omitempty"`
	DemoURL     *string                 `json:"demo_url,omitempty"`
}

func (h *Handler) AdminCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("error decoding product request", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "product name is required", http.StatusBadRequest)
		return
	}

	product := models.Product{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Jenis:       req.Jenis,
		Design:      req.Design,
		Packages:    req.Packages,
		ImageURL:    req.ImageURL,
		DemoURL:     req.DemoURL,
	}
	if product.Packages == nil {
		product.Packages = []models.ProductPackage{}
	}

	if err := h.Database.PutProduct(product); err != nil {
		h.Logger.Error("error creating product", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) AdminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("error decoding product request", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "product name is required", http.StatusBadRequest)
		return
	}

	product := models.Product{
		ID:          productID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Jenis:       req.Jenis,
		Design:      req.Design,
		Packages:    req.Packages,
		ImageURL:    req.ImageURL,
		DemoURL:     req.DemoURL,
	}
	if product.Packages == nil {
		product.Packages = []models.ProductPackage{}
	}

	if err := h.Database.UpdateProduct(product); err != nil {
		h.Logger.Error("error updating product", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) AdminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	if err := h.Database.DeleteProduct(productID); err != nil {
		h.Logger.Error("error deleting product", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
