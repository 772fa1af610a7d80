package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vasiliy-maslov/storefront/internal/catalog"
)

type ProductsResponse struct {
	Products []catalog.Product `json:"products"`
	Count    int               `json:"count"`
}

type CatalogHandler struct {
	snapshot *catalog.Snapshot
}

func NewCatalogHandler(snapshot *catalog.Snapshot) *CatalogHandler {
	return &CatalogHandler{snapshot: snapshot}
}

func (h *CatalogHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.handleListProducts)
	router.Get("/products/featured", h.handleFeatured)
	router.Get("/products/new", h.handleNew)
	router.Get("/products/best-sellers", h.handleBestSellers)
	router.Get("/products/promotions", h.handlePromotions)
	router.Get("/categories", h.handleListCategories)
}

func (h *CatalogHandler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string][]string{"categories": catalog.Categories})
}

// handleListProducts filters the snapshot by the optional category and
// q query parameters. category=Todos (or none) means all categories.
func (h *CatalogHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("q")

	products := h.snapshot.Filter(category, search)
	respondWithJSON(w, http.StatusOK, ProductsResponse{Products: products, Count: len(products)})
}

func (h *CatalogHandler) handleFeatured(w http.ResponseWriter, r *http.Request) {
	products := h.snapshot.Featured()
	respondWithJSON(w, http.StatusOK, ProductsResponse{Products: products, Count: len(products)})
}

func (h *CatalogHandler) handleNew(w http.ResponseWriter, r *http.Request) {
	products := h.snapshot.New()
	respondWithJSON(w, http.StatusOK, ProductsResponse{Products: products, Count: len(products)})
}

func (h *CatalogHandler) handleBestSellers(w http.ResponseWriter, r *http.Request) {
	products := h.snapshot.BestSellers()
	respondWithJSON(w, http.StatusOK, ProductsResponse{Products: products, Count: len(products)})
}

func (h *CatalogHandler) handlePromotions(w http.ResponseWriter, r *http.Request) {
	products := h.snapshot.Promotions()
	respondWithJSON(w, http.StatusOK, ProductsResponse{Products: products, Count: len(products)})
}
