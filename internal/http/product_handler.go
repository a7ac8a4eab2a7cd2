package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/GabrielePre11/storefront/internal/catalog"
	"github.com/GabrielePre11/storefront/internal/domain"
	"github.com/go-chi/chi/v5"
)

// catalogClient is the slice of the catalog client the handlers need.
// Consumers define this interface, not the catalog package.
type catalogClient interface {
	ByID(ctx context.Context, id int64) (domain.Product, error)
	Similar(ctx context.Context, p domain.Product) ([]domain.Product, error)
	ByCategory(ctx context.Context, slug string, limit, skip int) ([]domain.Product, error)
	Search(ctx context.Context, term string) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Featured(ctx context.Context) ([]domain.Product, error)
}

// productFeed accumulates catalog pages across requests.
type productFeed interface {
	LoadNext(ctx context.Context) ([]domain.Product, error)
	Products() []domain.Product
}

type ProductHandler struct {
	catalog catalogClient
	feed    productFeed
	timeout time.Duration
}

func NewProductHandler(catalog catalogClient, feed productFeed, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		feed:    feed,
		timeout: timeout,
	}
}

type ProductsResponse struct {
	Products []domain.Product `json:"products"`
}

type ProductDetailResponse struct {
	Product domain.Product   `json:"product"`
	Similar []domain.Product `json:"similar"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// List serves the browsing feed. Each call loads the next page into the
// accumulated list and returns the whole list, the "load more" flow.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.feed.LoadNext(ctx)
	if err != nil {
		respondError(w, http.StatusBadGateway, msgFetchFailed)
		return
	}

	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products})
}

// Get serves a single product together with up to four products of the
// same category.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.catalog.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}
		respondError(w, http.StatusBadGateway, msgFetchFailed)
		return
	}

	similar, err := h.catalog.Similar(ctx, product)
	if err != nil {
		// The product itself loaded fine; an empty similar list is
		// better than failing the whole page.
		log.Printf("fetch similar products error: %v", err)
		similar = nil
	}

	respondJSON(w, http.StatusOK, &ProductDetailResponse{
		Product: product,
		Similar: similar,
	})
}

// ByCategory serves the products of one category. Without limit/skip
// parameters the whole category is returned.
func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	limit := queryInt(r, "limit", 0)
	skip := queryInt(r, "skip", 0)

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.ByCategory(ctx, slug, limit, skip)
	if err != nil {
		respondError(w, http.StatusBadGateway, msgFetchFailed)
		return
	}

	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products})
}

// Search serves a catalog search. A missing or blank q parameter is not
// an error: it yields an empty result set without touching the catalog.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, http.StatusBadGateway, msgFetchFailed)
		return
	}

	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products})
}

// Categories serves the catalog's category directory.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		respondError(w, http.StatusBadGateway, msgFetchFailed)
		return
	}

	respondJSON(w, http.StatusOK, &CategoriesResponse{Categories: categories})
}

// Featured serves the home page's featured slice.
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.Featured(ctx)
	if err != nil {
		respondError(w, http.StatusBadGateway, msgFetchFailed)
		return
	}

	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products})
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}
