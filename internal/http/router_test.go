package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GabrielePre11/storefront/internal/cart"
	"github.com/GabrielePre11/storefront/internal/domain"
	"github.com/GabrielePre11/storefront/internal/favorites"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() http.Handler {
	mock := &catalogMock{
		product:    domain.Product{ID: 1, Title: "Laptop"},
		categories: []string{"beauty"},
	}
	feed := &feedMock{products: []domain.Product{{ID: 1}}}

	return NewRouter(
		NewProductHandler(mock, feed, time.Second),
		NewCartHandler(cart.New()),
		NewFavoritesHandler(favorites.New()),
		time.Second,
	)
}

func TestRouter_RouteSurface(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		method string
		target string
		status int
	}{
		{"GET", "/health", http.StatusOK},
		{"GET", "/api/v1/products", http.StatusOK},
		{"GET", "/api/v1/products/1", http.StatusOK},
		{"GET", "/api/v1/products/categories", http.StatusOK},
		{"GET", "/api/v1/products/category/beauty", http.StatusOK},
		{"GET", "/api/v1/search?q=phone", http.StatusOK},
		{"GET", "/api/v1/featured", http.StatusOK},
		{"GET", "/api/v1/cart", http.StatusOK},
		{"GET", "/api/v1/favorites", http.StatusOK},
		{"POST", "/api/v1/checkout", http.StatusNotImplemented},
		{"GET", "/api/v1/nope", http.StatusNotFound},
	}

	for _, tc := range tests {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(tc.method, tc.target, nil))
		assert.Equal(t, tc.status, recorder.Code, "%s %s", tc.method, tc.target)
	}
}

func TestRouter_SetsRequestID(t *testing.T) {
	router := newTestRouter()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/health", nil))

	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

func TestRouter_EchoesProvidedRequestID(t *testing.T) {
	router := newTestRouter()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/health", nil)
	request.Header.Set("X-Request-ID", "req-abc")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, "req-abc", recorder.Header().Get("X-Request-ID"))
}
