package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the storefront's route surface.
func NewRouter(
	products *ProductHandler,
	cart *CartHandler,
	favorites *FavoritesHandler,
	timeout time.Duration,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Get("/categories", products.Categories)
			r.Get("/category/{slug}", products.ByCategory)
			r.Get("/{id}", products.Get)
		})
		r.Get("/search", products.Search)
		r.Get("/featured", products.Featured)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cart.Get)
			r.Post("/items", cart.AddItem)
			r.Post("/items/{id}/increase", cart.IncreaseQuantity)
			r.Post("/items/{id}/decrease", cart.DecreaseQuantity)
			r.Delete("/items/{id}", cart.RemoveItem)
		})
		r.Post("/checkout", cart.Checkout)

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", favorites.List)
			r.Put("/", favorites.Toggle)
			r.Delete("/{id}", favorites.Remove)
		})
	})

	return r
}
