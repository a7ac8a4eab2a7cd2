package http

import (
	"net/http"
	"strconv"

	"github.com/GabrielePre11/storefront/internal/domain"
	"github.com/GabrielePre11/storefront/internal/favorites"
	"github.com/go-chi/chi/v5"
)

type FavoritesHandler struct {
	favorites *favorites.Store
}

func NewFavoritesHandler(favorites *favorites.Store) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

type FavoritesResponse struct {
	Favorites []domain.Product `json:"favorites"`
}

type ToggleResponse struct {
	Favorited bool `json:"favorited"`
}

func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.favoritesResponse())
}

// Toggle adds the product if absent and removes it if present, matching
// the heart button.
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := decodeJSON(w, r, &product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid product payload")
		return
	}
	if product.ID < 1 {
		respondError(w, http.StatusBadRequest, "product id is required")
		return
	}

	favorited := h.favorites.Toggle(product)
	respondJSON(w, http.StatusOK, &ToggleResponse{Favorited: favorited})
}

func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	h.favorites.Remove(id)
	respondJSON(w, http.StatusOK, h.favoritesResponse())
}

func (h *FavoritesHandler) favoritesResponse() *FavoritesResponse {
	entries := h.favorites.Entries()
	if entries == nil {
		entries = []domain.Product{}
	}
	return &FavoritesResponse{Favorites: entries}
}
