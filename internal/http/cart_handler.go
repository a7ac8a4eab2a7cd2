package http

import (
	"net/http"
	"strconv"

	"github.com/GabrielePre11/storefront/internal/cart"
	"github.com/GabrielePre11/storefront/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	cart *cart.Store
}

func NewCartHandler(cart *cart.Store) *CartHandler {
	return &CartHandler{cart: cart}
}

type CartResponse struct {
	Lines     []domain.CartLine `json:"lines"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
	ItemCount int               `json:"itemCount"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// AddItem adds a product snapshot to the cart. Adding a product that is
// already in the cart bumps its quantity instead.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := decodeJSON(w, r, &product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid product payload")
		return
	}
	if product.ID < 1 {
		respondError(w, http.StatusBadRequest, "product id is required")
		return
	}

	h.cart.Add(product)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := cartLineID(w, r)
	if !ok {
		return
	}

	h.cart.IncreaseQuantity(id)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := cartLineID(w, r)
	if !ok {
		return
	}

	h.cart.DecreaseQuantity(id)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// RemoveItem deletes a cart line. Removing an absent id is a no-op, not
// an error.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := cartLineID(w, r)
	if !ok {
		return
	}

	h.cart.Remove(id)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// Checkout is a stub: the storefront has no payment processing.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotImplemented, "checkout is not implemented")
}

func (h *CartHandler) cartResponse() *CartResponse {
	lines := h.cart.Lines()
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return &CartResponse{
		Lines:     lines,
		Subtotal:  h.cart.Subtotal(),
		ItemCount: h.cart.ItemCount(),
	}
}

func cartLineID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}
