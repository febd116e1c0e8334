package query

import "github.com/verdantgoods/storefront/internal/cart/domain"

// GetCartQuery fetches (or lazily creates) the caller's active cart.
type GetCartQuery struct {
	UserID uint
}

// GetCartHandler handles active cart reads.
type GetCartHandler struct {
	carts domain.CartRepository
}

// NewGetCartHandler creates a new get cart handler.
func NewGetCartHandler(carts domain.CartRepository) *GetCartHandler {
	return &GetCartHandler{carts: carts}
}

// Handle executes the get cart query.
func (h *GetCartHandler) Handle(q GetCartQuery) (*domain.Cart, error) {
	return h.carts.GetOrCreateActive(q.UserID)
}
