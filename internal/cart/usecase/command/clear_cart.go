package command

import "github.com/verdantgoods/storefront/internal/cart/domain"

// ClearCartCommand removes every line from the active cart.
type ClearCartCommand struct {
	UserID uint
}

// ClearCartHandler handles cart clearing.
type ClearCartHandler struct {
	carts domain.CartRepository
}

// NewClearCartHandler creates a new clear cart handler.
func NewClearCartHandler(carts domain.CartRepository) *ClearCartHandler {
	return &ClearCartHandler{carts: carts}
}

// Handle executes the clear cart command and returns the emptied cart.
func (h *ClearCartHandler) Handle(cmd ClearCartCommand) (*domain.Cart, error) {
	cart, err := h.carts.GetOrCreateActive(cmd.UserID)
	if err != nil {
		return nil, err
	}

	if err := h.carts.Clear(cart.ID); err != nil {
		return nil, err
	}
	return h.carts.GetOrCreateActive(cmd.UserID)
}
