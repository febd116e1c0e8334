package command

import "github.com/verdantgoods/storefront/internal/cart/domain"

// RemoveItemCommand removes a product's line from the active cart.
type RemoveItemCommand struct {
	UserID    uint
	ProductID uint
}

// RemoveItemHandler handles cart line removal.
type RemoveItemHandler struct {
	carts domain.CartRepository
}

// NewRemoveItemHandler creates a new remove item handler.
func NewRemoveItemHandler(carts domain.CartRepository) *RemoveItemHandler {
	return &RemoveItemHandler{carts: carts}
}

// Handle executes the remove item command and returns the refreshed cart.
func (h *RemoveItemHandler) Handle(cmd RemoveItemCommand) (*domain.Cart, error) {
	cart, err := h.carts.GetOrCreateActive(cmd.UserID)
	if err != nil {
		return nil, err
	}

	if err := h.carts.RemoveItem(cart.ID, cmd.ProductID); err != nil {
		return nil, err
	}
	return h.carts.GetOrCreateActive(cmd.UserID)
}
