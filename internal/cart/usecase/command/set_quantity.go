package command

import (
	"github.com/verdantgoods/storefront/internal/cart/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

// SetQuantityCommand overwrites a cart line's quantity. A quantity
// below 1 is coerced to 1.
type SetQuantityCommand struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// SetQuantityHandler handles absolute quantity updates.
type SetQuantityHandler struct {
	carts domain.CartRepository
}

// NewSetQuantityHandler creates a new set quantity handler.
func NewSetQuantityHandler(carts domain.CartRepository) *SetQuantityHandler {
	return &SetQuantityHandler{carts: carts}
}

// Handle executes the set quantity command and returns the refreshed cart.
func (h *SetQuantityHandler) Handle(cmd SetQuantityCommand) (*domain.Cart, error) {
	qty := cmd.Quantity
	if qty < 1 {
		qty = 1
	}

	cart, err := h.carts.GetOrCreateActive(cmd.UserID)
	if err != nil {
		return nil, err
	}

	var existing *domain.CartItem
	for i := range cart.Items {
		if cart.Items[i].ProductID == cmd.ProductID {
			existing = &cart.Items[i]
			break
		}
	}
	if existing == nil {
		return nil, apperr.NotFoundf("product not in cart")
	}

	if err := h.carts.UpdateItemQuantity(existing.ID, qty); err != nil {
		return nil, err
	}
	return h.carts.GetOrCreateActive(cmd.UserID)
}
