package command

import (
	catalogdomain "github.com/verdantgoods/storefront/internal/catalog/domain"
	"github.com/verdantgoods/storefront/internal/cart/domain"
)

// AddItemCommand adds a product to the caller's active cart. A quantity
// below 1 is coerced to 1.
type AddItemCommand struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// AddItemHandler handles cart additions.
type AddItemHandler struct {
	carts    domain.CartRepository
	products catalogdomain.ProductRepository
}

// NewAddItemHandler creates a new add item handler.
func NewAddItemHandler(carts domain.CartRepository, products catalogdomain.ProductRepository) *AddItemHandler {
	return &AddItemHandler{carts: carts, products: products}
}

// Handle executes the add item command and returns the refreshed cart.
// A line for the product already in the cart has its quantity
// incremented instead of gaining a second row.
func (h *AddItemHandler) Handle(cmd AddItemCommand) (*domain.Cart, error) {
	qty := cmd.Quantity
	if qty < 1 {
		qty = 1
	}

	if _, err := h.products.FindByID(cmd.ProductID); err != nil {
		return nil, err
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

	if existing != nil {
		err = h.carts.UpdateItemQuantity(existing.ID, existing.Quantity+qty)
	} else {
		err = h.carts.CreateItem(cart.ID, cmd.ProductID, qty)
	}
	if err != nil {
		return nil, err
	}

	return h.carts.GetOrCreateActive(cmd.UserID)
}
