package command

import (
	catalogdomain "github.com/verdantgoods/storefront/internal/catalog/domain"
	"github.com/verdantgoods/storefront/internal/cart/domain"
)

// MergeCartCommand folds externally-held guest lines into the caller's
// active cart by per-product quantity addition. The client discards its
// guest-held list after a successful merge.
type MergeCartCommand struct {
	UserID uint
	Lines  []domain.GuestLine
}

// MergeCartHandler handles guest cart merges.
type MergeCartHandler struct {
	carts    domain.CartRepository
	products catalogdomain.ProductRepository
}

// NewMergeCartHandler creates a new merge cart handler.
func NewMergeCartHandler(carts domain.CartRepository, products catalogdomain.ProductRepository) *MergeCartHandler {
	return &MergeCartHandler{carts: carts, products: products}
}

// Handle executes the merge. Guest lines referencing products that no
// longer exist are skipped rather than failing the whole merge, since
// the guest list may be stale.
func (h *MergeCartHandler) Handle(cmd MergeCartCommand) (*domain.Cart, error) {
	cart, err := h.carts.GetOrCreateActive(cmd.UserID)
	if err != nil {
		return nil, err
	}

	quantities := make(map[uint]int, len(cart.Items))
	lineIDs := make(map[uint]uint, len(cart.Items))
	for _, item := range cart.Items {
		quantities[item.ProductID] = item.Quantity
		lineIDs[item.ProductID] = item.ID
	}

	for _, line := range cmd.Lines {
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}

		if _, err := h.products.FindByID(line.ProductID); err != nil {
			continue
		}

		if existingQty, ok := quantities[line.ProductID]; ok {
			newQty := existingQty + qty
			if err := h.carts.UpdateItemQuantity(lineIDs[line.ProductID], newQty); err != nil {
				return nil, err
			}
			quantities[line.ProductID] = newQty
		} else {
			if err := h.carts.CreateItem(cart.ID, line.ProductID, qty); err != nil {
				return nil, err
			}
			// Re-read so a repeated product in the guest list merges
			// into the line just created.
			refreshed, err := h.carts.GetOrCreateActive(cmd.UserID)
			if err != nil {
				return nil, err
			}
			for _, item := range refreshed.Items {
				if item.ProductID == line.ProductID {
					quantities[item.ProductID] = item.Quantity
					lineIDs[item.ProductID] = item.ID
				}
			}
		}
	}

	return h.carts.GetOrCreateActive(cmd.UserID)
}
