package command

import "github.com/verdantgoods/storefront/internal/catalog/domain"

// DeleteProductCommand represents the command to delete a product.
type DeleteProductCommand struct {
	ID uint
}

// DeleteProductHandler handles product deletion.
type DeleteProductHandler struct {
	repo domain.ProductRepository
}

// NewDeleteProductHandler creates a new delete product handler.
func NewDeleteProductHandler(repo domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

// Handle executes the delete product command.
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) error {
	return h.repo.Delete(cmd.ID)
}
