package query

import "github.com/verdantgoods/storefront/internal/order/domain"

// GetSaleQuery fetches a single sale with its items.
type GetSaleQuery struct {
	ID uint
}

// GetSaleHandler handles single sale lookups.
type GetSaleHandler struct {
	repo domain.SaleRepository
}

// NewGetSaleHandler creates a new get sale handler.
func NewGetSaleHandler(repo domain.SaleRepository) *GetSaleHandler {
	return &GetSaleHandler{repo: repo}
}

// Handle executes the get sale query.
func (h *GetSaleHandler) Handle(q GetSaleQuery) (*domain.Sale, error) {
	return h.repo.FindByID(q.ID)
}
