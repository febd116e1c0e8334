package query

import "github.com/verdantgoods/storefront/internal/catalog/domain"

// GetProductQuery fetches a single product by slug.
type GetProductQuery struct {
	Slug string
}

// GetProductHandler handles single product lookups.
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler.
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query.
func (h *GetProductHandler) Handle(q GetProductQuery) (*domain.Product, error) {
	return h.repo.FindBySlug(q.Slug)
}
