package query

import "github.com/verdantgoods/storefront/internal/catalog/domain"

// ListProductsQuery represents the paginated, filtered product listing.
type ListProductsQuery struct {
	Skip     int
	Take     int
	Search   string
	Category string
}

// ListProductsResult is one page of products plus the unpaginated total.
type ListProductsResult struct {
	Products []domain.Product `json:"products"`
	Total    int64            `json:"total"`
}

// ListProductsHandler handles the product listing query.
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler.
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query. Take defaults to 20 and is
// capped at 100.
func (h *ListProductsHandler) Handle(q ListProductsQuery) (*ListProductsResult, error) {
	if q.Take <= 0 {
		q.Take = 20
	}
	if q.Take > 100 {
		q.Take = 100
	}
	if q.Skip < 0 {
		q.Skip = 0
	}

	products, total, err := h.repo.FindAll(domain.ProductFilter{
		Search:   q.Search,
		Category: q.Category,
		Limit:    q.Take,
		Offset:   q.Skip,
	})
	if err != nil {
		return nil, err
	}
	return &ListProductsResult{Products: products, Total: total}, nil
}
