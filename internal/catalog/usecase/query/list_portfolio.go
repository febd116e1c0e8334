package query

import "github.com/verdantgoods/storefront/internal/catalog/domain"

// PortfolioItemView is a portfolio item with its tags expanded.
type PortfolioItemView struct {
	domain.PortfolioItem
	Tags []string `json:"tags"`
}

// ListPortfolioHandler handles the public portfolio listing.
type ListPortfolioHandler struct {
	repo domain.PortfolioRepository
}

// NewListPortfolioHandler creates a new list portfolio handler.
func NewListPortfolioHandler(repo domain.PortfolioRepository) *ListPortfolioHandler {
	return &ListPortfolioHandler{repo: repo}
}

// Handle executes the portfolio listing query.
func (h *ListPortfolioHandler) Handle() ([]PortfolioItemView, error) {
	items, err := h.repo.FindAll()
	if err != nil {
		return nil, err
	}

	views := make([]PortfolioItemView, 0, len(items))
	for _, item := range items {
		views = append(views, PortfolioItemView{
			PortfolioItem: item,
			Tags:          item.TagList(),
		})
	}
	return views, nil
}
