package query

import (
	"github.com/verdantgoods/storefront/internal/content/domain"
)

// ListReviewsQuery lists reviews. Public callers see published reviews
// only; admins may include pending ones.
type ListReviewsQuery struct {
	ProductID       uint
	IncludeUnlisted bool
	Skip            int
	Take            int
}

// ListReviewsResult holds a page of reviews and the unpaginated total.
type ListReviewsResult struct {
	Reviews []domain.Review `json:"reviews"`
	Total   int64           `json:"total"`
}

// ListReviewsHandler handles review listing.
type ListReviewsHandler struct {
	repo domain.ReviewRepository
}

// NewListReviewsHandler creates a new list reviews handler.
func NewListReviewsHandler(repo domain.ReviewRepository) *ListReviewsHandler {
	return &ListReviewsHandler{repo: repo}
}

// Handle lists reviews with pagination.
func (h *ListReviewsHandler) Handle(q ListReviewsQuery) (*ListReviewsResult, error) {
	take := q.Take
	if take <= 0 {
		take = 20
	}
	if take > 100 {
		take = 100
	}
	skip := q.Skip
	if skip < 0 {
		skip = 0
	}

	reviews, total, err := h.repo.FindAll(domain.ReviewFilter{
		ProductID:     q.ProductID,
		PublishedOnly: !q.IncludeUnlisted,
		Limit:         take,
		Offset:        skip,
	})
	if err != nil {
		return nil, err
	}
	return &ListReviewsResult{Reviews: reviews, Total: total}, nil
}
