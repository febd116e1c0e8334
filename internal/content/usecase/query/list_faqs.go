package query

import (
	"github.com/verdantgoods/storefront/internal/content/domain"
)

// ListFAQsQuery lists FAQ entries ordered by position.
type ListFAQsQuery struct {
	IncludeUnlisted bool
}

// ListFAQsHandler handles FAQ listing.
type ListFAQsHandler struct {
	repo domain.FAQRepository
}

// NewListFAQsHandler creates a new list FAQs handler.
func NewListFAQsHandler(repo domain.FAQRepository) *ListFAQsHandler {
	return &ListFAQsHandler{repo: repo}
}

// Handle lists FAQ entries.
func (h *ListFAQsHandler) Handle(q ListFAQsQuery) ([]domain.FAQ, error) {
	return h.repo.FindAll(!q.IncludeUnlisted)
}
