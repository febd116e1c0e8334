package command

import (
	"github.com/verdantgoods/storefront/internal/content/domain"
)

// DeleteReviewCommand removes a review.
type DeleteReviewCommand struct {
	ID uint
}

// DeleteReviewHandler handles review deletion.
type DeleteReviewHandler struct {
	repo domain.ReviewRepository
}

// NewDeleteReviewHandler creates a new delete review handler.
func NewDeleteReviewHandler(repo domain.ReviewRepository) *DeleteReviewHandler {
	return &DeleteReviewHandler{repo: repo}
}

// Handle deletes the review.
func (h *DeleteReviewHandler) Handle(cmd DeleteReviewCommand) error {
	return h.repo.Delete(cmd.ID)
}
