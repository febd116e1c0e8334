package command

import (
	"strings"

	"github.com/verdantgoods/storefront/internal/content/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

// SubmitReviewCommand submits a new review. Anonymous submissions leave
// UserID nil; reviews always start out unpublished.
type SubmitReviewCommand struct {
	Author    string
	Body      string
	Stars     int
	UserID    *uint
	ProductID *uint
}

// SubmitReviewHandler handles review submission.
type SubmitReviewHandler struct {
	repo domain.ReviewRepository
}

// NewSubmitReviewHandler creates a new submit review handler.
func NewSubmitReviewHandler(repo domain.ReviewRepository) *SubmitReviewHandler {
	return &SubmitReviewHandler{repo: repo}
}

// Handle validates and stores the review. Author is optional and left
// empty for anonymous submissions.
func (h *SubmitReviewHandler) Handle(cmd SubmitReviewCommand) (*domain.Review, error) {
	if strings.TrimSpace(cmd.Body) == "" {
		return nil, apperr.Validationf("review body is required")
	}
	if cmd.Stars < 1 || cmd.Stars > 5 {
		return nil, apperr.Validationf("stars must be between 1 and 5")
	}

	review := &domain.Review{
		Author:    strings.TrimSpace(cmd.Author),
		Body:      strings.TrimSpace(cmd.Body),
		Stars:     cmd.Stars,
		Published: false,
		UserID:    cmd.UserID,
		ProductID: cmd.ProductID,
	}
	if err := h.repo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}
