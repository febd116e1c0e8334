package command

import (
	"strings"

	"github.com/verdantgoods/storefront/internal/content/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

// ModerateReviewCommand edits and/or publishes a review. Nil fields are
// left untouched.
type ModerateReviewCommand struct {
	ID        uint
	Author    *string
	Body      *string
	Stars     *int
	Published *bool
}

// ModerateReviewHandler handles admin review moderation.
type ModerateReviewHandler struct {
	repo domain.ReviewRepository
}

// NewModerateReviewHandler creates a new moderate review handler.
func NewModerateReviewHandler(repo domain.ReviewRepository) *ModerateReviewHandler {
	return &ModerateReviewHandler{repo: repo}
}

// Handle applies the moderation changes.
func (h *ModerateReviewHandler) Handle(cmd ModerateReviewCommand) (*domain.Review, error) {
	review, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Author != nil {
		review.Author = strings.TrimSpace(*cmd.Author)
	}
	if cmd.Body != nil {
		if strings.TrimSpace(*cmd.Body) == "" {
			return nil, apperr.Validationf("review body cannot be empty")
		}
		review.Body = strings.TrimSpace(*cmd.Body)
	}
	if cmd.Stars != nil {
		if *cmd.Stars < 1 || *cmd.Stars > 5 {
			return nil, apperr.Validationf("stars must be between 1 and 5")
		}
		review.Stars = *cmd.Stars
	}
	if cmd.Published != nil {
		review.Published = *cmd.Published
	}

	if err := h.repo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}
