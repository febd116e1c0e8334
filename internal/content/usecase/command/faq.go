package command

import (
	"strings"

	"github.com/verdantgoods/storefront/internal/content/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

// CreateFAQCommand creates a new FAQ entry.
type CreateFAQCommand struct {
	Question  string
	Answer    string
	Position  int
	Published *bool
}

// CreateFAQHandler handles FAQ creation.
type CreateFAQHandler struct {
	repo domain.FAQRepository
}

// NewCreateFAQHandler creates a new FAQ creation handler.
func NewCreateFAQHandler(repo domain.FAQRepository) *CreateFAQHandler {
	return &CreateFAQHandler{repo: repo}
}

// Handle validates and stores the FAQ entry.
func (h *CreateFAQHandler) Handle(cmd CreateFAQCommand) (*domain.FAQ, error) {
	if strings.TrimSpace(cmd.Question) == "" {
		return nil, apperr.Validationf("question is required")
	}
	if strings.TrimSpace(cmd.Answer) == "" {
		return nil, apperr.Validationf("answer is required")
	}

	faq := &domain.FAQ{
		Question:  strings.TrimSpace(cmd.Question),
		Answer:    strings.TrimSpace(cmd.Answer),
		Position:  cmd.Position,
		Published: true,
	}
	if cmd.Published != nil {
		faq.Published = *cmd.Published
	}
	if err := h.repo.Create(faq); err != nil {
		return nil, err
	}
	return faq, nil
}

// UpdateFAQCommand edits an FAQ entry. Nil fields are left untouched.
type UpdateFAQCommand struct {
	ID        uint
	Question  *string
	Answer    *string
	Position  *int
	Published *bool
}

// UpdateFAQHandler handles FAQ updates.
type UpdateFAQHandler struct {
	repo domain.FAQRepository
}

// NewUpdateFAQHandler creates a new FAQ update handler.
func NewUpdateFAQHandler(repo domain.FAQRepository) *UpdateFAQHandler {
	return &UpdateFAQHandler{repo: repo}
}

// Handle applies the FAQ changes.
func (h *UpdateFAQHandler) Handle(cmd UpdateFAQCommand) (*domain.FAQ, error) {
	faq, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Question != nil {
		if strings.TrimSpace(*cmd.Question) == "" {
			return nil, apperr.Validationf("question cannot be empty")
		}
		faq.Question = strings.TrimSpace(*cmd.Question)
	}
	if cmd.Answer != nil {
		if strings.TrimSpace(*cmd.Answer) == "" {
			return nil, apperr.Validationf("answer cannot be empty")
		}
		faq.Answer = strings.TrimSpace(*cmd.Answer)
	}
	if cmd.Position != nil {
		faq.Position = *cmd.Position
	}
	if cmd.Published != nil {
		faq.Published = *cmd.Published
	}

	if err := h.repo.Update(faq); err != nil {
		return nil, err
	}
	return faq, nil
}

// DeleteFAQCommand removes an FAQ entry.
type DeleteFAQCommand struct {
	ID uint
}

// DeleteFAQHandler handles FAQ deletion.
type DeleteFAQHandler struct {
	repo domain.FAQRepository
}

// NewDeleteFAQHandler creates a new FAQ deletion handler.
func NewDeleteFAQHandler(repo domain.FAQRepository) *DeleteFAQHandler {
	return &DeleteFAQHandler{repo: repo}
}

// Handle deletes the FAQ entry.
func (h *DeleteFAQHandler) Handle(cmd DeleteFAQCommand) error {
	return h.repo.Delete(cmd.ID)
}
