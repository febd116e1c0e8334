package command

import (
	"strings"
	"time"

	"github.com/verdantgoods/storefront/internal/catalog/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

// SavePortfolioCommand creates or updates a portfolio item. A zero ID
// creates; a non-zero ID updates in place.
type SavePortfolioCommand struct {
	ID          uint
	Slug        string
	Name        string
	Image       string
	Description string
	Tags        []string
}

// SavePortfolioHandler handles portfolio item creation and updates.
type SavePortfolioHandler struct {
	repo domain.PortfolioRepository
}

// NewSavePortfolioHandler creates a new save portfolio handler.
func NewSavePortfolioHandler(repo domain.PortfolioRepository) *SavePortfolioHandler {
	return &SavePortfolioHandler{repo: repo}
}

// Handle executes the save portfolio command.
func (h *SavePortfolioHandler) Handle(cmd SavePortfolioCommand) (*domain.PortfolioItem, error) {
	slug := strings.TrimSpace(strings.ToLower(cmd.Slug))
	if slug == "" {
		return nil, apperr.Validationf("slug is required")
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, apperr.Validationf("name is required")
	}

	var item *domain.PortfolioItem
	if cmd.ID == 0 {
		item = &domain.PortfolioItem{CreatedAt: time.Now()}
	} else {
		existing, err := h.repo.FindByID(cmd.ID)
		if err != nil {
			return nil, err
		}
		item = existing
	}

	item.Slug = slug
	item.Name = strings.TrimSpace(cmd.Name)
	item.Image = cmd.Image
	item.Description = cmd.Description
	item.SetTags(cmd.Tags)
	item.UpdatedAt = time.Now()

	if cmd.ID == 0 {
		if err := h.repo.Create(item); err != nil {
			return nil, err
		}
	} else {
		if err := h.repo.Update(item); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// DeletePortfolioCommand represents the command to delete a portfolio item.
type DeletePortfolioCommand struct {
	ID uint
}

// DeletePortfolioHandler handles portfolio item deletion.
type DeletePortfolioHandler struct {
	repo domain.PortfolioRepository
}

// NewDeletePortfolioHandler creates a new delete portfolio handler.
func NewDeletePortfolioHandler(repo domain.PortfolioRepository) *DeletePortfolioHandler {
	return &DeletePortfolioHandler{repo: repo}
}

// Handle executes the delete portfolio command.
func (h *DeletePortfolioHandler) Handle(cmd DeletePortfolioCommand) error {
	return h.repo.Delete(cmd.ID)
}
