package command

import (
	"strings"
	"time"

	"github.com/verdantgoods/storefront/internal/catalog/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

// UpdateProductCommand represents the command to update a product.
// Nil pointers leave the corresponding field untouched.
type UpdateProductCommand struct {
	ID          uint
	Slug        *string
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Image       *string
	Stock       *int
}

// UpdateProductHandler handles product updates.
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler.
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command.
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	product, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Slug != nil {
		slug := strings.TrimSpace(strings.ToLower(*cmd.Slug))
		if slug == "" {
			return nil, apperr.Validationf("slug cannot be empty")
		}
		product.Slug = slug
	}
	if cmd.Name != nil {
		if strings.TrimSpace(*cmd.Name) == "" {
			return nil, apperr.Validationf("name cannot be empty")
		}
		product.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Description != nil {
		product.Description = *cmd.Description
	}
	if cmd.Price != nil {
		if *cmd.Price < 0 {
			return nil, apperr.Validationf("price cannot be negative")
		}
		product.Price = *cmd.Price
	}
	if cmd.Category != nil {
		product.Category = *cmd.Category
	}
	if cmd.Image != nil {
		product.Image = *cmd.Image
	}
	if cmd.Stock != nil {
		if *cmd.Stock < 0 {
			return nil, apperr.Validationf("stock cannot be negative")
		}
		product.Stock = *cmd.Stock
	}
	product.UpdatedAt = time.Now()

	if err := h.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}
