package command

import (
	"strings"
	"time"

	"github.com/verdantgoods/storefront/internal/catalog/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

// CreateProductCommand represents the command to create a product.
type CreateProductCommand struct {
	Slug        string
	Name        string
	Description string
	Price       float64
	Category    string
	Image       string
	Stock       int
}

// CreateProductHandler handles product creation.
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler.
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command.
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	slug := strings.TrimSpace(strings.ToLower(cmd.Slug))
	if slug == "" {
		return nil, apperr.Validationf("slug is required")
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, apperr.Validationf("name is required")
	}
	if cmd.Price < 0 {
		return nil, apperr.Validationf("price cannot be negative")
	}
	if cmd.Stock < 0 {
		return nil, apperr.Validationf("stock cannot be negative")
	}

	product := &domain.Product{
		Slug:        slug,
		Name:        strings.TrimSpace(cmd.Name),
		Description: cmd.Description,
		Price:       cmd.Price,
		Category:    cmd.Category,
		Image:       cmd.Image,
		Stock:       cmd.Stock,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}
