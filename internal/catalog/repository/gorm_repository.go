package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/verdantgoods/storefront/internal/catalog/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// AutoMigrate runs database migrations for the products table.
func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

// Create inserts a new product.
func (r *GormProductRepository) Create(product *domain.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflictf("slug already in use")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to create product", err)
	}
	return nil
}

// FindByID retrieves a product by id.
func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("product not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to find product", err)
	}
	return &product, nil
}

// FindBySlug retrieves a product by slug.
func (r *GormProductRepository) FindBySlug(slug string) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("product not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to find product", err)
	}
	return &product, nil
}

// FindBySlugs resolves a batch of slugs in one query.
func (r *GormProductRepository) FindBySlugs(slugs []string) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.db.Where("slug IN ?", slugs).Find(&products).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to find products", err)
	}
	return products, nil
}

// FindAll lists products with filtering and pagination, returning the
// page and the unpaginated total.
func (r *GormProductRepository) FindAll(f domain.ProductFilter) ([]domain.Product, int64, error) {
	var products []domain.Product
	var total int64

	q := r.db.Model(&domain.Product{})
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if f.Category != "" {
		q = q.Where("LOWER(category) = LOWER(?)", f.Category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "failed to count products", err)
	}

	if err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&products).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "failed to list products", err)
	}
	return products, total, nil
}

// Update saves a product's fields.
func (r *GormProductRepository) Update(product *domain.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflictf("slug already in use")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to update product", err)
	}
	return nil
}

// Delete soft deletes a product.
func (r *GormProductRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Product{}, id)
	if result.Error != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete product", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("product not found")
	}
	return nil
}
