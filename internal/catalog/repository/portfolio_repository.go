package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/verdantgoods/storefront/internal/catalog/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

// GormPortfolioRepository implements PortfolioRepository using GORM.
type GormPortfolioRepository struct {
	db *gorm.DB
}

// NewGormPortfolioRepository creates a new GORM portfolio repository.
func NewGormPortfolioRepository(db *gorm.DB) *GormPortfolioRepository {
	return &GormPortfolioRepository{db: db}
}

// AutoMigrate runs database migrations for the portfolio table.
func (r *GormPortfolioRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.PortfolioItem{})
}

// Create inserts a new portfolio item.
func (r *GormPortfolioRepository) Create(item *domain.PortfolioItem) error {
	if err := r.db.Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflictf("slug already in use")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to create portfolio item", err)
	}
	return nil
}

// FindByID retrieves a portfolio item by id.
func (r *GormPortfolioRepository) FindByID(id uint) (*domain.PortfolioItem, error) {
	var item domain.PortfolioItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("portfolio item not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to find portfolio item", err)
	}
	return &item, nil
}

// FindAll lists all portfolio items, newest first.
func (r *GormPortfolioRepository) FindAll() ([]domain.PortfolioItem, error) {
	var items []domain.PortfolioItem
	if err := r.db.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list portfolio items", err)
	}
	return items, nil
}

// Update saves a portfolio item's fields.
func (r *GormPortfolioRepository) Update(item *domain.PortfolioItem) error {
	if err := r.db.Save(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflictf("slug already in use")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to update portfolio item", err)
	}
	return nil
}

// Delete removes a portfolio item.
func (r *GormPortfolioRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.PortfolioItem{}, id)
	if result.Error != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete portfolio item", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("portfolio item not found")
	}
	return nil
}
