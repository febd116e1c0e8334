package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/verdantgoods/storefront/internal/content/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

// GormReviewRepository implements ReviewRepository using GORM.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GORM review repository.
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// AutoMigrate runs database migrations for the reviews table.
func (r *GormReviewRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Review{})
}

// Create inserts a new review.
func (r *GormReviewRepository) Create(review *domain.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflictf("you have already reviewed this product")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to create review", err)
	}
	return nil
}

// FindByID retrieves a review by id.
func (r *GormReviewRepository) FindByID(id uint) (*domain.Review, error) {
	var review domain.Review
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("review not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to find review", err)
	}
	return &review, nil
}

// FindAll lists reviews with filtering and pagination, returning the
// page and the unpaginated total.
func (r *GormReviewRepository) FindAll(f domain.ReviewFilter) ([]domain.Review, int64, error) {
	var reviews []domain.Review
	var total int64

	q := r.db.Model(&domain.Review{})
	if f.PublishedOnly {
		q = q.Where("published = ?", true)
	}
	if f.ProductID != 0 {
		q = q.Where("product_id = ?", f.ProductID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "failed to count reviews", err)
	}

	if err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&reviews).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "failed to list reviews", err)
	}
	return reviews, total, nil
}

// Update saves a review's fields.
func (r *GormReviewRepository) Update(review *domain.Review) error {
	if err := r.db.Save(review).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to update review", err)
	}
	return nil
}

// Delete soft deletes a review.
func (r *GormReviewRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Review{}, id)
	if result.Error != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete review", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("review not found")
	}
	return nil
}
