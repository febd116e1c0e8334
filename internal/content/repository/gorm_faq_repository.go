package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/verdantgoods/storefront/internal/content/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

// GormFAQRepository implements FAQRepository using GORM.
type GormFAQRepository struct {
	db *gorm.DB
}

// NewGormFAQRepository creates a new GORM FAQ repository.
func NewGormFAQRepository(db *gorm.DB) *GormFAQRepository {
	return &GormFAQRepository{db: db}
}

// AutoMigrate runs database migrations for the faqs table.
func (r *GormFAQRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.FAQ{})
}

// Create inserts a new FAQ entry.
func (r *GormFAQRepository) Create(faq *domain.FAQ) error {
	if err := r.db.Create(faq).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to create faq", err)
	}
	return nil
}

// FindByID retrieves a FAQ entry by id.
func (r *GormFAQRepository) FindByID(id uint) (*domain.FAQ, error) {
	var faq domain.FAQ
	if err := r.db.First(&faq, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("faq not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to find faq", err)
	}
	return &faq, nil
}

// FindAll lists FAQ entries ordered by position.
func (r *GormFAQRepository) FindAll(publishedOnly bool) ([]domain.FAQ, error) {
	var faqs []domain.FAQ
	q := r.db.Model(&domain.FAQ{})
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	if err := q.Order("position ASC, id ASC").Find(&faqs).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list faqs", err)
	}
	return faqs, nil
}

// Update saves a FAQ entry's fields.
func (r *GormFAQRepository) Update(faq *domain.FAQ) error {
	if err := r.db.Save(faq).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to update faq", err)
	}
	return nil
}

// Delete soft deletes a FAQ entry.
func (r *GormFAQRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.FAQ{}, id)
	if result.Error != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete faq", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("faq not found")
	}
	return nil
}
