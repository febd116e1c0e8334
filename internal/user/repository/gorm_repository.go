package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/verdantgoods/storefront/internal/user/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// AutoMigrate runs database migrations for the users table.
func (r *GormUserRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.User{})
}

// Create inserts a new user.
func (r *GormUserRepository) Create(user *domain.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflictf("email already registered")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to create user", err)
	}
	return nil
}

// FindByID retrieves a user by id.
func (r *GormUserRepository) FindByID(id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to find user", err)
	}
	return &user, nil
}

// FindByEmail retrieves a user by email.
func (r *GormUserRepository) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to find user", err)
	}
	return &user, nil
}

// Search lists users with pagination and an optional case-insensitive
// filter on email or name. Returns the page and the unpaginated total.
func (r *GormUserRepository) Search(query string, limit, offset int) ([]domain.User, int64, error) {
	var users []domain.User
	var total int64

	q := r.db.Model(&domain.User{})
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("email ILIKE ? OR name ILIKE ?", pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "failed to count users", err)
	}

	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "failed to list users", err)
	}
	return users, total, nil
}

// Update saves a user's fields.
func (r *GormUserRepository) Update(user *domain.User) error {
	if err := r.db.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflictf("email already registered")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to update user", err)
	}
	return nil
}

// Delete soft deletes a user.
func (r *GormUserRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.User{}, id)
	if result.Error != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete user", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("user not found")
	}
	return nil
}
