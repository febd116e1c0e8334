package domain

import (
	"time"

	"gorm.io/gorm"
)

// Review is a customer review, optionally tied to a product and a user.
// Author may be empty for anonymous submissions. Reviews land unpublished
// and only show up publicly after moderation.
type Review struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Author    string         `json:"author"`
	Body      string         `json:"body" gorm:"not null"`
	Stars     int            `json:"stars" gorm:"not null"`
	Published bool           `json:"published" gorm:"not null;default:false"`
	UserID    *uint          `json:"user_id,omitempty" gorm:"uniqueIndex:idx_user_product_review,where:deleted_at IS NULL"`
	ProductID *uint          `json:"product_id,omitempty" gorm:"uniqueIndex:idx_user_product_review,where:deleted_at IS NULL"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// ReviewFilter narrows review listings.
type ReviewFilter struct {
	ProductID     uint
	PublishedOnly bool
	Limit         int
	Offset        int
}

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(review *Review) error
	FindByID(id uint) (*Review, error)
	FindAll(f ReviewFilter) ([]Review, int64, error)
	Update(review *Review) error
	Delete(id uint) error
}
