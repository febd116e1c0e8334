package domain

import (
	"time"

	"gorm.io/gorm"
)

// FAQ is a single question/answer entry, ordered by Position.
type FAQ struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Question  string         `json:"question" gorm:"not null"`
	Answer    string         `json:"answer" gorm:"not null"`
	Position  int            `json:"position" gorm:"not null;default:0;index"`
	Published bool           `json:"published" gorm:"not null;default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// FAQRepository defines FAQ persistence operations.
type FAQRepository interface {
	Create(faq *FAQ) error
	FindByID(id uint) (*FAQ, error)
	FindAll(publishedOnly bool) ([]FAQ, error)
	Update(faq *FAQ) error
	Delete(id uint) error
}
