package domain

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog entry. Stock is never negative: the
// checkout decrement is conditional on sufficient stock.
type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Price       float64        `json:"price" gorm:"not null"`
	Category    string         `json:"category" gorm:"index"`
	Image       string         `json:"image"`
	Stock       int            `json:"stock" gorm:"not null;default:0"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Search   string // case-insensitive match on name or description
	Category string
	Limit    int
	Offset   int
}

// ProductRepository defines the contract for product data access.
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindBySlug(slug string) (*Product, error)
	// FindBySlugs resolves a batch of slugs in one query. Missing slugs
	// are simply absent from the result; the caller decides how to fail.
	FindBySlugs(slugs []string) ([]Product, error)
	FindAll(f ProductFilter) ([]Product, int64, error)
	Update(product *Product) error
	Delete(id uint) error
}
