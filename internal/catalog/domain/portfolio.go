package domain

import (
	"strings"
	"time"
)

// PortfolioItem is read-only gallery content shown on the storefront.
// Tags are stored comma-joined and exposed as a list.
type PortfolioItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Tags        string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (PortfolioItem) TableName() string {
	return "portfolio_items"
}

// TagList splits the stored tags into a list.
func (p *PortfolioItem) TagList() []string {
	if p.Tags == "" {
		return []string{}
	}
	parts := strings.Split(p.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// SetTags stores a tag list comma-joined.
func (p *PortfolioItem) SetTags(tags []string) {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	p.Tags = strings.Join(cleaned, ",")
}

// PortfolioRepository defines the contract for portfolio data access.
type PortfolioRepository interface {
	Create(item *PortfolioItem) error
	FindByID(id uint) (*PortfolioItem, error)
	FindAll() ([]PortfolioItem, error)
	Update(item *PortfolioItem) error
	Delete(id uint) error
}
