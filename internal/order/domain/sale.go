package domain

import "time"

// Sale is a completed order. It is created only inside the checkout
// transaction and never updated or deleted by normal flow.
type Sale struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Reference string     `json:"reference" gorm:"uniqueIndex;not null"`
	UserID    uint       `json:"user_id" gorm:"index;not null"`
	Total     float64    `json:"total" gorm:"not null"`
	Items     []SaleItem `json:"items" gorm:"foreignKey:SaleID"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName specifies the table name
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is one purchased line. UnitPrice is the price snapshot taken
// at purchase time; it must never track later catalog price changes.
type SaleItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	SaleID    uint    `json:"sale_id" gorm:"index;not null"`
	ProductID uint    `json:"product_id" gorm:"not null"`
	Slug      string  `json:"slug" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice float64 `json:"unit_price" gorm:"not null"`
}

// TableName specifies the table name
func (SaleItem) TableName() string {
	return "sale_items"
}

// SaleFilter narrows the administrative sales listing.
type SaleFilter struct {
	UserID uint // zero means any user
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// MonthlyBucket is one calendar month of sales totals.
type MonthlyBucket struct {
	Month   string  `json:"month"` // YYYY-MM
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// SaleRepository defines the contract for sale data access.
type SaleRepository interface {
	// CreateSale persists the sale and its items, decrements product
	// stock, and closes the user's active cart(s), all in one atomic
	// unit of work. Insufficient stock aborts the whole unit.
	CreateSale(sale *Sale) error
	FindByID(id uint) (*Sale, error)
	FindAll(f SaleFilter) ([]Sale, int64, error)
	MonthlyStats(since time.Time) ([]MonthlyBucket, error)
}
