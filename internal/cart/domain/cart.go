package domain

import (
	"time"

	catalogdomain "github.com/verdantgoods/storefront/internal/catalog/domain"
)

// Cart statuses
const (
	StatusActive     = "ACTIVE"
	StatusCheckedOut = "CHECKED_OUT"
)

// Cart is a user's shopping cart. A user has at most one ACTIVE cart at
// a time; checkout flips it to CHECKED_OUT and the next cart access
// creates a fresh one.
type Cart struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"index;not null"`
	Status    string     `json:"status" gorm:"not null;default:'ACTIVE';index"`
	Items     []CartItem `json:"items" gorm:"foreignKey:CartID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name
func (Cart) TableName() string {
	return "carts"
}

// CartItem is one product line in a cart. The (cart, product) pair is
// unique; duplicate adds increment the quantity instead.
type CartItem struct {
	ID        uint                   `json:"id" gorm:"primaryKey"`
	CartID    uint                   `json:"cart_id" gorm:"uniqueIndex:idx_cart_product;not null"`
	ProductID uint                   `json:"product_id" gorm:"uniqueIndex:idx_cart_product;not null"`
	Quantity  int                    `json:"quantity" gorm:"not null"`
	Product   *catalogdomain.Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// TableName specifies the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// GuestLine is an externally-held (guest) cart line submitted for merge.
type GuestLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// CartRepository defines the contract for cart data access. Mutations
// operate on primitive lines; line-merge semantics live in the usecases.
type CartRepository interface {
	// GetOrCreateActive returns the user's ACTIVE cart with items and
	// product detail preloaded, creating an empty one if none exists.
	GetOrCreateActive(userID uint) (*Cart, error)
	CreateItem(cartID, productID uint, quantity int) error
	UpdateItemQuantity(itemID uint, quantity int) error
	RemoveItem(cartID, productID uint) error
	Clear(cartID uint) error
}
