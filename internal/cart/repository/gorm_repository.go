package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/verdantgoods/storefront/internal/cart/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// AutoMigrate runs database migrations for the cart tables.
func (r *GormCartRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Cart{}, &domain.CartItem{})
}

// GetOrCreateActive returns the user's ACTIVE cart, creating one when
// none exists. Items and their product detail are preloaded so callers
// never need a follow-up read.
func (r *GormCartRepository) GetOrCreateActive(userID uint) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.db.
		Preload("Items.Product").
		Where("user_id = ? AND status = ?", userID, domain.StatusActive).
		First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load cart", err)
	}

	cart = domain.Cart{UserID: userID, Status: domain.StatusActive, Items: []domain.CartItem{}}
	if err := r.db.Create(&cart).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create cart", err)
	}
	return &cart, nil
}

// CreateItem inserts a new cart line.
func (r *GormCartRepository) CreateItem(cartID, productID uint, quantity int) error {
	item := domain.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
	if err := r.db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// The unique (cart, product) index caught a concurrent add.
			return apperr.Conflictf("product already in cart")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to add cart item", err)
	}
	return nil
}

// UpdateItemQuantity overwrites a line's quantity.
func (r *GormCartRepository) UpdateItemQuantity(itemID uint, quantity int) error {
	result := r.db.Model(&domain.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity)
	if result.Error != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to update cart item", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("cart item not found")
	}
	return nil
}

// RemoveItem deletes a product's line from a cart.
func (r *GormCartRepository) RemoveItem(cartID, productID uint) error {
	result := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&domain.CartItem{})
	if result.Error != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to remove cart item", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("cart item not found")
	}
	return nil
}

// Clear deletes all lines from a cart.
func (r *GormCartRepository) Clear(cartID uint) error {
	if err := r.db.Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to clear cart", err)
	}
	return nil
}
