package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	cartdomain "github.com/verdantgoods/storefront/internal/cart/domain"
	catalogdomain "github.com/verdantgoods/storefront/internal/catalog/domain"
	"github.com/verdantgoods/storefront/internal/order/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

// GormSaleRepository implements SaleRepository using GORM.
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GORM sale repository.
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// AutoMigrate runs database migrations for the sales tables.
func (r *GormSaleRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Sale{}, &domain.SaleItem{})
}

// CreateSale runs the checkout unit of work in a single transaction:
// the sale row, its items, the stock decrements, and the cart closure
// all commit or roll back together. The decrement is conditional on
// sufficient stock, so two checkouts racing on the same low-stock
// product cannot drive it negative; the loser aborts here.
func (r *GormSaleRepository) CreateSale(sale *domain.Sale) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		for _, item := range sale.Items {
			result := tx.Model(&catalogdomain.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return apperr.Validationf("insufficient stock for product %q", item.Slug)
			}
		}

		return tx.Model(&cartdomain.Cart{}).
			Where("user_id = ? AND status = ?", sale.UserID, cartdomain.StatusActive).
			Updates(map[string]any{
				"status":     cartdomain.StatusCheckedOut,
				"updated_at": time.Now(),
			}).Error
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return err
		}
		return apperr.Wrap(apperr.KindInternal, "checkout transaction failed", err)
	}
	return nil
}

// FindByID retrieves a sale with its items.
func (r *GormSaleRepository) FindByID(id uint) (*domain.Sale, error) {
	var sale domain.Sale
	if err := r.db.Preload("Items").First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("sale not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to find sale", err)
	}
	return &sale, nil
}

// FindAll lists sales with filtering and pagination, newest first.
func (r *GormSaleRepository) FindAll(f domain.SaleFilter) ([]domain.Sale, int64, error) {
	var sales []domain.Sale
	var total int64

	q := r.db.Model(&domain.Sale{})
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at <= ?", f.To)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "failed to count sales", err)
	}

	if err := q.Preload("Items").Order("created_at DESC").
		Limit(f.Limit).Offset(f.Offset).Find(&sales).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "failed to list sales", err)
	}
	return sales, total, nil
}

// MonthlyStats buckets sales since the given time by calendar month.
func (r *GormSaleRepository) MonthlyStats(since time.Time) ([]domain.MonthlyBucket, error) {
	var buckets []domain.MonthlyBucket
	err := r.db.Raw(`
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
		       COUNT(*) AS orders,
		       COALESCE(SUM(total), 0) AS revenue
		FROM sales
		WHERE created_at >= ?
		GROUP BY 1
		ORDER BY 1`, since).Scan(&buckets).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to compute sales stats", err)
	}
	return buckets, nil
}
