package query

import (
	"time"

	"github.com/verdantgoods/storefront/internal/order/domain"
)

// GetStatsHandler computes the trailing-6-month sales overview.
type GetStatsHandler struct {
	repo domain.SaleRepository
	now  func() time.Time
}

// NewGetStatsHandler creates a new get stats handler.
func NewGetStatsHandler(repo domain.SaleRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo, now: time.Now}
}

// Handle returns sales bucketed by calendar month, covering the current
// month and the five before it.
func (h *GetStatsHandler) Handle() ([]domain.MonthlyBucket, error) {
	now := h.now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -5, 0)
	return h.repo.MonthlyStats(since)
}
