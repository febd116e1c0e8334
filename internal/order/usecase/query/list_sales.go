package query

import (
	"time"

	"github.com/verdantgoods/storefront/internal/order/domain"
)

// ListSalesQuery represents the administrative sales listing.
type ListSalesQuery struct {
	UserID uint
	From   time.Time
	To     time.Time
	Skip   int
	Take   int
}

// ListSalesResult is one page of sales plus the unpaginated total.
type ListSalesResult struct {
	Sales []domain.Sale `json:"sales"`
	Total int64         `json:"total"`
}

// ListSalesHandler handles the sales listing query.
type ListSalesHandler struct {
	repo domain.SaleRepository
}

// NewListSalesHandler creates a new list sales handler.
func NewListSalesHandler(repo domain.SaleRepository) *ListSalesHandler {
	return &ListSalesHandler{repo: repo}
}

// Handle executes the list sales query. Take defaults to 20 and is
// capped at 100.
func (h *ListSalesHandler) Handle(q ListSalesQuery) (*ListSalesResult, error) {
	if q.Take <= 0 {
		q.Take = 20
	}
	if q.Take > 100 {
		q.Take = 100
	}
	if q.Skip < 0 {
		q.Skip = 0
	}

	sales, total, err := h.repo.FindAll(domain.SaleFilter{
		UserID: q.UserID,
		From:   q.From,
		To:     q.To,
		Limit:  q.Take,
		Offset: q.Skip,
	})
	if err != nil {
		return nil, err
	}
	return &ListSalesResult{Sales: sales, Total: total}, nil
}
