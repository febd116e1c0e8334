package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantgoods/storefront/internal/order/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

type recordingSaleRepo struct {
	lastFilter domain.SaleFilter
	lastSince  time.Time
	sales      []domain.Sale
}

func (r *recordingSaleRepo) CreateSale(sale *domain.Sale) error { return nil }

func (r *recordingSaleRepo) FindByID(id uint) (*domain.Sale, error) {
	for i := range r.sales {
		if r.sales[i].ID == id {
			return &r.sales[i], nil
		}
	}
	return nil, apperr.NotFoundf("sale not found")
}

func (r *recordingSaleRepo) FindAll(f domain.SaleFilter) ([]domain.Sale, int64, error) {
	r.lastFilter = f
	return r.sales, int64(len(r.sales)), nil
}

func (r *recordingSaleRepo) MonthlyStats(since time.Time) ([]domain.MonthlyBucket, error) {
	r.lastSince = since
	return []domain.MonthlyBucket{{Month: "2026-08", Orders: 3, Revenue: 59.70}}, nil
}

func TestListSales_PaginationDefaults(t *testing.T) {
	repo := &recordingSaleRepo{}
	handler := NewListSalesHandler(repo)

	_, err := handler.Handle(ListSalesQuery{})
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastFilter.Limit)
	assert.Equal(t, 0, repo.lastFilter.Offset)

	_, err = handler.Handle(ListSalesQuery{Take: 5000, Skip: -3})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastFilter.Limit, "page size is capped")
	assert.Equal(t, 0, repo.lastFilter.Offset)
}

func TestListSales_FiltersPassThrough(t *testing.T) {
	repo := &recordingSaleRepo{}
	handler := NewListSalesHandler(repo)

	from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	_, err := handler.Handle(ListSalesQuery{UserID: 9, From: from, To: to, Skip: 40, Take: 10})
	require.NoError(t, err)

	assert.Equal(t, uint(9), repo.lastFilter.UserID)
	assert.Equal(t, from, repo.lastFilter.From)
	assert.Equal(t, to, repo.lastFilter.To)
	assert.Equal(t, 10, repo.lastFilter.Limit)
	assert.Equal(t, 40, repo.lastFilter.Offset)
}

func TestGetStats_SinceFirstOfMonthMinusFive(t *testing.T) {
	repo := &recordingSaleRepo{}
	handler := NewGetStatsHandler(repo)
	handler.now = func() time.Time {
		return time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)
	}

	buckets, err := handler.Handle()
	require.NoError(t, err)
	require.Len(t, buckets, 1)

	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, repo.lastSince, "window opens on the first of the month, five months back")
}

func TestGetSale(t *testing.T) {
	repo := &recordingSaleRepo{sales: []domain.Sale{{ID: 3, Reference: "ref-3", Total: 12.50}}}
	handler := NewGetSaleHandler(repo)

	sale, err := handler.Handle(GetSaleQuery{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, "ref-3", sale.Reference)

	_, err = handler.Handle(GetSaleQuery{ID: 99})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
