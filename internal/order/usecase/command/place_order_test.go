package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/verdantgoods/storefront/internal/catalog/domain"
	"github.com/verdantgoods/storefront/internal/order/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

type fakeSaleRepo struct {
	created []*domain.Sale
	err     error
}

func (f *fakeSaleRepo) CreateSale(sale *domain.Sale) error {
	if f.err != nil {
		return f.err
	}
	sale.ID = uint(len(f.created) + 1)
	f.created = append(f.created, sale)
	return nil
}

func (f *fakeSaleRepo) FindByID(id uint) (*domain.Sale, error) {
	for _, s := range f.created {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperr.NotFoundf("sale not found")
}

func (f *fakeSaleRepo) FindAll(filter domain.SaleFilter) ([]domain.Sale, int64, error) {
	out := make([]domain.Sale, 0, len(f.created))
	for _, s := range f.created {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSaleRepo) MonthlyStats(since time.Time) ([]domain.MonthlyBucket, error) {
	return nil, nil
}

type fakeProductRepo struct {
	products map[string]catalogdomain.Product
}

func (f *fakeProductRepo) Create(p *catalogdomain.Product) error { return nil }
func (f *fakeProductRepo) Update(p *catalogdomain.Product) error { return nil }
func (f *fakeProductRepo) Delete(id uint) error                  { return nil }

func (f *fakeProductRepo) FindByID(id uint) (*catalogdomain.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, apperr.NotFoundf("product not found")
}

func (f *fakeProductRepo) FindBySlug(slug string) (*catalogdomain.Product, error) {
	if p, ok := f.products[slug]; ok {
		return &p, nil
	}
	return nil, apperr.NotFoundf("product not found")
}

func (f *fakeProductRepo) FindBySlugs(slugs []string) ([]catalogdomain.Product, error) {
	var out []catalogdomain.Product
	for _, slug := range slugs {
		if p, ok := f.products[slug]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindAll(filter catalogdomain.ProductFilter) ([]catalogdomain.Product, int64, error) {
	return nil, 0, nil
}

func newCheckoutFixture() (*PlaceOrderHandler, *fakeSaleRepo, *fakeProductRepo) {
	sales := &fakeSaleRepo{}
	products := &fakeProductRepo{products: map[string]catalogdomain.Product{
		"eco-bottle":     {ID: 1, Slug: "eco-bottle", Price: 19.90, Stock: 20},
		"bamboo-cutlery": {ID: 2, Slug: "bamboo-cutlery", Price: 12.50, Stock: 3},
	}}
	return NewPlaceOrderHandler(sales, products, nil), sales, products
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	handler, sales, _ := newCheckoutFixture()

	_, err := handler.Handle(context.Background(), PlaceOrderCommand{UserID: 7})

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Empty(t, sales.created)
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	handler, sales, _ := newCheckoutFixture()

	_, err := handler.Handle(context.Background(), PlaceOrderCommand{
		UserID: 7,
		Items: []OrderLine{
			{Slug: "eco-bottle", Quantity: 1},
			{Slug: "no-such-thing", Quantity: 1},
		},
	})

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "no-such-thing")
	assert.Empty(t, sales.created, "a failed checkout must not persist anything")
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	handler, sales, _ := newCheckoutFixture()

	_, err := handler.Handle(context.Background(), PlaceOrderCommand{
		UserID: 7,
		Items: []OrderLine{
			{Slug: "eco-bottle", Quantity: 2},
			{Slug: "bamboo-cutlery", Quantity: 4}, // only 3 in stock
		},
	})

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "bamboo-cutlery")
	assert.Empty(t, sales.created, "one short line must abort the whole order")
}

func TestPlaceOrder_QuantityCoercion(t *testing.T) {
	handler, sales, _ := newCheckoutFixture()

	sale, err := handler.Handle(context.Background(), PlaceOrderCommand{
		UserID: 7,
		Items:  []OrderLine{{Slug: "eco-bottle", Quantity: -3}},
	})

	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 1, sale.Items[0].Quantity)
	assert.Len(t, sales.created, 1)
}

func TestPlaceOrder_TotalFromSnapshotPrices(t *testing.T) {
	handler, _, products := newCheckoutFixture()

	sale, err := handler.Handle(context.Background(), PlaceOrderCommand{
		UserID: 7,
		Items: []OrderLine{
			{Slug: "eco-bottle", Quantity: 2},
			{Slug: "bamboo-cutlery", Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.InDelta(t, 2*19.90+12.50, sale.Total, 1e-9)
	assert.NotEmpty(t, sale.Reference)

	// Each line captures the unit price at purchase time; a later
	// catalog price change leaves the recorded sale untouched.
	p := products.products["eco-bottle"]
	p.Price = 99.99
	products.products["eco-bottle"] = p

	assert.InDelta(t, 19.90, sale.Items[0].UnitPrice, 1e-9)
	assert.InDelta(t, 2*19.90+12.50, sale.Total, 1e-9)
}

func TestPlaceOrder_RepoErrorPropagates(t *testing.T) {
	handler, sales, _ := newCheckoutFixture()
	sales.err = apperr.Validationf("insufficient stock for product %q", "eco-bottle")

	_, err := handler.Handle(context.Background(), PlaceOrderCommand{
		UserID: 7,
		Items:  []OrderLine{{Slug: "eco-bottle", Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
