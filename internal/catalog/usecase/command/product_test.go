package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantgoods/storefront/internal/catalog/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

type memProductRepo struct {
	nextID   uint
	products map[uint]*domain.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uint]*domain.Product)}
}

func (m *memProductRepo) Create(p *domain.Product) error {
	for _, existing := range m.products {
		if existing.Slug == p.Slug {
			return apperr.Conflictf("slug already in use")
		}
	}
	m.nextID++
	p.ID = m.nextID
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memProductRepo) FindByID(id uint) (*domain.Product, error) {
	if p, ok := m.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperr.NotFoundf("product not found")
}

func (m *memProductRepo) FindBySlug(slug string) (*domain.Product, error) {
	for _, p := range m.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperr.NotFoundf("product not found")
}

func (m *memProductRepo) FindBySlugs(slugs []string) ([]domain.Product, error) {
	var out []domain.Product
	for _, slug := range slugs {
		if p, err := m.FindBySlug(slug); err == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memProductRepo) FindAll(f domain.ProductFilter) ([]domain.Product, int64, error) {
	var out []domain.Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (m *memProductRepo) Update(p *domain.Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return apperr.NotFoundf("product not found")
	}
	for _, existing := range m.products {
		if existing.ID != p.ID && existing.Slug == p.Slug {
			return apperr.Conflictf("slug already in use")
		}
	}
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memProductRepo) Delete(id uint) error {
	if _, ok := m.products[id]; !ok {
		return apperr.NotFoundf("product not found")
	}
	delete(m.products, id)
	return nil
}

func TestCreateProduct(t *testing.T) {
	handler := NewCreateProductHandler(newMemProductRepo())

	product, err := handler.Handle(CreateProductCommand{
		Slug:  "  Eco-Bottle ",
		Name:  "Eco Bottle",
		Price: 19.90,
		Stock: 20,
	})

	require.NoError(t, err)
	assert.Equal(t, "eco-bottle", product.Slug, "slug is trimmed and lowercased")
}

func TestCreateProduct_Validation(t *testing.T) {
	handler := NewCreateProductHandler(newMemProductRepo())

	cases := []struct {
		name string
		cmd  CreateProductCommand
	}{
		{"missing slug", CreateProductCommand{Name: "X", Price: 1}},
		{"missing name", CreateProductCommand{Slug: "x", Price: 1}},
		{"negative price", CreateProductCommand{Slug: "x", Name: "X", Price: -1}},
		{"negative stock", CreateProductCommand{Slug: "x", Name: "X", Price: 1, Stock: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler.Handle(tc.cmd)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestCreateProduct_DuplicateSlug(t *testing.T) {
	handler := NewCreateProductHandler(newMemProductRepo())

	_, err := handler.Handle(CreateProductCommand{Slug: "eco-bottle", Name: "Eco Bottle", Price: 19.90})
	require.NoError(t, err)

	_, err = handler.Handle(CreateProductCommand{Slug: "eco-bottle", Name: "Another", Price: 5})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestUpdateProduct_PartialUpdate(t *testing.T) {
	repo := newMemProductRepo()
	product, err := NewCreateProductHandler(repo).Handle(CreateProductCommand{
		Slug:        "eco-bottle",
		Name:        "Eco Bottle",
		Description: "Insulated steel bottle.",
		Price:       19.90,
		Stock:       20,
	})
	require.NoError(t, err)

	newPrice := 21.50
	updated, err := NewUpdateProductHandler(repo).Handle(UpdateProductCommand{
		ID:    product.ID,
		Price: &newPrice,
	})
	require.NoError(t, err)

	assert.InDelta(t, 21.50, updated.Price, 1e-9)
	assert.Equal(t, "Eco Bottle", updated.Name, "fields without a value stay put")
	assert.Equal(t, "Insulated steel bottle.", updated.Description)
	assert.Equal(t, 20, updated.Stock)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	_, err := NewUpdateProductHandler(newMemProductRepo()).Handle(UpdateProductCommand{ID: 42})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeleteProduct(t *testing.T) {
	repo := newMemProductRepo()
	product, err := NewCreateProductHandler(repo).Handle(CreateProductCommand{
		Slug: "eco-bottle", Name: "Eco Bottle", Price: 19.90,
	})
	require.NoError(t, err)

	require.NoError(t, NewDeleteProductHandler(repo).Handle(DeleteProductCommand{ID: product.ID}))

	err = NewDeleteProductHandler(repo).Handle(DeleteProductCommand{ID: product.ID})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
