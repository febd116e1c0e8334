package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantgoods/storefront/internal/catalog/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

type memPortfolioRepo struct {
	nextID uint
	items  map[uint]*domain.PortfolioItem
}

func newMemPortfolioRepo() *memPortfolioRepo {
	return &memPortfolioRepo{items: make(map[uint]*domain.PortfolioItem)}
}

func (m *memPortfolioRepo) Create(item *domain.PortfolioItem) error {
	for _, existing := range m.items {
		if existing.Slug == item.Slug {
			return apperr.Conflictf("slug already in use")
		}
	}
	m.nextID++
	item.ID = m.nextID
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *memPortfolioRepo) FindByID(id uint) (*domain.PortfolioItem, error) {
	if item, ok := m.items[id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, apperr.NotFoundf("portfolio item not found")
}

func (m *memPortfolioRepo) FindAll() ([]domain.PortfolioItem, error) {
	var out []domain.PortfolioItem
	for _, item := range m.items {
		out = append(out, *item)
	}
	return out, nil
}

func (m *memPortfolioRepo) Update(item *domain.PortfolioItem) error {
	if _, ok := m.items[item.ID]; !ok {
		return apperr.NotFoundf("portfolio item not found")
	}
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *memPortfolioRepo) Delete(id uint) error {
	if _, ok := m.items[id]; !ok {
		return apperr.NotFoundf("portfolio item not found")
	}
	delete(m.items, id)
	return nil
}

func TestSavePortfolio_CreateAndUpdate(t *testing.T) {
	repo := newMemPortfolioRepo()
	handler := NewSavePortfolioHandler(repo)

	item, err := handler.Handle(SavePortfolioCommand{
		Slug: "riverside-market",
		Name: "Riverside Market",
		Tags: []string{"retail", "zero-waste"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"retail", "zero-waste"}, item.TagList())

	updated, err := handler.Handle(SavePortfolioCommand{
		ID:   item.ID,
		Slug: "riverside-market",
		Name: "Riverside Market & Deli",
		Tags: []string{"retail"},
	})
	require.NoError(t, err)
	assert.Equal(t, item.ID, updated.ID)
	assert.Equal(t, "Riverside Market & Deli", updated.Name)
	assert.Equal(t, []string{"retail"}, updated.TagList())
}

func TestSavePortfolio_Validation(t *testing.T) {
	handler := NewSavePortfolioHandler(newMemPortfolioRepo())

	_, err := handler.Handle(SavePortfolioCommand{Name: "No Slug"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = handler.Handle(SavePortfolioCommand{Slug: "no-name"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestDeletePortfolio(t *testing.T) {
	repo := newMemPortfolioRepo()
	item, err := NewSavePortfolioHandler(repo).Handle(SavePortfolioCommand{
		Slug: "riverside-market", Name: "Riverside Market",
	})
	require.NoError(t, err)

	require.NoError(t, NewDeletePortfolioHandler(repo).Handle(DeletePortfolioCommand{ID: item.ID}))

	err = NewDeletePortfolioHandler(repo).Handle(DeletePortfolioCommand{ID: item.ID})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
