package command

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantgoods/storefront/internal/content/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

type memFAQRepo struct {
	nextID uint
	faqs   map[uint]*domain.FAQ
}

func newMemFAQRepo() *memFAQRepo {
	return &memFAQRepo{faqs: make(map[uint]*domain.FAQ)}
}

func (m *memFAQRepo) Create(faq *domain.FAQ) error {
	m.nextID++
	faq.ID = m.nextID
	cp := *faq
	m.faqs[faq.ID] = &cp
	return nil
}

func (m *memFAQRepo) FindByID(id uint) (*domain.FAQ, error) {
	if f, ok := m.faqs[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, apperr.NotFoundf("faq not found")
}

func (m *memFAQRepo) FindAll(publishedOnly bool) ([]domain.FAQ, error) {
	var out []domain.FAQ
	for _, f := range m.faqs {
		if publishedOnly && !f.Published {
			continue
		}
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memFAQRepo) Update(faq *domain.FAQ) error {
	if _, ok := m.faqs[faq.ID]; !ok {
		return apperr.NotFoundf("faq not found")
	}
	cp := *faq
	m.faqs[faq.ID] = &cp
	return nil
}

func (m *memFAQRepo) Delete(id uint) error {
	if _, ok := m.faqs[id]; !ok {
		return apperr.NotFoundf("faq not found")
	}
	delete(m.faqs, id)
	return nil
}

func TestCreateFAQ(t *testing.T) {
	handler := NewCreateFAQHandler(newMemFAQRepo())

	faq, err := handler.Handle(CreateFAQCommand{
		Question: "Do you ship internationally?",
		Answer:   "Yes, within Europe.",
		Position: 2,
	})

	require.NoError(t, err)
	assert.True(t, faq.Published, "FAQ entries default to published")
	assert.Equal(t, 2, faq.Position)
}

func TestCreateFAQ_Validation(t *testing.T) {
	handler := NewCreateFAQHandler(newMemFAQRepo())

	_, err := handler.Handle(CreateFAQCommand{Answer: "Yes."})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = handler.Handle(CreateFAQCommand{Question: "Why?", Answer: " "})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdateFAQ_PartialUpdate(t *testing.T) {
	repo := newMemFAQRepo()
	faq, err := NewCreateFAQHandler(repo).Handle(CreateFAQCommand{
		Question: "Do you ship internationally?",
		Answer:   "Yes.",
	})
	require.NoError(t, err)

	answer := "Yes, within Europe."
	unpublished := false
	updated, err := NewUpdateFAQHandler(repo).Handle(UpdateFAQCommand{
		ID:        faq.ID,
		Answer:    &answer,
		Published: &unpublished,
	})
	require.NoError(t, err)
	assert.Equal(t, "Do you ship internationally?", updated.Question, "untouched field survives")
	assert.Equal(t, answer, updated.Answer)
	assert.False(t, updated.Published)

	// Hidden entries drop out of the public listing but stay listable
	// for admins.
	public, err := repo.FindAll(true)
	require.NoError(t, err)
	assert.Empty(t, public)
	all, err := repo.FindAll(false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFAQOrdering(t *testing.T) {
	repo := newMemFAQRepo()
	create := NewCreateFAQHandler(repo)

	_, err := create.Handle(CreateFAQCommand{Question: "Second?", Answer: "B", Position: 2})
	require.NoError(t, err)
	_, err = create.Handle(CreateFAQCommand{Question: "First?", Answer: "A", Position: 1})
	require.NoError(t, err)

	faqs, err := repo.FindAll(true)
	require.NoError(t, err)
	require.Len(t, faqs, 2)
	assert.Equal(t, "First?", faqs[0].Question)
	assert.Equal(t, "Second?", faqs[1].Question)
}

func TestDeleteFAQ(t *testing.T) {
	repo := newMemFAQRepo()
	faq, err := NewCreateFAQHandler(repo).Handle(CreateFAQCommand{Question: "Q?", Answer: "A."})
	require.NoError(t, err)

	require.NoError(t, NewDeleteFAQHandler(repo).Handle(DeleteFAQCommand{ID: faq.ID}))

	err = NewDeleteFAQHandler(repo).Handle(DeleteFAQCommand{ID: faq.ID})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
