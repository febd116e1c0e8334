package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantgoods/storefront/internal/cart/domain"
	catalogdomain "github.com/verdantgoods/storefront/internal/catalog/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

// memCartRepo is an in-memory CartRepository with the same primitive
// contract as the GORM implementation.
type memCartRepo struct {
	nextCartID uint
	nextItemID uint
	carts      map[uint]*domain.Cart // keyed by user id
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[uint]*domain.Cart)}
}

func (m *memCartRepo) GetOrCreateActive(userID uint) (*domain.Cart, error) {
	cart, ok := m.carts[userID]
	if !ok {
		m.nextCartID++
		cart = &domain.Cart{ID: m.nextCartID, UserID: userID, Status: domain.StatusActive}
		m.carts[userID] = cart
	}
	// Return a copy the way a fresh DB read would.
	out := *cart
	out.Items = append([]domain.CartItem(nil), cart.Items...)
	return &out, nil
}

func (m *memCartRepo) CreateItem(cartID, productID uint, quantity int) error {
	for _, cart := range m.carts {
		if cart.ID != cartID {
			continue
		}
		for _, item := range cart.Items {
			if item.ProductID == productID {
				return apperr.Conflictf("product already in cart")
			}
		}
		m.nextItemID++
		cart.Items = append(cart.Items, domain.CartItem{
			ID:        m.nextItemID,
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
		})
		return nil
	}
	return apperr.NotFoundf("cart not found")
}

func (m *memCartRepo) UpdateItemQuantity(itemID uint, quantity int) error {
	for _, cart := range m.carts {
		for i := range cart.Items {
			if cart.Items[i].ID == itemID {
				cart.Items[i].Quantity = quantity
				return nil
			}
		}
	}
	return apperr.NotFoundf("cart item not found")
}

func (m *memCartRepo) RemoveItem(cartID, productID uint) error {
	for _, cart := range m.carts {
		if cart.ID != cartID {
			continue
		}
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
				return nil
			}
		}
	}
	return apperr.NotFoundf("cart item not found")
}

func (m *memCartRepo) Clear(cartID uint) error {
	for _, cart := range m.carts {
		if cart.ID == cartID {
			cart.Items = nil
			return nil
		}
	}
	return apperr.NotFoundf("cart not found")
}

type stubProductRepo struct {
	known map[uint]catalogdomain.Product
}

func (s *stubProductRepo) Create(p *catalogdomain.Product) error { return nil }
func (s *stubProductRepo) Update(p *catalogdomain.Product) error { return nil }
func (s *stubProductRepo) Delete(id uint) error                  { return nil }

func (s *stubProductRepo) FindByID(id uint) (*catalogdomain.Product, error) {
	if p, ok := s.known[id]; ok {
		return &p, nil
	}
	return nil, apperr.NotFoundf("product not found")
}

func (s *stubProductRepo) FindBySlug(slug string) (*catalogdomain.Product, error) {
	return nil, apperr.NotFoundf("product not found")
}

func (s *stubProductRepo) FindBySlugs(slugs []string) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) FindAll(f catalogdomain.ProductFilter) ([]catalogdomain.Product, int64, error) {
	return nil, 0, nil
}

func newCartFixture() (*memCartRepo, *stubProductRepo) {
	carts := newMemCartRepo()
	products := &stubProductRepo{known: map[uint]catalogdomain.Product{
		1: {ID: 1, Slug: "eco-bottle", Price: 19.90, Stock: 20},
		2: {ID: 2, Slug: "hemp-tote", Price: 24.00, Stock: 15},
	}}
	return carts, products
}

func TestAddItem_DuplicateAddIncrementsLine(t *testing.T) {
	carts, products := newCartFixture()
	handler := NewAddItemHandler(carts, products)

	_, err := handler.Handle(AddItemCommand{UserID: 5, ProductID: 1, Quantity: 2})
	require.NoError(t, err)

	cart, err := handler.Handle(AddItemCommand{UserID: 5, ProductID: 1, Quantity: 3})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1, "duplicate add must not create a second line")
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddItem_QuantityCoercion(t *testing.T) {
	carts, products := newCartFixture()
	handler := NewAddItemHandler(carts, products)

	cart, err := handler.Handle(AddItemCommand{UserID: 5, ProductID: 1, Quantity: 0})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	carts, products := newCartFixture()
	handler := NewAddItemHandler(carts, products)

	_, err := handler.Handle(AddItemCommand{UserID: 5, ProductID: 99, Quantity: 1})

	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSetQuantity(t *testing.T) {
	carts, products := newCartFixture()
	add := NewAddItemHandler(carts, products)
	set := NewSetQuantityHandler(carts)

	_, err := add.Handle(AddItemCommand{UserID: 5, ProductID: 1, Quantity: 4})
	require.NoError(t, err)

	cart, err := set.Handle(SetQuantityCommand{UserID: 5, ProductID: 1, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	// Floor at 1 rather than dropping the line.
	cart, err = set.Handle(SetQuantityCommand{UserID: 5, ProductID: 1, Quantity: -2})
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestSetQuantity_ProductNotInCart(t *testing.T) {
	carts, products := newCartFixture()
	set := NewSetQuantityHandler(carts)

	_, err := NewAddItemHandler(carts, products).Handle(AddItemCommand{UserID: 5, ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	_, err = set.Handle(SetQuantityCommand{UserID: 5, ProductID: 2, Quantity: 3})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestMergeCart_AddsQuantitiesPerProduct(t *testing.T) {
	carts, products := newCartFixture()
	add := NewAddItemHandler(carts, products)
	merge := NewMergeCartHandler(carts, products)

	_, err := add.Handle(AddItemCommand{UserID: 5, ProductID: 1, Quantity: 3})
	require.NoError(t, err)

	cart, err := merge.Handle(MergeCartCommand{
		UserID: 5,
		Lines: []domain.GuestLine{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	byProduct := map[uint]int{}
	for _, item := range cart.Items {
		byProduct[item.ProductID] = item.Quantity
	}
	assert.Equal(t, 5, byProduct[1], "overlapping product quantities add up")
	assert.Equal(t, 1, byProduct[2])
}

func TestMergeCart_SkipsUnknownProducts(t *testing.T) {
	carts, products := newCartFixture()
	merge := NewMergeCartHandler(carts, products)

	cart, err := merge.Handle(MergeCartCommand{
		UserID: 5,
		Lines: []domain.GuestLine{
			{ProductID: 99, Quantity: 4},
			{ProductID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1, "stale guest lines are dropped, not fatal")
	assert.Equal(t, uint(2), cart.Items[0].ProductID)
}

func TestMergeCart_RepeatedGuestLine(t *testing.T) {
	carts, products := newCartFixture()
	merge := NewMergeCartHandler(carts, products)

	cart, err := merge.Handle(MergeCartCommand{
		UserID: 5,
		Lines: []domain.GuestLine{
			{ProductID: 1, Quantity: 2},
			{ProductID: 1, Quantity: 3},
		},
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestClearCart(t *testing.T) {
	carts, products := newCartFixture()
	add := NewAddItemHandler(carts, products)
	clearCart := NewClearCartHandler(carts)

	_, err := add.Handle(AddItemCommand{UserID: 5, ProductID: 1, Quantity: 2})
	require.NoError(t, err)
	_, err = add.Handle(AddItemCommand{UserID: 5, ProductID: 2, Quantity: 1})
	require.NoError(t, err)

	cart, err := clearCart.Handle(ClearCartCommand{UserID: 5})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestRemoveItem(t *testing.T) {
	carts, products := newCartFixture()
	add := NewAddItemHandler(carts, products)
	remove := NewRemoveItemHandler(carts)

	_, err := add.Handle(AddItemCommand{UserID: 5, ProductID: 1, Quantity: 2})
	require.NoError(t, err)

	cart, err := remove.Handle(RemoveItemCommand{UserID: 5, ProductID: 1})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = remove.Handle(RemoveItemCommand{UserID: 5, ProductID: 1})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
