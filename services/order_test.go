package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ad1tya-dev/BiteMe/models"
)

func TestCreateOrderClearsCart(t *testing.T) {
	s := newTestStore(t, testFoods...)
	cart := &CartService{Store: s}
	orders := &OrderService{Store: s}
	ctx := context.Background()

	_, err := cart.Add(ctx, 1, 2)
	require.NoError(t, err)
	_, err = cart.Add(ctx, 2, 1)
	require.NoError(t, err)

	items := []models.OrderItem{
		{FoodID: 1, Name: "Margherita", Quantity: 2, UnitPrice: 10.00},
		{FoodID: 2, Name: "Pad Thai", Quantity: 1, UnitPrice: 12.50},
	}
	order, err := orders.Create(ctx, items, 38.00, "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 38.00, order.Total)
	assert.NotZero(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())

	// Order creation and cart clearing are one transaction: the cart is
	// empty in the very document the order was persisted into.
	lines, err := cart.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	orders := &OrderService{Store: newTestStore(t)}

	order, err := orders.Create(context.Background(), nil, 0, "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Empty(t, order.Items)
}

func TestCreateOrderValidation(t *testing.T) {
	orders := &OrderService{Store: newTestStore(t)}
	ctx := context.Background()

	_, err := orders.Create(ctx, nil, 10, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = orders.Create(ctx, nil, -1, "jo@example.com")
	assert.ErrorIs(t, err, ErrValidation)
}

// End-to-end flow: seed one food, merge two adds, place the order, and the
// cart comes back empty.
func TestCheckoutFlow(t *testing.T) {
	s := newTestStore(t, models.Food{ID: 1, Name: "Margherita", Price: 10.00})
	cart := &CartService{Store: s}
	orders := &OrderService{Store: s}
	ctx := context.Background()

	lines, err := cart.Add(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	lines, err = cart.Add(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)

	items := []models.OrderItem{
		{FoodID: 1, Name: "Margherita", Quantity: 5, UnitPrice: 10.00},
	}
	// Total includes tax and delivery surcharge computed by the caller.
	order, err := orders.Create(ctx, items, 55.00, "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 55.00, order.Total)

	lines, err = cart.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestListForUser(t *testing.T) {
	orders := &OrderService{Store: newTestStore(t)}
	ctx := context.Background()

	_, err := orders.Create(ctx, nil, 10, "jo@example.com")
	require.NoError(t, err)
	_, err = orders.Create(ctx, nil, 20, "sam@example.com")
	require.NoError(t, err)
	_, err = orders.Create(ctx, nil, 30, "jo@example.com")
	require.NoError(t, err)

	got, err := orders.ListForUser(ctx, "jo@example.com")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 10.00, got[0].Total)
	assert.Equal(t, 30.00, got[1].Total)

	got, err = orders.ListForUser(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMarkPaid(t *testing.T) {
	orders := &OrderService{Store: newTestStore(t)}
	ctx := context.Background()

	created, err := orders.Create(ctx, nil, 10, "jo@example.com")
	require.NoError(t, err)

	paid, err := orders.MarkPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, paid.Status)

	fetched, err := orders.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, fetched.Status)

	_, err = orders.MarkPaid(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderIDsNeverReused(t *testing.T) {
	orders := &OrderService{Store: newTestStore(t)}
	ctx := context.Background()

	first, err := orders.Create(ctx, nil, 10, "jo@example.com")
	require.NoError(t, err)
	second, err := orders.Create(ctx, nil, 20, "jo@example.com")
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}
