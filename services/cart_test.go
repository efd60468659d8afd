package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ad1tya-dev/BiteMe/models"
	"github.com/ad1tya-dev/BiteMe/store"
)

func newTestStore(t *testing.T, foods ...models.Food) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	if len(foods) > 0 {
		err = s.Update(context.Background(), func(doc *models.Document) error {
			doc.Foods = append(doc.Foods, foods...)
			return nil
		})
		require.NoError(t, err)
	}
	return s
}

var testFoods = []models.Food{
	{ID: 1, Name: "Margherita", Type: "pizza", Price: 10.00, Calories: 850},
	{ID: 2, Name: "Pad Thai", Type: "noodles", Price: 12.50, Calories: 700},
}

func TestCartAddMergesByFood(t *testing.T) {
	cart := &CartService{Store: newTestStore(t, testFoods...)}
	ctx := context.Background()

	lines, err := cart.Add(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].FoodID)
	assert.Equal(t, 2, lines[0].Quantity)

	// A second add for the same food merges, it never appends.
	lines, err = cart.Add(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)

	// A different food gets its own line.
	lines, err = cart.Add(ctx, 2, 1)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestCartAddValidation(t *testing.T) {
	cart := &CartService{Store: newTestStore(t, testFoods...)}
	ctx := context.Background()

	tests := []struct {
		name     string
		quantity int
	}{
		{"zero quantity", 0},
		{"negative quantity", -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cart.Add(ctx, 1, tt.quantity)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCartAddUnknownFood(t *testing.T) {
	cart := &CartService{Store: newTestStore(t, testFoods...)}
	ctx := context.Background()

	_, err := cart.Add(ctx, 999, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	// The failed add must not have touched the cart.
	lines, err := cart.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartAddSnapshotsFood(t *testing.T) {
	cart := &CartService{Store: newTestStore(t, testFoods...)}
	ctx := context.Background()

	lines, err := cart.Add(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "Pad Thai", lines[0].Food.Name)
	assert.Equal(t, 12.50, lines[0].Food.Price)
}

func TestCartRemoveIdempotent(t *testing.T) {
	cart := &CartService{Store: newTestStore(t, testFoods...)}
	ctx := context.Background()

	lines, err := cart.Add(ctx, 1, 1)
	require.NoError(t, err)
	lineID := lines[0].ID

	require.NoError(t, cart.Remove(ctx, lineID))
	// Removing the same line again succeeds and changes nothing.
	require.NoError(t, cart.Remove(ctx, lineID))

	lines, err = cart.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartRemoveUnknownLine(t *testing.T) {
	cart := &CartService{Store: newTestStore(t, testFoods...)}
	require.NoError(t, cart.Remove(context.Background(), 42))
}

func TestCartTotal(t *testing.T) {
	cart := &CartService{}

	lines := []models.CartLine{
		{FoodID: 1, Quantity: 2, Food: models.Food{Price: 10.00}},
		{FoodID: 2, Quantity: 1, Food: models.Food{Price: 12.50}},
	}
	assert.Equal(t, 32.50, cart.Total(lines))
	assert.Equal(t, 0.0, cart.Total(nil))
}
