package services

import (
	"context"
	"fmt"

	"github.com/ad1tya-dev/BiteMe/models"
	"github.com/ad1tya-dev/BiteMe/store"
)

// CartService mutates the cart collection. The cart is keyed by food
// identity: adding a food that is already in the cart merges into the
// existing line instead of appending a second one.
type CartService struct {
	Store *store.Store
}

// Add puts quantity units of a food into the cart and returns the updated
// cart. Quantity must be at least 1 and the food must exist. The whole
// lookup-merge-persist runs inside one Update, so concurrent adds for the
// same food both land.
func (s *CartService) Add(ctx context.Context, foodID, quantity int) ([]models.CartLine, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", ErrValidation)
	}

	var cart []models.CartLine
	err := s.Store.Update(ctx, func(doc *models.Document) error {
		var food *models.Food
		for i := range doc.Foods {
			if doc.Foods[i].ID == foodID {
				food = &doc.Foods[i]
				break
			}
		}
		if food == nil {
			return fmt.Errorf("%w: food %d", ErrNotFound, foodID)
		}

		merged := false
		for i := range doc.Cart {
			if doc.Cart[i].FoodID == foodID {
				doc.Cart[i].Quantity += quantity
				merged = true
				break
			}
		}
		if !merged {
			doc.Cart = append(doc.Cart, models.CartLine{
				ID:       store.NextID(doc, models.CollectionCart),
				FoodID:   foodID,
				Quantity: quantity,
				Food:     *food, // snapshot, not a live reference
			})
		}

		cart = append([]models.CartLine{}, doc.Cart...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// Remove deletes the cart line with the given id. Removing an id that is not
// in the cart is not an error, so the operation is idempotent.
func (s *CartService) Remove(ctx context.Context, lineID int) error {
	return s.Store.Update(ctx, func(doc *models.Document) error {
		kept := doc.Cart[:0]
		for _, line := range doc.Cart {
			if line.ID != lineID {
				kept = append(kept, line)
			}
		}
		doc.Cart = kept
		return nil
	})
}

// Get loads the cart fresh from the store, so mutations by concurrent
// requests are visible.
func (s *CartService) Get(ctx context.Context) ([]models.CartLine, error) {
	var cart []models.CartLine
	err := s.Store.View(ctx, func(doc *models.Document) error {
		cart = append([]models.CartLine{}, doc.Cart...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// Total sums price x quantity over the given lines using each line's food
// snapshot. Pure; no store access.
func (s *CartService) Total(lines []models.CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Food.Price * float64(line.Quantity)
	}
	return total
}
