package services

import (
	"context"
	"fmt"

	"github.com/ad1tya-dev/BiteMe/models"
	"github.com/ad1tya-dev/BiteMe/store"
)

// FoodService reads the seeded foods collection. Foods are never mutated
// through the API, so everything here runs under View.
type FoodService struct {
	Store *store.Store
}

func (s *FoodService) List(ctx context.Context) ([]models.Food, error) {
	var foods []models.Food
	err := s.Store.View(ctx, func(doc *models.Document) error {
		foods = append([]models.Food{}, doc.Foods...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return foods, nil
}

func (s *FoodService) Get(ctx context.Context, id int) (models.Food, error) {
	var food models.Food
	err := s.Store.View(ctx, func(doc *models.Document) error {
		for _, f := range doc.Foods {
			if f.ID == id {
				food = f
				return nil
			}
		}
		return fmt.Errorf("%w: food %d", ErrNotFound, id)
	})
	return food, err
}
