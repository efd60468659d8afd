package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ad1tya-dev/BiteMe/models"
	"github.com/ad1tya-dev/BiteMe/store"
)

// OrderService finalizes carts into persisted orders.
type OrderService struct {
	Store *store.Store
}

// Create appends a new pending order and clears the entire cart inside the
// same update, so both land in one persist: a crash can never record the
// order without emptying the cart, or the other way round.
//
// Items and total arrive as a snapshot computed by the caller (cart plus tax
// and delivery surcharge); the service does not recompute them.
func (s *OrderService) Create(ctx context.Context, items []models.OrderItem, total float64, userEmail string) (models.Order, error) {
	if userEmail == "" {
		return models.Order{}, fmt.Errorf("%w: purchaser email is required", ErrValidation)
	}
	if total < 0 {
		return models.Order{}, fmt.Errorf("%w: total must not be negative", ErrValidation)
	}

	var order models.Order
	err := s.Store.Update(ctx, func(doc *models.Document) error {
		order = models.Order{
			ID:        store.NextID(doc, models.CollectionOrders),
			Items:     append([]models.OrderItem{}, items...),
			Total:     total,
			UserEmail: userEmail,
			Status:    models.OrderStatusPending,
			CreatedAt: time.Now().UTC(),
		}
		doc.Orders = append(doc.Orders, order)
		doc.Cart = []models.CartLine{}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// Get returns the order with the given id.
func (s *OrderService) Get(ctx context.Context, id int) (models.Order, error) {
	var order models.Order
	err := s.Store.View(ctx, func(doc *models.Document) error {
		for _, o := range doc.Orders {
			if o.ID == id {
				order = o
				return nil
			}
		}
		return fmt.Errorf("%w: order %d", ErrNotFound, id)
	})
	return order, err
}

// ListForUser returns the orders placed by a purchaser email, oldest first.
func (s *OrderService) ListForUser(ctx context.Context, userEmail string) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.Store.View(ctx, func(doc *models.Document) error {
		for _, o := range doc.Orders {
			if o.UserEmail == userEmail {
				orders = append(orders, o)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// MarkPaid transitions a pending order to paid after its payment clears.
func (s *OrderService) MarkPaid(ctx context.Context, id int) (models.Order, error) {
	var order models.Order
	err := s.Store.Update(ctx, func(doc *models.Document) error {
		for i := range doc.Orders {
			if doc.Orders[i].ID == id {
				doc.Orders[i].Status = models.OrderStatusPaid
				order = doc.Orders[i]
				return nil
			}
		}
		return fmt.Errorf("%w: order %d", ErrNotFound, id)
	})
	return order, err
}
