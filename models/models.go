package models

import "time"

// Collection names inside the persisted document. Id counters are keyed by
// these as well.
const (
	CollectionFoods  = "foods"
	CollectionUsers  = "users"
	CollectionCart   = "cart"
	CollectionOrders = "orders"
)

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"

	RoleUser = "user"
)

// Food is a menu entry. Foods are seeded into the document and never mutated
// by the services.
type Food struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	Calories    int     `json:"calories"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// SanitizedUser is the view of a user returned over the API. It has no
// password field at all, so a credential can never leak through encoding.
type SanitizedUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (u User) Sanitized() SanitizedUser {
	return SanitizedUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// CartLine is one merged cart entry, keyed by food identity: the cart never
// holds two lines for the same food. Food is a snapshot copied at add time,
// not a live reference into the foods collection.
type CartLine struct {
	ID       int  `json:"id"`
	FoodID   int  `json:"foodId"`
	Quantity int  `json:"quantity"`
	Food     Food `json:"food"`
}

// OrderItem is a denormalized line item captured when the order is placed.
type OrderItem struct {
	FoodID    int     `json:"foodId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type Order struct {
	ID        int         `json:"id"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	UserEmail string      `json:"userEmail"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Document is the aggregate root: the whole persisted store. Every operation
// loads it, mutates it in memory and writes it back in full. Counters holds
// the per-collection id allocators, persisted alongside the collections so
// ids are never reused after a deletion.
type Document struct {
	Foods    []Food         `json:"foods"`
	Users    []User         `json:"users"`
	Cart     []CartLine     `json:"cart"`
	Orders   []Order        `json:"orders"`
	Counters map[string]int `json:"counters,omitempty"`
}

// NewDocument returns an empty but valid document: all four collections
// present, each an empty sequence.
func NewDocument() *Document {
	return &Document{
		Foods:    []Food{},
		Users:    []User{},
		Cart:     []CartLine{},
		Orders:   []Order{},
		Counters: map[string]int{},
	}
}
