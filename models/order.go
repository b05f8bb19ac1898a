package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductSnapshot is a value copy of the product taken at purchase time.
// Catalog edits or deletions after the order is created never reach it.
type ProductSnapshot struct {
	Title       string  `json:"title" bson:"title"`
	Description string  `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price"`
}

// NewProductSnapshot copies the fields an order needs out of a live product.
func NewProductSnapshot(p Product) ProductSnapshot {
	return ProductSnapshot{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
	}
}

type OrderLine struct {
	Quantity int             `json:"quantity" bson:"quantity"`
	Product  ProductSnapshot `json:"product" bson:"product"`
}

// Order is created once per confirmed checkout and never mutated.
type Order struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	UserEmail string             `json:"user_email" bson:"user_email"`
	Lines     []OrderLine        `json:"lines" bson:"lines"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
