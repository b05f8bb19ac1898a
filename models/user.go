package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	Quantity  int                `json:"quantity" bson:"quantity"`
}

// Cart lives embedded in the user document. Items are unique per product;
// adding the same product again bumps the quantity.
type Cart struct {
	Items []CartItem `json:"items" bson:"items"`
}

type User struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Cart      Cart               `json:"cart" bson:"cart"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
