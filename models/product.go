package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is owned by the catalog; this service only reads it.
type Product struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	ImageURL    string             `json:"image_url" bson:"image_url"`
}
