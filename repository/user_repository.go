package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shop-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository persists the user document that carries the cart.
// Cart writes replace the whole embedded cart; the store guarantees
// per-document atomicity.
type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	SaveCart(ctx context.Context, userID primitive.ObjectID, cart models.Cart) error
	ClearCart(ctx context.Context, userID primitive.ObjectID) error
}

type MongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *MongoUserRepository) SaveCart(ctx context.Context, userID primitive.ObjectID, cart models.Cart) error {
	update := bson.M{"$set": bson.M{
		"cart":       cart,
		"updated_at": time.Now().UTC(),
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	return r.SaveCart(ctx, userID, models.Cart{Items: []models.CartItem{}})
}
