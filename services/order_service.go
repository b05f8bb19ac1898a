package services

import (
	"context"

	apperrors "shop-service/common/errors"
	"shop-service/models"
	"shop-service/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type OrderService struct {
	orders repository.OrderRepository
	users  repository.UserRepository
	cache  repository.CartCache
	log    *zap.Logger
}

func NewOrderService(orders repository.OrderRepository, users repository.UserRepository, cache repository.CartCache, log *zap.Logger) *OrderService {
	return &OrderService{orders: orders, users: users, cache: cache, log: log}
}

// Materialize converts a reconciled cart into a persisted order, snapshotting
// each product so later catalog changes cannot touch it, then clears the
// cart. If the clear fails after the order was saved the order stands: the
// leftover items still resolve, so the next cart read simply shows them
// again.
func (s *OrderService) Materialize(ctx context.Context, userID primitive.ObjectID, userEmail string, resolved []ResolvedCartItem) (*models.Order, error) {
	if len(resolved) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	lines := make([]models.OrderLine, 0, len(resolved))
	for _, item := range resolved {
		lines = append(lines, models.OrderLine{
			Quantity: item.Quantity,
			Product:  models.NewProductSnapshot(item.Product),
		})
	}

	order := &models.Order{
		UserID:    userID,
		UserEmail: userEmail,
		Lines:     lines,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.users.ClearCart(ctx, userID); err != nil {
		s.log.Warn("cart clear failed after order creation",
			zap.String("order_id", order.ID.Hex()),
			zap.String("user_id", userID.Hex()),
			zap.Error(err),
		)
	}
	if err := s.cache.Delete(ctx, userID.Hex()); err != nil {
		s.log.Warn("cart cache clear failed after order creation",
			zap.String("order_id", order.ID.Hex()),
			zap.Error(err),
		)
	}

	return order, nil
}

// ListOrders returns the requester's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return orders, nil
}
