package services

import (
	"context"
	"errors"
	"fmt"

	apperrors "shop-service/common/errors"
	"shop-service/models"
	"shop-service/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ResolvedCartItem pairs a cart entry with a value copy of the product it
// points at, taken at resolution time.
type ResolvedCartItem struct {
	Quantity int            `json:"quantity"`
	Product  models.Product `json:"product"`
}

type CartService struct {
	users    repository.UserRepository
	products repository.ProductRepository
	cache    repository.CartCache
	log      *zap.Logger
}

func NewCartService(users repository.UserRepository, products repository.ProductRepository, cache repository.CartCache, log *zap.Logger) *CartService {
	return &CartService{users: users, products: products, cache: cache, log: log}
}

// Reconcile resolves every cart entry against the catalog and drops the ones
// whose product no longer exists, preserving relative order. It performs no
// writes; callers persist the repaired cart when repaired is true.
func (s *CartService) Reconcile(ctx context.Context, items []models.CartItem) ([]ResolvedCartItem, bool, error) {
	resolved := make([]ResolvedCartItem, 0, len(items))
	repaired := false

	for _, item := range items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				repaired = true
				continue
			}
			return nil, false, fmt.Errorf("catalog lookup failed: %w", err)
		}
		resolved = append(resolved, ResolvedCartItem{
			Quantity: item.Quantity,
			Product:  *product,
		})
	}

	return resolved, repaired, nil
}

// ResolveCart reads the user's cart, reconciles it, and — when a repair was
// needed — writes the pruned cart back to the user document and the cache
// before returning. Totals and snapshots are only ever built from its result.
func (s *CartService) ResolveCart(ctx context.Context, userID primitive.ObjectID) ([]ResolvedCartItem, bool, error) {
	items, err := s.cartItems(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	resolved, repaired, err := s.Reconcile(ctx, items)
	if err != nil {
		return nil, false, err
	}

	if repaired {
		if err := s.persistCart(ctx, userID, cartFromResolved(resolved)); err != nil {
			return nil, false, err
		}
		s.log.Info("cart repaired",
			zap.String("user_id", userID.Hex()),
			zap.Int("items_dropped", len(items)-len(resolved)),
		)
	}

	return resolved, repaired, nil
}

// AddItem adds the product to the cart or bumps its quantity.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (models.Cart, error) {
	if quantity <= 0 {
		return models.Cart{}, apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Errorf("quantity must be positive, got %d", quantity))
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return models.Cart{}, apperrors.Wrap(apperrors.ErrNotFound, err)
		}
		return models.Cart{}, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}

	cart := user.Cart
	found := false
	for i, existing := range cart.Items {
		if existing.ProductID == productID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: quantity})
	}

	if err := s.persistCart(ctx, userID, cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// RemoveItem removes the product from the cart entirely.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (models.Cart, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}

	items := make([]models.CartItem, 0, len(user.Cart.Items))
	for _, item := range user.Cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart := models.Cart{Items: items}

	if err := s.persistCart(ctx, userID, cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// cartItems prefers the cached copy and falls back to the user document.
// Mutations and repairs write through to both, so the copies stay in step.
func (s *CartService) cartItems(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	cached, err := s.cache.Get(ctx, userID.Hex())
	if err == nil {
		return cached.Items, nil
	}
	if !errors.Is(err, repository.ErrCacheMiss) {
		s.log.Warn("cart cache read failed", zap.String("user_id", userID.Hex()), zap.Error(err))
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Cart.Items, nil
}

// persistCart writes the cart to the user document and the cache. Both
// writes must land before the caller proceeds to totals or snapshots.
func (s *CartService) persistCart(ctx context.Context, userID primitive.ObjectID, cart models.Cart) error {
	if err := s.users.SaveCart(ctx, userID, cart); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	if err := s.cache.Set(ctx, userID.Hex(), cart); err != nil {
		return fmt.Errorf("failed to update cart cache: %w", err)
	}
	return nil
}

func cartFromResolved(resolved []ResolvedCartItem) models.Cart {
	items := make([]models.CartItem, 0, len(resolved))
	for _, r := range resolved {
		items = append(items, models.CartItem{ProductID: r.Product.ID, Quantity: r.Quantity})
	}
	return models.Cart{Items: items}
}
