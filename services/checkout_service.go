package services

import (
	"context"
	"fmt"
	"math"

	apperrors "shop-service/common/errors"

	"go.uber.org/zap"
)

// SessionLineItem is one line of a payment session request. UnitAmount is in
// the provider's minor currency unit.
type SessionLineItem struct {
	Name        string
	Description string
	UnitAmount  int64
	Currency    string
	Quantity    int64
}

// SessionCreator is the external payment-session provider.
type SessionCreator interface {
	CreateSession(ctx context.Context, lineItems []SessionLineItem, successURL, cancelURL string) (string, error)
}

// CheckoutSession is what the checkout page needs: the provider session id
// plus the total in decimal currency units for display.
type CheckoutSession struct {
	SessionID string  `json:"session_id"`
	Total     float64 `json:"total"`
}

type CheckoutService struct {
	sessions SessionCreator
	currency string
	log      *zap.Logger
}

func NewCheckoutService(sessions SessionCreator, currency string, log *zap.Logger) *CheckoutService {
	return &CheckoutService{sessions: sessions, currency: currency, log: log}
}

// BuildSession maps a reconciled cart into a provider session. Line amounts
// and the decimal total are computed in the same pass. The provider call is
// single-attempt; a failure propagates and the user re-submits.
func (s *CheckoutService) BuildSession(ctx context.Context, resolved []ResolvedCartItem, successURL, cancelURL string) (*CheckoutSession, error) {
	if len(resolved) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	lineItems := make([]SessionLineItem, 0, len(resolved))
	total := 0.0
	for _, item := range resolved {
		price := item.Product.Price
		if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
			return nil, apperrors.Wrap(apperrors.ErrInvalidPrice,
				fmt.Errorf("product %s has price %v", item.Product.ID.Hex(), price))
		}

		total += float64(item.Quantity) * price
		lineItems = append(lineItems, SessionLineItem{
			Name:        item.Product.Title,
			Description: item.Product.Description,
			UnitAmount:  int64(math.Round(price * 100)),
			Currency:    s.currency,
			Quantity:    int64(item.Quantity),
		})
	}

	sessionID, err := s.sessions.CreateSession(ctx, lineItems, successURL, cancelURL)
	if err != nil {
		s.log.Error("payment session creation failed", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrPaymentProvider, err)
	}

	return &CheckoutSession{SessionID: sessionID, Total: total}, nil
}
