package services

import (
	"context"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
)

// StripeSessionCreator implements SessionCreator against Stripe Checkout.
type StripeSessionCreator struct{}

func NewStripeSessionCreator(secretKey string) *StripeSessionCreator {
	stripe.Key = secretKey
	return &StripeSessionCreator{}
}

func (s *StripeSessionCreator) CreateSession(ctx context.Context, lineItems []SessionLineItem, successURL, cancelURL string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
	params.Context = ctx

	for _, item := range lineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.Description != "" {
			productData.Description = stripe.String(item.Description)
		}
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(item.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(item.Currency),
				UnitAmount:  stripe.Int64(item.UnitAmount),
				ProductData: productData,
			},
		})
	}

	sess, err := session.New(params)
	if err != nil {
		return "", err
	}
	return sess.ID, nil
}
