package controllers

import (
	"net/http"

	"shop-service/middleware"
	"shop-service/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	Cart     *services.CartService
	Checkout *services.CheckoutService
	Orders   *services.OrderService
}

func NewCheckoutController(cart *services.CartService, checkout *services.CheckoutService, orders *services.OrderService) *CheckoutController {
	return &CheckoutController{Cart: cart, Checkout: checkout, Orders: orders}
}

// GetCheckout reconciles the cart, persists any repair, and opens a payment
// session for what is left.
func (cc *CheckoutController) GetCheckout(c *gin.Context) {
	userID := middleware.GetUserID(c)

	resolved, _, err := cc.Cart.ResolveCart(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	base := requestBaseURL(c)
	session, err := cc.Checkout.BuildSession(c, resolved, base+"/checkout/success", base+"/checkout/cancel")
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      resolved,
		"total":      session.Total,
		"session_id": session.SessionID,
	})
}

// CheckoutSuccess converts the confirmed cart into an order.
func (cc *CheckoutController) CheckoutSuccess(c *gin.Context) {
	userID := middleware.GetUserID(c)

	resolved, _, err := cc.Cart.ResolveCart(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	order, err := cc.Orders.Materialize(c, userID, middleware.GetUserEmail(c), resolved)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
