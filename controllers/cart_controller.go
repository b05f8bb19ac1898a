package controllers

import (
	"net/http"

	apperrors "shop-service/common/errors"
	"shop-service/middleware"
	"shop-service/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartController struct {
	Cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{Cart: cart}
}

// GetCart returns the reconciled cart with resolved products.
func (cc *CartController) GetCart(c *gin.Context) {
	userID := middleware.GetUserID(c)

	resolved, _, err := cc.Cart.ResolveCart(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": resolved})
}

// AddItem adds or increments an item in the cart
func (cc *CartController) AddItem(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.Error(apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}

	cart, err := cc.Cart.AddItem(c, middleware.GetUserID(c), productID, req.Quantity)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// RemoveItem removes an item from the cart
func (cc *CartController) RemoveItem(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.Error(apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}

	cart, err := cc.Cart.RemoveItem(c, middleware.GetUserID(c), productID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cart)
}
