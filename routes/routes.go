package routes

import (
	"shop-service/controllers"
	"shop-service/middleware"

	"github.com/gin-gonic/gin"
)

func Register(router *gin.Engine, products *controllers.ProductController, cart *controllers.CartController, checkout *controllers.CheckoutController, orders *controllers.OrderController) {
	router.GET("/products", products.GetProducts)
	router.GET("/products/:productId", products.GetProduct)

	authed := router.Group("/", middleware.AuthMiddleware())
	{
		authed.GET("/cart", cart.GetCart)
		authed.POST("/cart", cart.AddItem)
		authed.DELETE("/cart/:productId", cart.RemoveItem)

		authed.GET("/checkout", checkout.GetCheckout)
		authed.GET("/checkout/success", checkout.CheckoutSuccess)

		authed.GET("/orders", orders.GetOrders)
		authed.GET("/orders/:orderId/invoice", orders.GetInvoice)
	}
}
