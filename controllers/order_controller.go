package controllers

import (
	"io"
	"net/http"

	apperrors "shop-service/common/errors"
	"shop-service/common/logger"
	"shop-service/middleware"
	"shop-service/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type OrderController struct {
	Orders   *services.OrderService
	Invoices *services.InvoiceService
}

func NewOrderController(orders *services.OrderService, invoices *services.InvoiceService) *OrderController {
	return &OrderController{Orders: orders, Invoices: invoices}
}

// GetOrders lists the requester's orders
func (oc *OrderController) GetOrders(c *gin.Context) {
	orders, err := oc.Orders.ListOrders(c, middleware.GetUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetInvoice runs the invoice delivery pipeline and pipes the stored
// document to the response. Headers go out only once the storage stream is
// open; a failure mid-copy can only abort the connection.
func (oc *OrderController) GetInvoice(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		c.Error(apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}

	stream, name, err := oc.Invoices.Deliver(c.Request.Context(), middleware.GetUserID(c), orderID)
	if err != nil {
		c.Error(err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "inline; filename="+name)
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, stream); err != nil {
		logger.Error(c, "invoice stream aborted", err, zap.String("order_id", orderID.Hex()))
		c.Abort()
	}
}
