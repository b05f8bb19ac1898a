package controllers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "shop-service/common/errors"
	"shop-service/middleware"
	"shop-service/models"
	"shop-service/repository"
	"shop-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type stubOrderRepo struct {
	order *models.Order
}

func (s *stubOrderRepo) Create(_ context.Context, order *models.Order) error { return nil }

func (s *stubOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	if s.order == nil || s.order.ID != id {
		return nil, repository.ErrOrderNotFound
	}
	return s.order, nil
}

func (s *stubOrderRepo) FindByUserID(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	if s.order != nil && s.order.UserID == userID {
		return []models.Order{*s.order}, nil
	}
	return nil, nil
}

type stubBlobStore struct {
	objects map[string][]byte
}

func (s *stubBlobStore) Put(_ context.Context, key, contentType string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[key] = data
	return nil
}

func (s *stubBlobStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.objects[key])), nil
}

func invoiceRouter(orders *stubOrderRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	invoiceService := services.NewInvoiceService(orders, &stubBlobStore{}, zap.NewNop())
	orderService := services.NewOrderService(orders, nil, nil, zap.NewNop())
	oc := NewOrderController(orderService, invoiceService)

	router := gin.New()
	router.Use(apperrors.ErrorMiddleware())
	router.GET("/orders/:orderId/invoice", middleware.AuthMiddleware(), oc.GetInvoice)
	return router
}

func storedOrder(owner primitive.ObjectID) *models.Order {
	return &models.Order{
		ID:     primitive.NewObjectID(),
		UserID: owner,
		Lines: []models.OrderLine{
			{Quantity: 2, Product: models.ProductSnapshot{Title: "Book", Price: 10}},
		},
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGetInvoice_StreamsPDFWithHeaders(t *testing.T) {
	owner := primitive.NewObjectID()
	order := storedOrder(owner)
	router := invoiceRouter(&stubOrderRepo{order: order})

	req := httptest.NewRequest(http.MethodGet, "/orders/"+order.ID.Hex()+"/invoice", nil)
	req.Header.Set("X-User-ID", owner.Hex())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "inline; filename=invoice-"+order.ID.Hex()+".pdf", w.Header().Get("Content-Disposition"))
	assert.NotZero(t, w.Body.Len())
}

func TestGetInvoice_ForeignOrderRejected(t *testing.T) {
	order := storedOrder(primitive.NewObjectID())
	router := invoiceRouter(&stubOrderRepo{order: order})

	req := httptest.NewRequest(http.MethodGet, "/orders/"+order.ID.Hex()+"/invoice", nil)
	req.Header.Set("X-User-ID", primitive.NewObjectID().Hex())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Header().Get("Content-Type"), "pdf")
}

func TestGetInvoice_UnknownOrder(t *testing.T) {
	router := invoiceRouter(&stubOrderRepo{})

	req := httptest.NewRequest(http.MethodGet, "/orders/"+primitive.NewObjectID().Hex()+"/invoice", nil)
	req.Header.Set("X-User-ID", primitive.NewObjectID().Hex())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetInvoice_MissingIdentity(t *testing.T) {
	router := invoiceRouter(&stubOrderRepo{})

	req := httptest.NewRequest(http.MethodGet, "/orders/"+primitive.NewObjectID().Hex()+"/invoice", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
