package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	apperrors "shop-service/common/errors"
	"shop-service/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func testOrder(owner primitive.ObjectID) *models.Order {
	return &models.Order{
		ID:        primitive.NewObjectID(),
		UserID:    owner,
		UserEmail: "buyer@shop.test",
		Lines: []models.OrderLine{
			{Quantity: 2, Product: models.ProductSnapshot{Title: "Book", Price: 10}},
			{Quantity: 1, Product: models.ProductSnapshot{Title: "Pen", Price: 5}},
		},
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestInvoiceLines_Layout(t *testing.T) {
	order := testOrder(primitive.NewObjectID())

	lines := InvoiceLines(order)

	assert.Equal(t, []string{
		"----------------------",
		"Book - 2 x $10",
		"Pen - 1 x $5",
		"---",
		"Total Price: $25",
	}, lines)
}

func TestInvoiceLines_DecimalPrices(t *testing.T) {
	order := &models.Order{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		Lines: []models.OrderLine{
			{Quantity: 1, Product: models.ProductSnapshot{Title: "Mug", Price: 9.99}},
		},
	}

	lines := InvoiceLines(order)

	assert.Equal(t, "Mug - 1 x $9.99", lines[1])
	assert.Equal(t, "Total Price: $9.99", lines[3])
}

func TestDeliver_PutThenGetSameKey(t *testing.T) {
	owner := primitive.NewObjectID()
	order := testOrder(owner)
	orders := &mockOrderRepo{order: order}
	blobs := newFakeBlobStore()
	svc := NewInvoiceService(orders, blobs, zap.NewNop())

	stream, name, err := svc.Deliver(context.Background(), owner, order.ID)
	assert.NoError(t, err)
	defer stream.Close()

	assert.Equal(t, "invoice-"+order.ID.Hex()+".pdf", name)
	assert.Equal(t, []string{name}, blobs.puts)
	assert.Equal(t, []string{name}, blobs.gets)

	data, err := io.ReadAll(stream)
	assert.NoError(t, err)
	assert.Equal(t, len(blobs.objects[name]), len(data))
	assert.NotZero(t, len(data))
}

func TestDeliver_Idempotent(t *testing.T) {
	owner := primitive.NewObjectID()
	order := testOrder(owner)
	orders := &mockOrderRepo{order: order}
	blobs := newFakeBlobStore()
	svc := NewInvoiceService(orders, blobs, zap.NewNop())

	first, _, err := svc.Deliver(context.Background(), owner, order.ID)
	assert.NoError(t, err)
	firstBytes, _ := io.ReadAll(first)
	first.Close()

	second, _, err := svc.Deliver(context.Background(), owner, order.ID)
	assert.NoError(t, err)
	secondBytes, _ := io.ReadAll(second)
	second.Close()

	assert.Equal(t, firstBytes, secondBytes)
	// same key overwritten, no duplicate objects
	assert.Len(t, blobs.objects, 1)
}

func TestDeliver_Unauthorized(t *testing.T) {
	order := testOrder(primitive.NewObjectID())
	orders := &mockOrderRepo{order: order}
	blobs := newFakeBlobStore()
	svc := NewInvoiceService(orders, blobs, zap.NewNop())

	stream, _, err := svc.Deliver(context.Background(), primitive.NewObjectID(), order.ID)

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Nil(t, stream)
	// no bytes rendered or stored for a foreign order
	assert.Empty(t, blobs.puts)
	assert.Empty(t, blobs.gets)
}

func TestDeliver_OrderNotFound(t *testing.T) {
	orders := &mockOrderRepo{}
	svc := NewInvoiceService(orders, newFakeBlobStore(), zap.NewNop())

	_, _, err := svc.Deliver(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeliver_UploadFailure(t *testing.T) {
	owner := primitive.NewObjectID()
	order := testOrder(owner)
	blobs := newFakeBlobStore()
	blobs.putErr = errors.New("bucket unavailable")
	svc := NewInvoiceService(&mockOrderRepo{order: order}, blobs, zap.NewNop())

	_, _, err := svc.Deliver(context.Background(), owner, order.ID)

	assert.ErrorIs(t, err, apperrors.ErrInvoiceGeneration)
	assert.Empty(t, blobs.gets)
}

func TestDeliver_ReadBackFailure(t *testing.T) {
	owner := primitive.NewObjectID()
	order := testOrder(owner)
	blobs := newFakeBlobStore()
	blobs.getErr = errors.New("object gone")
	svc := NewInvoiceService(&mockOrderRepo{order: order}, blobs, zap.NewNop())

	_, _, err := svc.Deliver(context.Background(), owner, order.ID)

	assert.ErrorIs(t, err, apperrors.ErrStorage)
}
