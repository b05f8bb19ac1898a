package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	apperrors "shop-service/common/errors"
	"shop-service/models"
	"shop-service/repository"
	"shop-service/storage"

	"github.com/go-pdf/fpdf"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const invoiceContentType = "application/pdf"

type InvoiceService struct {
	orders repository.OrderRepository
	blobs  storage.BlobStore
	log    *zap.Logger
}

func NewInvoiceService(orders repository.OrderRepository, blobs storage.BlobStore, log *zap.Logger) *InvoiceService {
	return &InvoiceService{orders: orders, blobs: blobs, log: log}
}

// InvoiceObjectName is the storage key for an order's invoice. Deterministic
// per order, so repeated deliveries overwrite the same object.
func InvoiceObjectName(orderID primitive.ObjectID) string {
	return "invoice-" + orderID.Hex() + ".pdf"
}

// InvoiceLines lays out the invoice text. The total is recomputed from the
// order's own snapshots, never taken from the caller.
func InvoiceLines(order *models.Order) []string {
	lines := []string{"----------------------"}
	total := 0.0
	for _, l := range order.Lines {
		total += float64(l.Quantity) * l.Product.Price
		lines = append(lines, fmt.Sprintf("%s - %d x $%s", l.Product.Title, l.Quantity, formatAmount(l.Product.Price)))
	}
	lines = append(lines, "---")
	lines = append(lines, "Total Price: $"+formatAmount(total))
	return lines
}

// formatAmount prints a decimal amount without trailing zeros ("25", "9.99").
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// render streams the order's invoice PDF. The writer side runs in its own
// goroutine feeding an io.Pipe, so consumers pull the document without it
// ever being materialized as one buffer here.
func (s *InvoiceService) render(order *models.Order) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		pdf := fpdf.New("P", "mm", "A4", "")
		// Pin the embedded timestamps to the order so repeated renders of
		// the same order are byte-identical.
		pdf.SetCreationDate(order.CreatedAt)
		pdf.SetModificationDate(order.CreatedAt)
		pdf.AddPage()

		lines := InvoiceLines(order)
		for i, line := range lines {
			size := 14.0
			if i == len(lines)-1 {
				size = 20.0
			}
			pdf.SetFont("Helvetica", "", size)
			pdf.CellFormat(0, size/2, line, "", 1, "L", false, 0, "")
		}

		pw.CloseWithError(pdf.Output(pw))
	}()
	return pr
}

// Deliver runs the invoice pipeline for one order: render the document,
// stream it into blob storage under its deterministic key, then re-open a
// fresh read stream from storage for the caller to pipe to the response.
// Ownership and existence are checked before a single byte is produced.
func (s *InvoiceService) Deliver(ctx context.Context, requesterID, orderID primitive.ObjectID) (io.ReadCloser, string, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, "", apperrors.Wrap(apperrors.ErrNotFound, err)
		}
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if order.UserID != requesterID {
		return nil, "", apperrors.ErrUnauthorized
	}

	name := InvoiceObjectName(orderID)

	doc := s.render(order)
	if err := s.blobs.Put(ctx, name, invoiceContentType, doc); err != nil {
		doc.Close()
		s.log.Error("invoice upload failed",
			zap.String("order_id", orderID.Hex()),
			zap.String("stage", "upload"),
			zap.Error(err),
		)
		return nil, "", apperrors.Wrap(apperrors.ErrInvoiceGeneration, err)
	}
	doc.Close()

	stream, err := s.blobs.Get(ctx, name)
	if err != nil {
		s.log.Error("invoice read-back failed",
			zap.String("order_id", orderID.Hex()),
			zap.String("stage", "stream_back"),
			zap.Error(err),
		)
		return nil, "", apperrors.Wrap(apperrors.ErrStorage, err)
	}

	return stream, name, nil
}
