package invoices

import (
	"fmt"
	"strings"
	"time"

	"github.com/agrovia/agroexport-web/internal/pricing"
	"github.com/agrovia/agroexport-web/pkg/enums"
	pkgerrors "github.com/agrovia/agroexport-web/pkg/errors"
	"github.com/agrovia/agroexport-web/pkg/upstream"
	"github.com/shopspring/decimal"
)

const (
	orderNumberPrefix   = "ORD-"
	invoiceNumberPrefix = "INV-"

	// Payment terms are a fixed business rule, not configurable per order.
	PaymentTermDays = 30
)

// Line is one priced invoice row, recomputed from the order's line items.
type Line struct {
	Name      string
	Category  string
	Unit      string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Invoice is the printable representation of a confirmed order.
type Invoice struct {
	Number      string
	OrderNumber string
	IssuedAt    time.Time
	DueAt       time.Time
	Customer    upstream.Contact
	Address     string
	Lines       []Line
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
	Currency    enums.Currency
}

// NumberFromOrder derives the invoice number deterministically from the
// order number: ORD-000123 becomes INV-000123.
func NumberFromOrder(orderNumber string) string {
	trimmed := strings.TrimSpace(orderNumber)
	return invoiceNumberPrefix + strings.TrimPrefix(trimmed, orderNumberPrefix)
}

// Build renders the invoice model for an order. Totals are recomputed from
// the line items through the shared pricing calculator so the quote view and
// the invoice can never disagree on the tax rate.
func Build(order *upstream.Order, issuedAt time.Time) (*Invoice, error) {
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order required")
	}
	if strings.TrimSpace(order.OrderNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number required")
	}
	if issuedAt.IsZero() {
		issuedAt = order.CreatedAt
	}
	if issuedAt.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "issue date required")
	}

	items := make([]pricing.Item, 0, len(order.Items))
	for _, item := range order.Items {
		unit := item.UnitPrice
		items = append(items, pricing.Item{
			ProductID: item.ProductID,
			Name:      item.Name,
			Category:  item.Category,
			Unit:      item.Unit,
			Quantity:  item.Quantity,
			UnitPrice: &unit,
		})
	}
	totals := pricing.Calculate(items)

	invoice := &Invoice{
		Number:      NumberFromOrder(order.OrderNumber),
		OrderNumber: order.OrderNumber,
		IssuedAt:    issuedAt,
		DueAt:       issuedAt.AddDate(0, 0, PaymentTermDays),
		Customer:    order.Customer,
		Address:     order.DeliveryAddress.Oneline(),
		Subtotal:    totals.Subtotal,
		Tax:         totals.Tax,
		Total:       totals.Total,
		Currency:    order.Currency.OrDefault(),
	}
	for _, item := range totals.Items {
		invoice.Lines = append(invoice.Lines, Line{
			Name:      item.Name,
			Category:  item.Category,
			Unit:      item.Unit,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.LineTotal,
		})
	}

	return invoice, nil
}

// Reference renders the number pair used in page titles and filenames.
func (i *Invoice) Reference() string {
	return fmt.Sprintf("%s (%s)", i.Number, i.OrderNumber)
}
