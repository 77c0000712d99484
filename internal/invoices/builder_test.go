package invoices

import (
	"testing"
	"time"

	"github.com/agrovia/agroexport-web/pkg/enums"
	"github.com/agrovia/agroexport-web/pkg/types"
	"github.com/agrovia/agroexport-web/pkg/upstream"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleOrder() *upstream.Order {
	return &upstream.Order{
		ID:          "o1",
		OrderNumber: "ORD-000123",
		Customer:    upstream.Contact{Name: "Ama Mensah", Email: "ama@example.com"},
		DeliveryAddress: types.Address{
			Street: "12 Harbor Rd", City: "Tema", State: "Greater Accra", Country: "Ghana", Zip: "00233",
		},
		Items: []upstream.OrderItem{
			{Name: "Cashew Nuts", Quantity: 5, UnitPrice: dec("100")},
			{Name: "Shea Butter", Quantity: 2, UnitPrice: dec("15")},
		},
		Currency:  enums.CurrencyUSD,
		CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestNumberFromOrder(t *testing.T) {
	require.Equal(t, "INV-000123", NumberFromOrder("ORD-000123"))
	require.Equal(t, "INV-X42", NumberFromOrder("X42"))
	require.Equal(t, "INV-000123", NumberFromOrder("  ORD-000123  "))
}

func TestBuildDerivesDueDateFromIssueDate(t *testing.T) {
	issued := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	invoice, err := Build(sampleOrder(), issued)
	require.NoError(t, err)
	require.Equal(t, issued, invoice.IssuedAt)
	require.Equal(t, issued.AddDate(0, 0, 30), invoice.DueAt)
}

func TestBuildFallsBackToOrderCreationTime(t *testing.T) {
	order := sampleOrder()
	invoice, err := Build(order, time.Time{})
	require.NoError(t, err)
	require.Equal(t, order.CreatedAt, invoice.IssuedAt)
	require.Equal(t, order.CreatedAt.AddDate(0, 0, 30), invoice.DueAt)
}

func TestBuildRecomputesTotalsWithSharedTaxRate(t *testing.T) {
	invoice, err := Build(sampleOrder(), time.Now())
	require.NoError(t, err)

	require.True(t, invoice.Subtotal.Equal(dec("530")), "subtotal %s", invoice.Subtotal)
	require.True(t, invoice.Tax.Equal(dec("95.4")), "tax %s", invoice.Tax)
	require.True(t, invoice.Total.Equal(dec("625.4")), "total %s", invoice.Total)
	require.Len(t, invoice.Lines, 2)
	require.True(t, invoice.Lines[0].Total.Equal(dec("500")))
	require.True(t, invoice.Lines[1].Total.Equal(dec("30")))
}

func TestBuildRejectsMissingOrderNumber(t *testing.T) {
	order := sampleOrder()
	order.OrderNumber = ""
	_, err := Build(order, time.Now())
	require.Error(t, err)
}

func TestBuildRejectsNilOrder(t *testing.T) {
	_, err := Build(nil, time.Now())
	require.Error(t, err)
}
