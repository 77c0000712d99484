package orders

import (
	"github.com/agrovia/agroexport-web/internal/pricing"
	"github.com/agrovia/agroexport-web/pkg/enums"
	"github.com/agrovia/agroexport-web/pkg/types"
	"github.com/agrovia/agroexport-web/pkg/upstream"
	"github.com/shopspring/decimal"
)

// QuoteRequestInput is the completed quote form: contact, delivery address
// and the transient product selection.
type QuoteRequestInput struct {
	Contact             upstream.Contact
	Address             types.Address
	Items               []pricing.Item
	SpecialRequirements string
}

// QuoteRequestResult is what the confirmation view needs after submission.
type QuoteRequestResult struct {
	OrderNumber    string
	EstimatedTotal decimal.Decimal
	Currency       enums.Currency
	Totals         pricing.Totals
}

// QuoteInput is an admin price quote for a pending order.
type QuoteInput struct {
	Price        decimal.Decimal
	DeliveryTime string
	Notes        string
}

// ConfirmInput identifies the quoted order a customer confirms.
type ConfirmInput struct {
	OrderNumber string
	Email       string
}
