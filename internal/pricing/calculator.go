package pricing

import (
	"github.com/agrovia/agroexport-web/pkg/enums"
	"github.com/agrovia/agroexport-web/pkg/upstream"
	"github.com/shopspring/decimal"
)

// TaxRate is the flat rate applied to every quote subtotal. The quote flow
// and the invoice builder both read this value; it must never be duplicated.
var TaxRate = decimal.New(18, -2)

var two = decimal.New(2, 0)

// Item is one selected product with a chosen quantity.
type Item struct {
	ProductID string
	Name      string
	Category  string
	Unit      string
	Quantity  int
	UnitPrice *decimal.Decimal
	Range     *upstream.PriceRange
}

// ResolvedItem carries the unit price the calculator settled on. Priced is
// false for contact-for-price products, which stay out of the numeric totals.
type ResolvedItem struct {
	Item
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
	Priced    bool
}

// Totals is the derived money block for a selection.
type Totals struct {
	Items    []ResolvedItem
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
	Currency enums.Currency
}

// ResolveUnitPrice applies the resolution policy: an explicit positive price
// wins, then the midpoint of the price range, otherwise zero and unpriced.
func ResolveUnitPrice(item Item) (decimal.Decimal, bool) {
	if item.UnitPrice != nil && item.UnitPrice.IsPositive() {
		return *item.UnitPrice, true
	}
	if item.Range != nil {
		mid := item.Range.Min.Add(item.Range.Max).Div(two)
		if mid.IsPositive() {
			return mid, true
		}
	}
	return decimal.Zero, false
}

// Calculate derives subtotal, tax and total for the selection. The currency
// comes from the first item carrying a price range, defaulting otherwise.
func Calculate(items []Item) Totals {
	totals := Totals{
		Subtotal: decimal.Zero,
		Currency: enums.DefaultCurrency,
	}

	currencySet := false
	for _, item := range items {
		unit, priced := ResolveUnitPrice(item)
		resolved := ResolvedItem{
			Item:      item,
			UnitPrice: unit,
			Priced:    priced,
		}
		if priced {
			resolved.LineTotal = unit.Mul(decimal.NewFromInt(int64(item.Quantity)))
			totals.Subtotal = totals.Subtotal.Add(resolved.LineTotal)
		}
		if !currencySet && item.Range != nil && item.Range.Currency != "" {
			totals.Currency = item.Range.Currency
			currencySet = true
		}
		totals.Items = append(totals.Items, resolved)
	}

	totals.Tax = totals.Subtotal.Mul(TaxRate)
	totals.Total = totals.Subtotal.Add(totals.Tax)
	return totals
}

// FormatAmount renders a money value for display with two decimal places.
func FormatAmount(value decimal.Decimal) string {
	return value.StringFixed(2)
}
