package pricing

import (
	"testing"

	"github.com/agrovia/agroexport-web/pkg/enums"
	"github.com/agrovia/agroexport-web/pkg/upstream"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestResolveUnitPricePrefersExplicitPrice(t *testing.T) {
	unit, priced := ResolveUnitPrice(Item{
		UnitPrice: decPtr("100"),
		Range:     &upstream.PriceRange{Min: dec("10"), Max: dec("20")},
	})
	require.True(t, priced)
	require.True(t, unit.Equal(dec("100")))
}

func TestResolveUnitPriceFallsBackToRangeMidpoint(t *testing.T) {
	unit, priced := ResolveUnitPrice(Item{
		Range: &upstream.PriceRange{Min: dec("10"), Max: dec("20")},
	})
	require.True(t, priced)
	require.True(t, unit.Equal(dec("15")))
}

func TestResolveUnitPriceIgnoresNonPositiveExplicitPrice(t *testing.T) {
	unit, priced := ResolveUnitPrice(Item{
		UnitPrice: decPtr("0"),
		Range:     &upstream.PriceRange{Min: dec("4"), Max: dec("6")},
	})
	require.True(t, priced)
	require.True(t, unit.Equal(dec("5")))
}

func TestResolveUnitPriceContactForPrice(t *testing.T) {
	unit, priced := ResolveUnitPrice(Item{Quantity: 3})
	require.False(t, priced)
	require.True(t, unit.IsZero())
}

func TestCalculateEndToEndScenario(t *testing.T) {
	// Product A: unit price 100, qty 5. Product B: range 10-20, qty 2.
	totals := Calculate([]Item{
		{Name: "A", Quantity: 5, UnitPrice: decPtr("100")},
		{Name: "B", Quantity: 2, Range: &upstream.PriceRange{Min: dec("10"), Max: dec("20"), Currency: enums.CurrencyUSD}},
	})

	require.True(t, totals.Subtotal.Equal(dec("530")), "subtotal %s", totals.Subtotal)
	require.True(t, totals.Tax.Equal(dec("95.4")), "tax %s", totals.Tax)
	require.True(t, totals.Total.Equal(dec("625.4")), "total %s", totals.Total)
	require.Equal(t, enums.CurrencyUSD, totals.Currency)
}

func TestCalculateTotalsInvariant(t *testing.T) {
	totals := Calculate([]Item{
		{Quantity: 3, UnitPrice: decPtr("19.99")},
		{Quantity: 7, Range: &upstream.PriceRange{Min: dec("2.50"), Max: dec("3.50")}},
	})

	require.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.Subtotal.Mul(TaxRate))))
	var sum = decimal.Zero
	for _, item := range totals.Items {
		sum = sum.Add(item.LineTotal)
	}
	require.True(t, totals.Subtotal.Equal(sum))
}

func TestCalculateExcludesUnpricedItems(t *testing.T) {
	totals := Calculate([]Item{
		{Name: "priced", Quantity: 2, UnitPrice: decPtr("50")},
		{Name: "contact", Quantity: 9},
	})

	require.True(t, totals.Subtotal.Equal(dec("100")))
	require.Len(t, totals.Items, 2)
	require.True(t, totals.Items[0].Priced)
	require.False(t, totals.Items[1].Priced)
	require.True(t, totals.Items[1].LineTotal.IsZero())
}

func TestCalculateCurrencyFromFirstRange(t *testing.T) {
	totals := Calculate([]Item{
		{Quantity: 1, UnitPrice: decPtr("10")},
		{Quantity: 1, Range: &upstream.PriceRange{Min: dec("1"), Max: dec("3"), Currency: enums.CurrencyEUR}},
		{Quantity: 1, Range: &upstream.PriceRange{Min: dec("1"), Max: dec("3"), Currency: enums.CurrencyINR}},
	})
	require.Equal(t, enums.CurrencyEUR, totals.Currency)
}

func TestCalculateEmptySelection(t *testing.T) {
	totals := Calculate(nil)
	require.True(t, totals.Subtotal.IsZero())
	require.True(t, totals.Tax.IsZero())
	require.True(t, totals.Total.IsZero())
	require.Equal(t, enums.DefaultCurrency, totals.Currency)
}

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "95.40", FormatAmount(dec("95.4")))
	require.Equal(t, "625.40", FormatAmount(dec("625.4")))
	require.Equal(t, "100.00", FormatAmount(dec("100")))
}
