package enums

// Currency is the ISO 4217 code attached to product price ranges.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyINR Currency = "INR"
)

// DefaultCurrency is used when a product carries no price range.
const DefaultCurrency = CurrencyUSD

// String implements fmt.Stringer.
func (c Currency) String() string {
	return string(c)
}

// OrDefault falls back to the default code for empty values. Unknown codes
// pass through untouched since the marketplace API owns the catalog.
func (c Currency) OrDefault() Currency {
	if c == "" {
		return DefaultCurrency
	}
	return c
}
