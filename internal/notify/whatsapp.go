package notify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/agrovia/agroexport-web/internal/pricing"
	"github.com/agrovia/agroexport-web/pkg/enums"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/shopspring/decimal"
)

const waBaseURL = "https://wa.me/"

// WhatsApp builds the deep links shown after a successful order submission.
// This is a notification assist for the customer, never part of order state.
type WhatsApp struct {
	number string
}

// NewWhatsApp configures the export desk number. An empty number disables
// the assist; callers must check Enabled.
func NewWhatsApp(number string) WhatsApp {
	return WhatsApp{number: sanitizeNumber(number)}
}

// Enabled reports whether a desk number is configured.
func (w WhatsApp) Enabled() bool {
	return w.number != ""
}

// OrderMessage renders the pre-filled text for a submitted quote request.
func (w WhatsApp) OrderMessage(orderNumber string, total decimal.Decimal, currency enums.Currency) string {
	return fmt.Sprintf(
		"Hello, I just submitted quote request %s with an estimated total of %s %s. Please confirm availability.",
		orderNumber, pricing.FormatAmount(total), currency.OrDefault(),
	)
}

// Link returns the wa.me deep link carrying the pre-filled message.
func (w WhatsApp) Link(message string) string {
	if !w.Enabled() {
		return ""
	}
	return waBaseURL + w.number + "?text=" + url.QueryEscape(message)
}

// QRPNG encodes the deep link as a PNG for the confirmation page.
func (w WhatsApp) QRPNG(link string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(link, qrcode.Medium, size)
}

func sanitizeNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
