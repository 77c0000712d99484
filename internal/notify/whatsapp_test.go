package notify

import (
	"strings"
	"testing"

	"github.com/agrovia/agroexport-web/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestWhatsAppLinkEncodesMessage(t *testing.T) {
	wa := NewWhatsApp("+233 20 000 0000")
	require.True(t, wa.Enabled())

	msg := wa.OrderMessage("ORD-000123", decimal.RequireFromString("625.4"), enums.CurrencyUSD)
	require.Contains(t, msg, "ORD-000123")
	require.Contains(t, msg, "625.40 USD")

	link := wa.Link(msg)
	require.True(t, strings.HasPrefix(link, "https://wa.me/233200000000?text="))
	require.NotContains(t, link, " ")
}

func TestWhatsAppDisabledWithoutNumber(t *testing.T) {
	wa := NewWhatsApp("")
	require.False(t, wa.Enabled())
	require.Empty(t, wa.Link("hello"))
}

func TestWhatsAppQRPNG(t *testing.T) {
	wa := NewWhatsApp("233200000000")
	png, err := wa.QRPNG(wa.Link("hi"), 0)
	require.NoError(t, err)
	require.NotEmpty(t, png)
	// PNG magic bytes.
	require.Equal(t, byte(0x89), png[0])
	require.Equal(t, byte('P'), png[1])
}
