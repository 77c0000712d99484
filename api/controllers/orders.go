package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agrovia/agroexport-web/api/validators"
	"github.com/agrovia/agroexport-web/internal/invoices"
	"github.com/agrovia/agroexport-web/internal/orders"
	"github.com/agrovia/agroexport-web/pkg/enums"
	"github.com/agrovia/agroexport-web/pkg/logger"
	"github.com/agrovia/agroexport-web/web"
)

// invoiceReady reports whether an order has progressed far enough to carry
// an invoice. Cancelled orders never do.
func invoiceReady(status enums.OrderStatus) bool {
	switch status {
	case enums.OrderStatusConfirmed, enums.OrderStatusProcessing, enums.OrderStatusShipped, enums.OrderStatusDelivered:
		return true
	}
	return false
}

// OrderConfirmForm asks for the order number and email printed on the quote.
func OrderConfirmForm(renderer *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, renderer, logg, http.StatusOK, "order_confirm", map[string]any{
			"OrderNumber": r.URL.Query().Get("order"),
			"FormToken":   newFormToken(),
		})
	}
}

// OrderConfirmSubmit confirms a quoted order and shows it.
func OrderConfirmSubmit(renderer *web.Renderer, svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		input := orders.ConfirmInput{
			OrderNumber: validators.SanitizeString(r.PostFormValue("order_number"), maxFieldLen),
			Email:       validators.SanitizeString(r.PostFormValue("email"), maxFieldLen),
		}

		order, err := svc.Confirm(r.Context(), input)
		if err != nil {
			renderPage(w, r, renderer, logg, http.StatusUnprocessableEntity, "order_confirm", map[string]any{
				"OrderNumber": input.OrderNumber,
				"Email":       input.Email,
				"Error":       publicMessage(err),
				"FormToken":   newFormToken(),
			})
			return
		}

		renderPage(w, r, renderer, logg, http.StatusOK, "order_view", map[string]any{
			"Order":        order,
			"Email":        input.Email,
			"InvoiceReady": invoiceReady(order.Status),
		})
	}
}

// OrderInvoice renders the printable invoice for a confirmed order. The
// order number plus the email on file act as the retrieval credentials, the
// same pair used to confirm.
func OrderInvoice(renderer *web.Renderer, svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderNumber := chi.URLParam(r, "orderNumber")
		email := validators.SanitizeString(r.URL.Query().Get("email"), maxFieldLen)

		order, err := svc.Confirm(r.Context(), orders.ConfirmInput{
			OrderNumber: orderNumber,
			Email:       email,
		})
		if err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		// Issue date comes from the order itself so the due date is stable
		// across renders.
		invoice, err := invoices.Build(order, order.CreatedAt)
		if err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		renderPage(w, r, renderer, logg, http.StatusOK, "invoice", map[string]any{
			"Invoice":         invoice,
			"TaxPercent":      taxPercent(),
			"PaymentTermDays": invoices.PaymentTermDays,
		})
	}
}
