package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/agrovia/agroexport-web/api/middleware"
	"github.com/agrovia/agroexport-web/api/validators"
	"github.com/agrovia/agroexport-web/internal/orders"
	"github.com/agrovia/agroexport-web/internal/session"
	"github.com/agrovia/agroexport-web/pkg/enums"
	"github.com/agrovia/agroexport-web/pkg/logger"
	"github.com/agrovia/agroexport-web/web"
)

// AdminOrderList shows every order for triage.
func AdminOrderList(renderer *web.Renderer, svc orders.Service, store session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.TokenFromContext(r.Context())

		listed, err := svc.List(r.Context(), token)
		if err != nil {
			if isUnauthorized(err) {
				expireAndRedirect(w, r, store, enums.RoleAdmin, adminLoginPath, logg)
				return
			}
			renderPage(w, r, renderer, logg, http.StatusOK, "admin_orders", map[string]any{
				"Error": publicMessage(err),
			})
			return
		}

		renderPage(w, r, renderer, logg, http.StatusOK, "admin_orders", map[string]any{
			"Orders": listed,
		})
	}
}

// AdminOrderDetail shows one order with the quote and status forms.
func AdminOrderDetail(renderer *web.Renderer, svc orders.Service, store session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.TokenFromContext(r.Context())
		orderID := chi.URLParam(r, "orderID")

		order, err := svc.Get(r.Context(), token, orderID)
		if err != nil {
			if isUnauthorized(err) {
				expireAndRedirect(w, r, store, enums.RoleAdmin, adminLoginPath, logg)
				return
			}
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		renderPage(w, r, renderer, logg, http.StatusOK, "admin_order_detail", map[string]any{
			"Order":     order,
			"Statuses":  enums.OrderStatuses(),
			"Fields":    map[string]string{},
			"FormToken": newFormToken(),
			"Notice":    r.URL.Query().Get("notice"),
		})
	}
}

// AdminOrderQuote submits a price quote for a pending order.
func AdminOrderQuote(renderer *web.Renderer, svc orders.Service, store session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		token := middleware.TokenFromContext(r.Context())
		orderID := chi.URLParam(r, "orderID")

		price, perr := decimal.NewFromString(validators.SanitizeString(r.PostFormValue("price"), 40))
		input := orders.QuoteInput{
			Price:        price,
			DeliveryTime: validators.SanitizeString(r.PostFormValue("delivery_time"), maxFieldLen),
			Notes:        validators.SanitizeString(r.PostFormValue("notes"), 2000),
		}

		// The service re-checks positivity; a parse failure just surfaces
		// as the same field error.
		if perr != nil {
			input.Price = decimal.Zero
		}

		local, err := svc.Get(r.Context(), token, orderID)
		if err != nil {
			if isUnauthorized(err) {
				expireAndRedirect(w, r, store, enums.RoleAdmin, adminLoginPath, logg)
				return
			}
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		updated, err := svc.SubmitQuote(r.Context(), token, orderID, input, local)
		if err != nil {
			if isUnauthorized(err) {
				expireAndRedirect(w, r, store, enums.RoleAdmin, adminLoginPath, logg)
				return
			}
			renderPage(w, r, renderer, logg, http.StatusUnprocessableEntity, "admin_order_detail", map[string]any{
				"Order":     local,
				"Statuses":  enums.OrderStatuses(),
				"Fields":    orders.FieldErrors(err),
				"Error":     publicMessage(err),
				"FormToken": newFormToken(),
			})
			return
		}

		if logg != nil {
			logg.Info(logg.WithOrderNumber(r.Context(), updated.OrderNumber), "admin.order.quoted")
		}
		http.Redirect(w, r, "/admin/orders/"+orderID+"?notice=Quote+sent", http.StatusSeeOther)
	}
}

// AdminOrderStatus applies a status change.
func AdminOrderStatus(renderer *web.Renderer, svc orders.Service, store session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		token := middleware.TokenFromContext(r.Context())
		orderID := chi.URLParam(r, "orderID")

		status, err := enums.ParseOrderStatus(r.PostFormValue("status"))
		if err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		if _, err := svc.UpdateStatus(r.Context(), token, orderID, status); err != nil {
			if isUnauthorized(err) {
				expireAndRedirect(w, r, store, enums.RoleAdmin, adminLoginPath, logg)
				return
			}
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		http.Redirect(w, r, "/admin/orders/"+orderID+"?notice=Status+updated", http.StatusSeeOther)
	}
}
