package controllers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/agrovia/agroexport-web/api/responses"
	"github.com/agrovia/agroexport-web/api/validators"
	"github.com/agrovia/agroexport-web/internal/notify"
	"github.com/agrovia/agroexport-web/internal/orders"
	"github.com/agrovia/agroexport-web/internal/pricing"
	productcatalog "github.com/agrovia/agroexport-web/internal/products"
	"github.com/agrovia/agroexport-web/pkg/enums"
	"github.com/agrovia/agroexport-web/pkg/logger"
	"github.com/agrovia/agroexport-web/pkg/types"
	"github.com/agrovia/agroexport-web/pkg/upstream"
	"github.com/agrovia/agroexport-web/web"
)

const maxFieldLen = 200

// quoteFormValues echoes submitted values back into the form on validation
// failure.
type quoteFormValues struct {
	Name                string
	Email               string
	Phone               string
	Street              string
	City                string
	State               string
	Country             string
	Zip                 string
	SpecialRequirements string
	Selected            map[string]bool
	Quantities          map[string]string
}

func emptyQuoteForm() quoteFormValues {
	return quoteFormValues{
		Selected:   map[string]bool{},
		Quantities: map[string]string{},
	}
}

func taxPercent() string {
	return pricing.TaxRate.Mul(decimal.New(100, 0)).StringFixed(0)
}

// QuoteForm renders the quote request form with the live catalog.
func QuoteForm(renderer *web.Renderer, catalog productcatalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listed, err := catalog.Catalog(r.Context(), "")
		if err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		renderPage(w, r, renderer, logg, http.StatusOK, "quote_form", map[string]any{
			"Products":   listed,
			"Form":       emptyQuoteForm(),
			"Fields":     map[string]string{},
			"FormToken":  newFormToken(),
			"TaxPercent": taxPercent(),
		})
	}
}

// QuoteSubmit validates the form, creates the order upstream and redirects
// to the confirmation page.
func QuoteSubmit(renderer *web.Renderer, svc orders.Service, catalog productcatalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		form := bindQuoteForm(r)

		listed, err := catalog.Catalog(r.Context(), "")
		if err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		input := orders.QuoteRequestInput{
			Contact: upstream.Contact{
				Name:  form.Name,
				Email: form.Email,
				Phone: form.Phone,
			},
			Address: types.Address{
				Street:  form.Street,
				City:    form.City,
				State:   form.State,
				Country: form.Country,
				Zip:     form.Zip,
			},
			Items:               selectedItems(form, listed),
			SpecialRequirements: form.SpecialRequirements,
		}

		result, err := svc.CreateQuoteRequest(r.Context(), input)
		if err != nil {
			data := map[string]any{
				"Products":   listed,
				"Form":       form,
				"Fields":     orders.FieldErrors(err),
				"Error":      publicMessage(err),
				"FormToken":  newFormToken(),
				"TaxPercent": taxPercent(),
			}
			if len(input.Items) > 0 {
				estimate := pricing.Calculate(input.Items)
				data["Estimate"] = estimate
			}
			renderPage(w, r, renderer, logg, http.StatusUnprocessableEntity, "quote_form", data)
			return
		}

		target := "/quote/confirmation?" + url.Values{
			"order":    {result.OrderNumber},
			"total":    {pricing.FormatAmount(result.EstimatedTotal)},
			"currency": {result.Currency.String()},
		}.Encode()
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// QuoteConfirmation is the post-redirect landing page with the WhatsApp
// assist.
func QuoteConfirmation(renderer *web.Renderer, whatsapp notify.WhatsApp, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderNumber := r.URL.Query().Get("order")
		if orderNumber == "" {
			http.Redirect(w, r, "/quote", http.StatusSeeOther)
			return
		}
		total := r.URL.Query().Get("total")
		currency := enums.Currency(r.URL.Query().Get("currency")).OrDefault()

		data := map[string]any{
			"OrderNumber":    orderNumber,
			"EstimatedTotal": total,
			"Currency":       currency,
		}

		if whatsapp.Enabled() {
			amount, err := decimal.NewFromString(total)
			if err != nil {
				amount = decimal.Zero
			}
			link := whatsapp.Link(whatsapp.OrderMessage(orderNumber, amount, currency))
			data["WhatsAppLink"] = link
			data["QRQuery"] = url.Values{
				"total":    {total},
				"currency": {currency.String()},
			}.Encode()
		}

		renderPage(w, r, renderer, logg, http.StatusOK, "quote_confirmation", data)
	}
}

// QuoteWhatsAppQR serves the QR code PNG pointing at the WhatsApp
// conversation for one order.
func QuoteWhatsAppQR(whatsapp notify.WhatsApp, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !whatsapp.Enabled() {
			http.NotFound(w, r)
			return
		}

		orderNumber := chi.URLParam(r, "orderNumber")
		amount, err := decimal.NewFromString(r.URL.Query().Get("total"))
		if err != nil {
			amount = decimal.Zero
		}
		currency := enums.Currency(r.URL.Query().Get("currency")).OrDefault()

		link := whatsapp.Link(whatsapp.OrderMessage(orderNumber, amount, currency))
		png, err := whatsapp.QRPNG(link, 0)
		if err != nil {
			if logg != nil {
				logg.Error(r.Context(), "whatsapp.qr", err)
			}
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "private, max-age=300")
		w.Write(png)
	}
}

func bindQuoteForm(r *http.Request) quoteFormValues {
	form := emptyQuoteForm()
	form.Name = validators.SanitizeString(r.PostFormValue("name"), maxFieldLen)
	form.Email = validators.SanitizeString(r.PostFormValue("email"), maxFieldLen)
	form.Phone = validators.SanitizeString(r.PostFormValue("phone"), maxFieldLen)
	form.Street = validators.SanitizeString(r.PostFormValue("street"), maxFieldLen)
	form.City = validators.SanitizeString(r.PostFormValue("city"), maxFieldLen)
	form.State = validators.SanitizeString(r.PostFormValue("state"), maxFieldLen)
	form.Country = validators.SanitizeString(r.PostFormValue("country"), maxFieldLen)
	form.Zip = validators.SanitizeString(r.PostFormValue("zip"), maxFieldLen)
	form.SpecialRequirements = validators.SanitizeString(r.PostFormValue("special_requirements"), 2000)

	for _, id := range r.PostForm["product"] {
		if id == "" {
			continue
		}
		form.Selected[id] = true
		form.Quantities[id] = strings.TrimSpace(r.PostFormValue("qty_" + id))
	}
	return form
}

// selectedItems joins the submitted selection against the live catalog so
// the browser cannot invent prices.
func selectedItems(form quoteFormValues, catalog []upstream.Product) []pricing.Item {
	byID := make(map[string]upstream.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	var items []pricing.Item
	for id := range form.Selected {
		product, ok := byID[id]
		if !ok {
			continue
		}
		qty, err := strconv.Atoi(form.Quantities[id])
		if err != nil || qty <= 0 {
			qty = product.MinOrderQty
			if qty <= 0 {
				qty = 1
			}
		}
		items = append(items, pricing.Item{
			ProductID: product.ID,
			Name:      product.Name,
			Category:  product.Category,
			Unit:      product.Unit,
			Quantity:  qty,
			UnitPrice: product.Price,
			Range:     product.PriceRange,
		})
	}
	return items
}

// estimateRequest is the fetch-style payload the quote form posts for a live
// price preview.
type estimateRequest struct {
	Items []estimateItem `json:"items" validate:"required,min=1,dive"`
}

type estimateItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type estimateLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price,omitempty"`
	LineTotal string `json:"line_total,omitempty"`
	Priced    bool   `json:"priced"`
}

type estimateResponse struct {
	Lines    []estimateLine `json:"lines"`
	Subtotal string         `json:"subtotal"`
	Tax      string         `json:"tax"`
	Total    string         `json:"total"`
	Currency string         `json:"currency"`
}

// QuoteEstimate prices a selection without creating an order. Unit prices
// come from the live catalog, never from the request.
func QuoteEstimate(catalog productcatalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req estimateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := catalog.Catalog(r.Context(), "")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		form := emptyQuoteForm()
		for _, item := range req.Items {
			form.Selected[item.ProductID] = true
			form.Quantities[item.ProductID] = strconv.Itoa(item.Quantity)
		}
		totals := pricing.Calculate(selectedItems(form, listed))

		resp := estimateResponse{
			Lines:    make([]estimateLine, 0, len(totals.Items)),
			Subtotal: pricing.FormatAmount(totals.Subtotal),
			Tax:      pricing.FormatAmount(totals.Tax),
			Total:    pricing.FormatAmount(totals.Total),
			Currency: string(totals.Currency),
		}
		for _, line := range totals.Items {
			out := estimateLine{
				ProductID: line.ProductID,
				Name:      line.Name,
				Quantity:  line.Quantity,
				Priced:    line.Priced,
			}
			if line.Priced {
				out.UnitPrice = pricing.FormatAmount(line.UnitPrice)
				out.LineTotal = pricing.FormatAmount(line.LineTotal)
			}
			resp.Lines = append(resp.Lines, out)
		}
		responses.WriteSuccess(w, resp)
	}
}
