package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/agrovia/agroexport-web/api/middleware"
	"github.com/agrovia/agroexport-web/api/validators"
	"github.com/agrovia/agroexport-web/internal/orders"
	productcatalog "github.com/agrovia/agroexport-web/internal/products"
	"github.com/agrovia/agroexport-web/internal/session"
	"github.com/agrovia/agroexport-web/pkg/enums"
	"github.com/agrovia/agroexport-web/pkg/logger"
	"github.com/agrovia/agroexport-web/pkg/upstream"
	"github.com/agrovia/agroexport-web/web"
)

// 8 MB covers a product photo with headroom.
const maxUploadBytes = 8 << 20

// VendorProductList shows the vendor's own catalog.
func VendorProductList(renderer *web.Renderer, svc productcatalog.Service, store session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.TokenFromContext(r.Context())

		listed, err := svc.Mine(r.Context(), token)
		if err != nil {
			if isUnauthorized(err) {
				expireAndRedirect(w, r, store, enums.RoleVendor, vendorLoginPath, logg)
				return
			}
			renderPage(w, r, renderer, logg, http.StatusOK, "vendor_products", map[string]any{
				"Error": publicMessage(err),
			})
			return
		}

		renderPage(w, r, renderer, logg, http.StatusOK, "vendor_products", map[string]any{
			"Products": listed,
			"Notice":   r.URL.Query().Get("notice"),
		})
	}
}

// VendorProductNewForm renders the blank product form.
func VendorProductNewForm(renderer *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, renderer, logg, http.StatusOK, "vendor_product_form", map[string]any{
			"Action": "/vendor/products",
			"Form":   upstream.ProductUpload{Available: "true"},
			"Fields": map[string]string{},
		})
	}
}

// VendorProductEditForm renders the form pre-filled from the live listing.
func VendorProductEditForm(renderer *web.Renderer, svc productcatalog.Service, store session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.TokenFromContext(r.Context())
		productID := chi.URLParam(r, "productID")

		mine, err := svc.Mine(r.Context(), token)
		if err != nil {
			if isUnauthorized(err) {
				expireAndRedirect(w, r, store, enums.RoleVendor, vendorLoginPath, logg)
				return
			}
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		var product *upstream.Product
		for i := range mine {
			if mine[i].ID == productID {
				product = &mine[i]
				break
			}
		}
		if product == nil {
			http.NotFound(w, r)
			return
		}

		renderPage(w, r, renderer, logg, http.StatusOK, "vendor_product_form", map[string]any{
			"Action":  "/vendor/products/" + productID,
			"Product": product,
			"Form":    uploadFromProduct(*product),
			"Fields":  map[string]string{},
		})
	}
}

// VendorProductCreate handles the multipart create form.
func VendorProductCreate(renderer *web.Renderer, svc productcatalog.Service, store session.Store, logg *logger.Logger) http.HandlerFunc {
	return productMutation(renderer, store, logg, "/vendor/products?notice=Product+created", func(r *http.Request, token string, upload upstream.ProductUpload) error {
		_, err := svc.Create(r.Context(), token, upload)
		return err
	})
}

// VendorProductUpdate handles the multipart edit form.
func VendorProductUpdate(renderer *web.Renderer, svc productcatalog.Service, store session.Store, logg *logger.Logger) http.HandlerFunc {
	return productMutation(renderer, store, logg, "/vendor/products?notice=Product+updated", func(r *http.Request, token string, upload upstream.ProductUpload) error {
		_, err := svc.Update(r.Context(), token, chi.URLParam(r, "productID"), upload)
		return err
	})
}

func VendorProductDelete(renderer *web.Renderer, svc productcatalog.Service, store session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.TokenFromContext(r.Context())
		productID := chi.URLParam(r, "productID")

		if err := svc.Delete(r.Context(), token, productID); err != nil {
			if isUnauthorized(err) {
				expireAndRedirect(w, r, store, enums.RoleVendor, vendorLoginPath, logg)
				return
			}
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		http.Redirect(w, r, "/vendor/products?notice=Product+deleted", http.StatusSeeOther)
	}
}

func productMutation(renderer *web.Renderer, store session.Store, logg *logger.Logger, successTarget string, apply func(r *http.Request, token string, upload upstream.ProductUpload) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		token := middleware.TokenFromContext(r.Context())
		upload := bindProductUpload(r)

		if err := apply(r, token, upload); err != nil {
			if isUnauthorized(err) {
				expireAndRedirect(w, r, store, enums.RoleVendor, vendorLoginPath, logg)
				return
			}
			renderPage(w, r, renderer, logg, http.StatusUnprocessableEntity, "vendor_product_form", map[string]any{
				"Action": r.URL.Path,
				"Form":   upload,
				"Fields": orders.FieldErrors(err),
				"Error":  publicMessage(err),
			})
			return
		}

		http.Redirect(w, r, successTarget, http.StatusSeeOther)
	}
}

func bindProductUpload(r *http.Request) upstream.ProductUpload {
	upload := upstream.ProductUpload{
		Name:        validators.SanitizeString(r.PostFormValue("name"), maxFieldLen),
		Category:    validators.SanitizeString(r.PostFormValue("category"), maxFieldLen),
		Unit:        validators.SanitizeString(r.PostFormValue("unit"), 40),
		MinOrderQty: validators.SanitizeString(r.PostFormValue("min_order_qty"), 20),
		Price:       validators.SanitizeString(r.PostFormValue("price"), 40),
		PriceMin:    validators.SanitizeString(r.PostFormValue("price_min"), 40),
		PriceMax:    validators.SanitizeString(r.PostFormValue("price_max"), 40),
		Currency:    validators.SanitizeString(r.PostFormValue("currency"), 10),
		Available:   validators.SanitizeString(r.PostFormValue("available"), 10),
	}
	if upload.Available == "" {
		upload.Available = "false"
	}

	if file, header, err := r.FormFile("image"); err == nil {
		upload.Image = file
		upload.ImageName = header.Filename
	}
	return upload
}

func uploadFromProduct(p upstream.Product) upstream.ProductUpload {
	upload := upstream.ProductUpload{
		Name:     p.Name,
		Category: p.Category,
		Unit:     p.Unit,
	}
	if p.MinOrderQty > 0 {
		upload.MinOrderQty = strconv.Itoa(p.MinOrderQty)
	}
	if p.Price != nil {
		upload.Price = p.Price.StringFixed(2)
	}
	if p.PriceRange != nil {
		upload.PriceMin = p.PriceRange.Min.StringFixed(2)
		upload.PriceMax = p.PriceRange.Max.StringFixed(2)
		upload.Currency = p.PriceRange.Currency.String()
	}
	if p.Available {
		upload.Available = "true"
	} else {
		upload.Available = "false"
	}
	return upload
}
