package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/agrovia/agroexport-web/api/middleware"
	"github.com/agrovia/agroexport-web/api/validators"
	"github.com/agrovia/agroexport-web/internal/dashboard"
	"github.com/agrovia/agroexport-web/internal/orders"
	"github.com/agrovia/agroexport-web/internal/session"
	"github.com/agrovia/agroexport-web/internal/vendors"
	"github.com/agrovia/agroexport-web/pkg/enums"
	"github.com/agrovia/agroexport-web/pkg/logger"
	"github.com/agrovia/agroexport-web/pkg/types"
	"github.com/agrovia/agroexport-web/pkg/upstream"
	"github.com/agrovia/agroexport-web/web"
)

const vendorLoginPath = "/vendor/login"

func VendorLoginForm(renderer *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, renderer, logg, http.StatusOK, "vendor_login", map[string]any{
			"Notice": r.URL.Query().Get("notice"),
		})
	}
}

func VendorLoginSubmit(renderer *web.Renderer, svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		email := validators.SanitizeString(r.PostFormValue("email"), maxFieldLen)
		password := r.PostFormValue("password")
		sid := middleware.SessionIDFromContext(r.Context())

		if err := svc.Login(r.Context(), sid, email, password); err != nil {
			renderPage(w, r, renderer, logg, http.StatusUnprocessableEntity, "vendor_login", map[string]any{
				"Email": email,
				"Error": publicMessage(err),
			})
			return
		}

		http.Redirect(w, r, "/vendor/dashboard", http.StatusSeeOther)
	}
}

func VendorLogout(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := middleware.SessionIDFromContext(r.Context())
		if err := svc.Logout(r.Context(), sid); err != nil && logg != nil {
			logg.Error(r.Context(), "vendor.logout", err)
		}
		http.Redirect(w, r, vendorLoginPath, http.StatusSeeOther)
	}
}

func VendorRegisterForm(renderer *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, renderer, logg, http.StatusOK, "vendor_register", map[string]any{
			"Form":   upstream.VendorRegistration{},
			"Fields": map[string]string{},
		})
	}
}

func VendorRegisterSubmit(renderer *web.Renderer, svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		specializations := splitSpecializations(r.PostFormValue("specializations"))
		input := upstream.VendorRegistration{
			BusinessName:  validators.SanitizeString(r.PostFormValue("business_name"), maxFieldLen),
			ContactPerson: validators.SanitizeString(r.PostFormValue("contact_person"), maxFieldLen),
			Email:         validators.SanitizeString(r.PostFormValue("email"), maxFieldLen),
			Phone:         validators.SanitizeString(r.PostFormValue("phone"), maxFieldLen),
			Password:      r.PostFormValue("password"),
			Address: types.Address{
				Street:  validators.SanitizeString(r.PostFormValue("street"), maxFieldLen),
				City:    validators.SanitizeString(r.PostFormValue("city"), maxFieldLen),
				State:   validators.SanitizeString(r.PostFormValue("state"), maxFieldLen),
				Country: validators.SanitizeString(r.PostFormValue("country"), maxFieldLen),
				Zip:     validators.SanitizeString(r.PostFormValue("zip"), maxFieldLen),
			},
			Specializations: specializations,
		}

		if _, err := svc.Register(r.Context(), input); err != nil {
			renderPage(w, r, renderer, logg, http.StatusUnprocessableEntity, "vendor_register", map[string]any{
				"Form":            input,
				"Fields":          orders.FieldErrors(err),
				"Error":           publicMessage(err),
				"Specializations": r.PostFormValue("specializations"),
			})
			return
		}

		http.Redirect(w, r, vendorLoginPath+"?notice=Registration+received.+You+can+sign+in+once+an+admin+approves+your+account.", http.StatusSeeOther)
	}
}

// VendorDashboard renders the vendor console landing page.
func VendorDashboard(renderer *web.Renderer, svc dashboard.Service, store session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.TokenFromContext(r.Context())

		overview, err := svc.VendorOverview(r.Context(), token)
		if err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		if isUnauthorized(overview.Products.Err) {
			expireAndRedirect(w, r, store, enums.RoleVendor, vendorLoginPath, logg)
			return
		}

		renderPage(w, r, renderer, logg, http.StatusOK, "vendor_dashboard", map[string]any{
			"Overview": overview,
		})
	}
}

// AdminVendorList shows every vendor with the approval controls.
func AdminVendorList(renderer *web.Renderer, svc vendors.Service, store session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.TokenFromContext(r.Context())

		listed, err := svc.List(r.Context(), token)
		if err != nil {
			if isUnauthorized(err) {
				expireAndRedirect(w, r, store, enums.RoleAdmin, adminLoginPath, logg)
				return
			}
			renderPage(w, r, renderer, logg, http.StatusOK, "admin_vendors", map[string]any{
				"Error":    publicMessage(err),
				"Statuses": enums.VendorStatuses(),
			})
			return
		}

		renderPage(w, r, renderer, logg, http.StatusOK, "admin_vendors", map[string]any{
			"Vendors":  listed,
			"Statuses": enums.VendorStatuses(),
			"Notice":   r.URL.Query().Get("notice"),
		})
	}
}

// AdminVendorStatus applies an approval decision and returns to the list.
func AdminVendorStatus(renderer *web.Renderer, svc vendors.Service, store session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		token := middleware.TokenFromContext(r.Context())
		vendorID := chi.URLParam(r, "vendorID")

		status, err := enums.ParseVendorStatus(r.PostFormValue("status"))
		if err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		if _, err := svc.SetStatus(r.Context(), token, vendorID, status); err != nil {
			if isUnauthorized(err) {
				expireAndRedirect(w, r, store, enums.RoleAdmin, adminLoginPath, logg)
				return
			}
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		http.Redirect(w, r, "/admin/vendors?notice=Vendor+status+updated", http.StatusSeeOther)
	}
}

func splitSpecializations(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
