package controllers

import (
	"net/http"

	"github.com/agrovia/agroexport-web/api/middleware"
	"github.com/agrovia/agroexport-web/api/validators"
	"github.com/agrovia/agroexport-web/internal/adminauth"
	"github.com/agrovia/agroexport-web/internal/dashboard"
	"github.com/agrovia/agroexport-web/internal/orders"
	"github.com/agrovia/agroexport-web/internal/session"
	"github.com/agrovia/agroexport-web/pkg/enums"
	"github.com/agrovia/agroexport-web/pkg/logger"
	"github.com/agrovia/agroexport-web/web"
)

const adminLoginPath = "/admin/login"

// AdminLoginForm renders the admin login page, surfacing the first-run
// signup link when the upstream still allows it.
func AdminLoginForm(renderer *web.Renderer, svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed, err := svc.SignupAllowed(r.Context())
		if err != nil {
			// The login form still works without the signup hint.
			if logg != nil {
				logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "admin.signup_status.unavailable")
			}
			allowed = false
		}

		renderPage(w, r, renderer, logg, http.StatusOK, "admin_login", map[string]any{
			"SignupAllowed": allowed,
		})
	}
}

func AdminLoginSubmit(renderer *web.Renderer, svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		email := validators.SanitizeString(r.PostFormValue("email"), maxFieldLen)
		password := r.PostFormValue("password")
		sid := middleware.SessionIDFromContext(r.Context())

		if err := svc.Login(r.Context(), sid, email, password); err != nil {
			renderPage(w, r, renderer, logg, http.StatusUnprocessableEntity, "admin_login", map[string]any{
				"Email":  email,
				"Error":  publicMessage(err),
				"Locked": isLocked(err),
			})
			return
		}

		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
	}
}

func AdminSignupForm(renderer *web.Renderer, svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed, err := svc.SignupAllowed(r.Context())
		if err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}
		if !allowed {
			http.Redirect(w, r, adminLoginPath, http.StatusSeeOther)
			return
		}

		renderPage(w, r, renderer, logg, http.StatusOK, "admin_signup", map[string]any{
			"Form":   adminauth.SignupInput{},
			"Fields": map[string]string{},
		})
	}
}

func AdminSignupSubmit(renderer *web.Renderer, svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		input := adminauth.SignupInput{
			Name:       validators.SanitizeString(r.PostFormValue("name"), maxFieldLen),
			Email:      validators.SanitizeString(r.PostFormValue("email"), maxFieldLen),
			Password:   r.PostFormValue("password"),
			LicenseKey: validators.SanitizeString(r.PostFormValue("license_key"), maxFieldLen),
		}
		sid := middleware.SessionIDFromContext(r.Context())

		if err := svc.Signup(r.Context(), sid, input); err != nil {
			renderPage(w, r, renderer, logg, http.StatusUnprocessableEntity, "admin_signup", map[string]any{
				"Form":   input,
				"Fields": orders.FieldErrors(err),
				"Error":  publicMessage(err),
			})
			return
		}

		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
	}
}

func AdminLogout(svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := middleware.SessionIDFromContext(r.Context())
		if err := svc.Logout(r.Context(), sid); err != nil && logg != nil {
			logg.Error(r.Context(), "admin.logout", err)
		}
		http.Redirect(w, r, adminLoginPath, http.StatusSeeOther)
	}
}

// AdminLicensePage bundles the request/validate/resend license forms.
func AdminLicensePage(renderer *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, renderer, logg, http.StatusOK, "admin_license", map[string]any{
			"Email":  r.URL.Query().Get("email"),
			"Notice": r.URL.Query().Get("notice"),
		})
	}
}

func AdminLicenseRequest(renderer *web.Renderer, svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return licenseAction(renderer, logg, "A license key has been sent to your email.", func(r *http.Request, email string) error {
		return svc.RequestLicense(r.Context(), email)
	})
}

func AdminLicenseValidate(renderer *web.Renderer, svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return licenseAction(renderer, logg, "License key validated. You can sign in now.", func(r *http.Request, email string) error {
		key := validators.SanitizeString(r.PostFormValue("license_key"), maxFieldLen)
		return svc.ValidateLicense(r.Context(), email, key)
	})
}

func AdminLicenseResend(renderer *web.Renderer, svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return licenseAction(renderer, logg, "Your license key has been resent.", func(r *http.Request, email string) error {
		return svc.ResendLicense(r.Context(), email)
	})
}

func licenseAction(renderer *web.Renderer, logg *logger.Logger, notice string, action func(r *http.Request, email string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		email := validators.SanitizeString(r.PostFormValue("email"), maxFieldLen)
		if err := action(r, email); err != nil {
			renderPage(w, r, renderer, logg, http.StatusUnprocessableEntity, "admin_license", map[string]any{
				"Email": email,
				"Error": publicMessage(err),
			})
			return
		}

		renderPage(w, r, renderer, logg, http.StatusOK, "admin_license", map[string]any{
			"Email":  email,
			"Notice": notice,
		})
	}
}

// AdminDashboard renders the overview panels.
func AdminDashboard(renderer *web.Renderer, svc dashboard.Service, store session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.TokenFromContext(r.Context())

		overview, err := svc.AdminOverview(r.Context(), token)
		if err != nil {
			renderErrorPage(w, r, renderer, logg, err)
			return
		}

		// A 401 on every panel means the stored token is dead.
		if isUnauthorized(overview.Orders.Err) && isUnauthorized(overview.Stats.Err) && isUnauthorized(overview.Vendors.Err) {
			expireAndRedirect(w, r, store, enums.RoleAdmin, adminLoginPath, logg)
			return
		}

		renderPage(w, r, renderer, logg, http.StatusOK, "admin_dashboard", map[string]any{
			"Overview": overview,
		})
	}
}
