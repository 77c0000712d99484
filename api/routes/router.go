package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agrovia/agroexport-web/api/controllers"
	"github.com/agrovia/agroexport-web/api/middleware"
	"github.com/agrovia/agroexport-web/internal/adminauth"
	"github.com/agrovia/agroexport-web/internal/dashboard"
	"github.com/agrovia/agroexport-web/internal/notify"
	"github.com/agrovia/agroexport-web/internal/orders"
	"github.com/agrovia/agroexport-web/internal/products"
	"github.com/agrovia/agroexport-web/internal/session"
	"github.com/agrovia/agroexport-web/internal/vendors"
	"github.com/agrovia/agroexport-web/pkg/config"
	"github.com/agrovia/agroexport-web/pkg/enums"
	"github.com/agrovia/agroexport-web/pkg/logger"
	"github.com/agrovia/agroexport-web/pkg/metrics"
	"github.com/agrovia/agroexport-web/pkg/redis"
	"github.com/agrovia/agroexport-web/web"
)

const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// pageTemplates lists every page the routes render.
var pageTemplates = []string{
	"home", "about", "services", "gallery", "certifications", "products",
	"quote_form", "quote_confirmation", "order_confirm", "order_view", "invoice",
	"admin_login", "admin_signup", "admin_license", "admin_dashboard",
	"admin_orders", "admin_order_detail", "admin_vendors",
	"vendor_login", "vendor_register", "vendor_dashboard",
	"vendor_products", "vendor_product_form", "error",
}

// MissingTemplates reports pages the routes render that the renderer cannot.
// Startup wiring checks this so a missing template fails fast instead of at
// first request.
func MissingTemplates(renderer *web.Renderer) []string {
	var missing []string
	for _, page := range pageTemplates {
		if renderer == nil || !renderer.Has(page) {
			missing = append(missing, page)
		}
	}
	return missing
}

// Deps carries everything the router wires together.
type Deps struct {
	Cfg         *config.Config
	Logg        *logger.Logger
	Renderer    *web.Renderer
	Redis       *redis.Client
	Sessions    session.Store
	Cookie      session.Cookie
	HTTPMetrics *metrics.HTTPMetrics
	Orders      orders.Service
	Products    products.Service
	Vendors     vendors.Service
	AdminAuth   adminauth.Service
	Dashboard   dashboard.Service
	WhatsApp    notify.WhatsApp
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(d.Logg),
		middleware.RequestID(d.Logg),
		middleware.Logging(d.Logg),
		middleware.CORS(d.Cfg.CORS),
	)
	if d.HTTPMetrics != nil {
		r.Use(middleware.Metrics(d.HTTPMetrics))
	}

	// A nil *Client must not leak into the interfaces as a typed non-nil.
	var submitStore redis.SubmitGuardStore
	var pinger redis.Pinger
	if d.Redis != nil {
		submitStore = d.Redis
		pinger = d.Redis
	}
	throttle := func(name string) func(http.Handler) http.Handler {
		if d.Redis == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.RateLimit(name, loginRateLimit, loginRateWindow, d.Redis, d.Logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(d.Cfg))
		r.Get("/ready", controllers.HealthReady(d.Cfg, pinger))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", web.StaticHandler()))

	// Everything below carries a browser session.
	r.Group(func(r chi.Router) {
		r.Use(middleware.EnsureSession(d.Cookie, d.Logg))

		// Public pages.
		r.Get("/", controllers.Home(d.Renderer, d.Products, d.Logg))
		r.Get("/about", controllers.About(d.Renderer, d.Logg))
		r.Get("/services", controllers.Services(d.Renderer, d.Logg))
		r.Get("/gallery", controllers.Gallery(d.Renderer, d.Logg))
		r.Get("/certifications", controllers.Certifications(d.Renderer, d.Logg))
		r.Get("/products", controllers.ProductCatalog(d.Renderer, d.Products, d.Logg))

		// Quote pipeline.
		r.Route("/quote", func(r chi.Router) {
			r.Get("/", controllers.QuoteForm(d.Renderer, d.Products, d.Logg))
			r.With(middleware.SubmitGuard(submitStore, d.Cfg.Session.SubmitGuard, d.Logg)).
				Post("/", controllers.QuoteSubmit(d.Renderer, d.Orders, d.Products, d.Logg))
			r.Post("/estimate", controllers.QuoteEstimate(d.Products, d.Logg))
			r.Get("/confirmation", controllers.QuoteConfirmation(d.Renderer, d.WhatsApp, d.Logg))
			r.Get("/{orderNumber}/whatsapp.png", controllers.QuoteWhatsAppQR(d.WhatsApp, d.Logg))
		})

		// Customer order confirmation and invoice.
		r.Route("/orders", func(r chi.Router) {
			r.Get("/confirm", controllers.OrderConfirmForm(d.Renderer, d.Logg))
			r.With(middleware.SubmitGuard(submitStore, d.Cfg.Session.SubmitGuard, d.Logg)).
				Post("/confirm", controllers.OrderConfirmSubmit(d.Renderer, d.Orders, d.Logg))
			r.Get("/{orderNumber}/invoice", controllers.OrderInvoice(d.Renderer, d.Orders, d.Logg))
		})

		// Admin surface.
		r.Route("/admin", func(r chi.Router) {
			r.Get("/login", controllers.AdminLoginForm(d.Renderer, d.AdminAuth, d.Logg))
			r.With(throttle("admin_login")).Post("/login", controllers.AdminLoginSubmit(d.Renderer, d.AdminAuth, d.Logg))
			r.Get("/signup", controllers.AdminSignupForm(d.Renderer, d.AdminAuth, d.Logg))
			r.With(throttle("admin_signup")).Post("/signup", controllers.AdminSignupSubmit(d.Renderer, d.AdminAuth, d.Logg))
			r.Get("/license", controllers.AdminLicensePage(d.Renderer, d.Logg))
			r.With(throttle("admin_license")).Post("/license/request", controllers.AdminLicenseRequest(d.Renderer, d.AdminAuth, d.Logg))
			r.With(throttle("admin_license")).Post("/license/validate", controllers.AdminLicenseValidate(d.Renderer, d.AdminAuth, d.Logg))
			r.With(throttle("admin_license")).Post("/license/resend", controllers.AdminLicenseResend(d.Renderer, d.AdminAuth, d.Logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.RoleAdmin, d.Sessions, "/admin/login", d.Logg))

				r.Post("/logout", controllers.AdminLogout(d.AdminAuth, d.Logg))
				r.Get("/dashboard", controllers.AdminDashboard(d.Renderer, d.Dashboard, d.Sessions, d.Logg))
				r.Get("/orders", controllers.AdminOrderList(d.Renderer, d.Orders, d.Sessions, d.Logg))
				r.Get("/orders/{orderID}", controllers.AdminOrderDetail(d.Renderer, d.Orders, d.Sessions, d.Logg))
				r.With(middleware.SubmitGuard(submitStore, d.Cfg.Session.SubmitGuard, d.Logg)).
					Post("/orders/{orderID}/quote", controllers.AdminOrderQuote(d.Renderer, d.Orders, d.Sessions, d.Logg))
				r.Post("/orders/{orderID}/status", controllers.AdminOrderStatus(d.Renderer, d.Orders, d.Sessions, d.Logg))
				r.Get("/vendors", controllers.AdminVendorList(d.Renderer, d.Vendors, d.Sessions, d.Logg))
				r.Post("/vendors/{vendorID}/status", controllers.AdminVendorStatus(d.Renderer, d.Vendors, d.Sessions, d.Logg))
			})
		})

		// Vendor surface.
		r.Route("/vendor", func(r chi.Router) {
			r.Get("/login", controllers.VendorLoginForm(d.Renderer, d.Logg))
			r.With(throttle("vendor_login")).Post("/login", controllers.VendorLoginSubmit(d.Renderer, d.Vendors, d.Logg))
			r.Get("/register", controllers.VendorRegisterForm(d.Renderer, d.Logg))
			r.With(throttle("vendor_register")).Post("/register", controllers.VendorRegisterSubmit(d.Renderer, d.Vendors, d.Logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.RoleVendor, d.Sessions, "/vendor/login", d.Logg))

				r.Post("/logout", controllers.VendorLogout(d.Vendors, d.Logg))
				r.Get("/dashboard", controllers.VendorDashboard(d.Renderer, d.Dashboard, d.Sessions, d.Logg))
				r.Get("/products", controllers.VendorProductList(d.Renderer, d.Products, d.Sessions, d.Logg))
				r.Get("/products/new", controllers.VendorProductNewForm(d.Renderer, d.Logg))
				r.Post("/products", controllers.VendorProductCreate(d.Renderer, d.Products, d.Sessions, d.Logg))
				r.Get("/products/{productID}/edit", controllers.VendorProductEditForm(d.Renderer, d.Products, d.Sessions, d.Logg))
				r.Post("/products/{productID}", controllers.VendorProductUpdate(d.Renderer, d.Products, d.Sessions, d.Logg))
				r.Post("/products/{productID}/delete", controllers.VendorProductDelete(d.Renderer, d.Products, d.Sessions, d.Logg))
			})
		})
	})

	return r
}
