package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agrovia/agroexport-web/internal/adminauth"
	"github.com/agrovia/agroexport-web/internal/dashboard"
	"github.com/agrovia/agroexport-web/internal/notify"
	"github.com/agrovia/agroexport-web/internal/orders"
	"github.com/agrovia/agroexport-web/internal/products"
	"github.com/agrovia/agroexport-web/internal/session"
	"github.com/agrovia/agroexport-web/internal/vendors"
	"github.com/agrovia/agroexport-web/pkg/config"
	"github.com/agrovia/agroexport-web/pkg/upstream"
	"github.com/agrovia/agroexport-web/web"
)

func testConfig(upstreamURL string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "development", Port: "8080", LogLevel: "error"},
		Upstream: config.UpstreamConfig{
			BaseURL: upstreamURL,
			Timeout: 2 * time.Second,
		},
		Session: config.SessionConfig{
			Secret:      "router-test-secret",
			Issuer:      "agroexport-web",
			CookieName:  "agx_sid",
			TTL:         time.Hour,
			SubmitGuard: time.Minute,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	// The marketplace backend is down; public pages must still render.
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(backend.Close)

	cfg := testConfig(backend.URL)
	api, err := upstream.NewClient(cfg.Upstream, nil)
	if err != nil {
		t.Fatalf("upstream client: %v", err)
	}
	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	sessions := session.NewMemoryStore()

	orderSvc, err := orders.NewService(api, nil)
	if err != nil {
		t.Fatalf("orders service: %v", err)
	}
	productSvc, err := products.NewService(api, nil)
	if err != nil {
		t.Fatalf("products service: %v", err)
	}
	vendorSvc, err := vendors.NewService(api, sessions, nil)
	if err != nil {
		t.Fatalf("vendors service: %v", err)
	}
	adminSvc, err := adminauth.NewService(api, sessions, nil)
	if err != nil {
		t.Fatalf("adminauth service: %v", err)
	}
	dashSvc, err := dashboard.NewService(api, nil)
	if err != nil {
		t.Fatalf("dashboard service: %v", err)
	}

	return NewRouter(Deps{
		Cfg:       cfg,
		Renderer:  renderer,
		Sessions:  sessions,
		Cookie:    session.NewCookie(cfg.Session),
		Orders:    orderSvc,
		Products:  productSvc,
		Vendors:   vendorSvc,
		AdminAuth: adminSvc,
		Dashboard: dashSvc,
		WhatsApp:  notify.NewWhatsApp(""),
	})
}

func TestMissingTemplatesEmptyForEmbeddedSet(t *testing.T) {
	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	if missing := MissingTemplates(renderer); len(missing) != 0 {
		t.Fatalf("missing templates: %v", missing)
	}
	if missing := MissingTemplates(nil); len(missing) == 0 {
		t.Fatal("nil renderer should report every page missing")
	}
}

func TestHealthLive(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHomeRendersWhenBackendDown(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Agrovia") {
		t.Fatalf("home page missing brand: %s", rec.Body.String()[:200])
	}
}

func TestAdminDashboardRedirectsWithoutSession(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/admin/login" {
		t.Fatalf("Location = %q, want /admin/login", got)
	}
}

func TestVendorProductsRedirectsWithoutSession(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/vendor/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/vendor/login" {
		t.Fatalf("Location = %q, want /vendor/login", got)
	}
}

func TestStaticAssetsServed(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/static/site.css", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
