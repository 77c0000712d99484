package web

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewRendererParsesAllPages(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	for _, page := range []string{
		"home", "about", "services", "gallery", "certifications", "products",
		"quote_form", "quote_confirmation", "order_confirm", "order_view", "invoice",
		"admin_login", "admin_signup", "admin_license", "admin_dashboard",
		"admin_orders", "admin_order_detail", "admin_vendors",
		"vendor_login", "vendor_register", "vendor_dashboard",
		"vendor_products", "vendor_product_form", "error",
	} {
		if !renderer.Has(page) {
			t.Errorf("missing page template %q", page)
		}
	}
}

func TestRenderWritesLayoutAndContent(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := renderer.Render(rec, 200, "about", nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Agrovia") {
		t.Fatalf("layout brand missing from body")
	}
}

func TestRenderUnknownPageFails(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := renderer.Render(rec, 200, "no_such_page", nil); err == nil {
		t.Fatal("expected error for unknown page")
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("body written despite error: %s", rec.Body.String())
	}
}
