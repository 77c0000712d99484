package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/agrovia/agroexport-web/internal/session"
	"github.com/agrovia/agroexport-web/pkg/enums"
)

func adminOrderDetailRequest(t *testing.T, handler http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders/o-1", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderID", "o-1")
	req = req.WithContext(contextWithRoute(req, routeCtx))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAdminOrderDetailShowsQuoteForm(t *testing.T) {
	order := confirmedOrder()
	order.Status = enums.OrderStatusPending
	svc := &stubOrderService{confirmOrder: order}
	handler := AdminOrderDetail(testRenderer(t), svc, session.NewMemoryStore(), nil)

	rec := adminOrderDetailRequest(t, handler)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Send quote") {
		t.Fatal("expected quote form for a pending order")
	}
	if !strings.Contains(body, "Update status") {
		t.Fatal("expected status form for a pending order")
	}
}

func TestAdminOrderDetailClosesTerminalOrders(t *testing.T) {
	order := confirmedOrder()
	order.Status = enums.OrderStatusDelivered
	svc := &stubOrderService{confirmOrder: order}
	handler := AdminOrderDetail(testRenderer(t), svc, session.NewMemoryStore(), nil)

	rec := adminOrderDetailRequest(t, handler)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "Send quote") {
		t.Fatal("quote form must not render for a delivered order")
	}
	if strings.Contains(body, "Update status") {
		t.Fatal("status form must not render for a delivered order")
	}
	if !strings.Contains(body, "closed") {
		t.Fatal("expected a closed-order notice")
	}
}
