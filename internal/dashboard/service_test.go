package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovia/agroexport-web/pkg/upstream"
)

type stubAPI struct {
	orders     []upstream.Order
	ordersErr  error
	stats      *upstream.OrderStats
	statsErr   error
	vendors    []upstream.Vendor
	vendorsErr error
	products   []upstream.Product
}

func (s *stubAPI) ListOrders(_ context.Context, token string) ([]upstream.Order, error) {
	return s.orders, s.ordersErr
}

func (s *stubAPI) OrderStats(_ context.Context, token string) (*upstream.OrderStats, error) {
	return s.stats, s.statsErr
}

func (s *stubAPI) ListVendors(_ context.Context, token string) ([]upstream.Vendor, error) {
	return s.vendors, s.vendorsErr
}

func (s *stubAPI) MyProducts(_ context.Context, token string) ([]upstream.Product, error) {
	return s.products, nil
}

func TestAdminOverviewLoadsAllSections(t *testing.T) {
	api := &stubAPI{
		orders:  []upstream.Order{{OrderNumber: "ORD-1001"}},
		stats:   &upstream.OrderStats{},
		vendors: []upstream.Vendor{{ID: "v-1"}},
	}
	svc, err := NewService(api, nil)
	require.NoError(t, err)

	overview, err := svc.AdminOverview(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, overview.Orders.OK())
	assert.True(t, overview.Stats.OK())
	assert.True(t, overview.Vendors.OK())
	assert.Len(t, overview.Orders.Data, 1)
	assert.Len(t, overview.Vendors.Data, 1)
}

func TestAdminOverviewKeepsHealthySectionsOnFailure(t *testing.T) {
	api := &stubAPI{
		orders:   []upstream.Order{{OrderNumber: "ORD-1001"}},
		statsErr: errors.New("stats endpoint down"),
		vendors:  []upstream.Vendor{{ID: "v-1"}},
	}
	svc, _ := NewService(api, nil)

	overview, err := svc.AdminOverview(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, overview.Orders.OK())
	assert.False(t, overview.Stats.OK())
	assert.True(t, overview.Vendors.OK())
	assert.Error(t, overview.Stats.Err)
}

func TestAdminOverviewCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc, _ := NewService(&stubAPI{}, nil)
	_, err := svc.AdminOverview(ctx, "tok")
	require.ErrorIs(t, err, context.Canceled)
}

func TestVendorOverview(t *testing.T) {
	api := &stubAPI{products: []upstream.Product{{ID: "p-1"}, {ID: "p-2"}}}
	svc, _ := NewService(api, nil)

	overview, err := svc.VendorOverview(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, overview.Products.OK())
	assert.Len(t, overview.Products.Data, 2)
}
