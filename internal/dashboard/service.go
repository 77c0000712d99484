package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/agrovia/agroexport-web/pkg/logger"
	"github.com/agrovia/agroexport-web/pkg/upstream"
)

type marketplaceAPI interface {
	ListOrders(ctx context.Context, token string) ([]upstream.Order, error)
	OrderStats(ctx context.Context, token string) (*upstream.OrderStats, error)
	ListVendors(ctx context.Context, token string) ([]upstream.Vendor, error)
	MyProducts(ctx context.Context, token string) ([]upstream.Product, error)
}

// Section holds one dashboard panel. A panel that failed to load keeps its
// Err so the page can render the rest and offer a retry, instead of failing
// the whole dashboard on one slow upstream call.
type Section[T any] struct {
	Data T
	Err  error
}

func (s Section[T]) OK() bool { return s.Err == nil }

// AdminOverview is the admin landing page model.
type AdminOverview struct {
	Orders  Section[[]upstream.Order]
	Stats   Section[*upstream.OrderStats]
	Vendors Section[[]upstream.Vendor]
}

// VendorOverview is the vendor console landing page model.
type VendorOverview struct {
	Products Section[[]upstream.Product]
}

type Service interface {
	AdminOverview(ctx context.Context, token string) (*AdminOverview, error)
	VendorOverview(ctx context.Context, token string) (*VendorOverview, error)
}

type service struct {
	api  marketplaceAPI
	logg *logger.Logger
}

func NewService(api marketplaceAPI, logg *logger.Logger) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("marketplace api client required")
	}
	return &service{api: api, logg: logg}, nil
}

// AdminOverview loads the three admin panels concurrently. Per-panel errors
// are captured in each Section rather than aborting the group, so the only
// error returned is context cancellation.
func (s *service) AdminOverview(ctx context.Context, token string) (*AdminOverview, error) {
	overview := &AdminOverview{}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		overview.Orders.Data, overview.Orders.Err = s.api.ListOrders(gctx, token)
		s.logSectionErr(gctx, "orders", overview.Orders.Err)
		return nil
	})
	group.Go(func() error {
		overview.Stats.Data, overview.Stats.Err = s.api.OrderStats(gctx, token)
		s.logSectionErr(gctx, "stats", overview.Stats.Err)
		return nil
	})
	group.Go(func() error {
		overview.Vendors.Data, overview.Vendors.Err = s.api.ListVendors(gctx, token)
		s.logSectionErr(gctx, "vendors", overview.Vendors.Err)
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return overview, nil
}

func (s *service) VendorOverview(ctx context.Context, token string) (*VendorOverview, error) {
	overview := &VendorOverview{}
	overview.Products.Data, overview.Products.Err = s.api.MyProducts(ctx, token)
	s.logSectionErr(ctx, "products", overview.Products.Err)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return overview, nil
}

func (s *service) logSectionErr(ctx context.Context, section string, err error) {
	if err == nil || s.logg == nil {
		return
	}
	s.logg.Warn(ctx, fmt.Sprintf("dashboard section %s failed to load: %v", section, err))
}
