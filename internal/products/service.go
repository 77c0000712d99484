package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/agrovia/agroexport-web/pkg/errors"
	"github.com/agrovia/agroexport-web/pkg/logger"
	"github.com/agrovia/agroexport-web/pkg/upstream"
)

type marketplaceAPI interface {
	ListProducts(ctx context.Context, category string) ([]upstream.Product, error)
	MyProducts(ctx context.Context, token string) ([]upstream.Product, error)
	CreateProduct(ctx context.Context, token string, upload upstream.ProductUpload) (*upstream.Product, error)
	UpdateProduct(ctx context.Context, token, productID string, upload upstream.ProductUpload) (*upstream.Product, error)
	DeleteProduct(ctx context.Context, token, productID string) error
}

// Service exposes the public catalog and the vendor product console.
type Service interface {
	Catalog(ctx context.Context, category string) ([]upstream.Product, error)
	Mine(ctx context.Context, token string) ([]upstream.Product, error)
	Create(ctx context.Context, token string, upload upstream.ProductUpload) (*upstream.Product, error)
	Update(ctx context.Context, token, productID string, upload upstream.ProductUpload) (*upstream.Product, error)
	Delete(ctx context.Context, token, productID string) error
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

// Catalog lists available products, optionally narrowed to one category.
func (s *service) Catalog(ctx context.Context, category string) ([]upstream.Product, error) {
	return s.api.ListProducts(ctx, strings.TrimSpace(category))
}

func (s *service) Mine(ctx context.Context, token string) ([]upstream.Product, error) {
	return s.api.MyProducts(ctx, token)
}

func (s *service) Create(ctx context.Context, token string, upload upstream.ProductUpload) (*upstream.Product, error) {
	if err := validateUpload(upload); err != nil {
		return nil, err
	}
	return s.api.CreateProduct(ctx, token, upload)
}

func (s *service) Update(ctx context.Context, token, productID string, upload upstream.ProductUpload) (*upstream.Product, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if err := validateUpload(upload); err != nil {
		return nil, err
	}
	return s.api.UpdateProduct(ctx, token, productID, upload)
}

func (s *service) Delete(ctx context.Context, token, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	return s.api.DeleteProduct(ctx, token, productID)
}

// validateUpload checks the form fields before building the multipart body. A
// product is either explicitly priced, carries a price range, or is listed as
// contact-for-price with all price fields empty.
func validateUpload(upload upstream.ProductUpload) error {
	fields := map[string]string{}
	if strings.TrimSpace(upload.Name) == "" {
		fields["name"] = "is required"
	}
	if strings.TrimSpace(upload.Category) == "" {
		fields["category"] = "is required"
	}
	if strings.TrimSpace(upload.Unit) == "" {
		fields["unit"] = "is required"
	}

	checkAmount := func(field, raw string) {
		if strings.TrimSpace(raw) == "" {
			return
		}
		amt, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			fields[field] = "must be a number"
			return
		}
		if amt.IsNegative() {
			fields[field] = "must not be negative"
		}
	}
	checkAmount("price", upload.Price)
	checkAmount("price_min", upload.PriceMin)
	checkAmount("price_max", upload.PriceMax)

	hasMin := strings.TrimSpace(upload.PriceMin) != ""
	hasMax := strings.TrimSpace(upload.PriceMax) != ""
	if hasMin != hasMax {
		fields["price_range"] = "both minimum and maximum are required"
	} else if hasMin && hasMax && fields["price_min"] == "" && fields["price_max"] == "" {
		min, _ := decimal.NewFromString(strings.TrimSpace(upload.PriceMin))
		max, _ := decimal.NewFromString(strings.TrimSpace(upload.PriceMax))
		if max.LessThan(min) {
			fields["price_range"] = "maximum must not be below minimum"
		}
	}

	if len(fields) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "please correct the highlighted fields").WithDetails(fields)
	}
	return nil
}
