package upstream

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// ListProducts returns the public catalog, optionally filtered by category.
func (c *Client) ListProducts(ctx context.Context, category string) ([]Product, error) {
	path := "/products"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var products []Product
	if err := c.getJSON(ctx, path, "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// MyProducts returns the authenticated vendor's listings.
func (c *Client) MyProducts(ctx context.Context, token string) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, "/products/vendor/my-products", token, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductUpload is the create/update payload. Image uploads ride along as a
// multipart part; all other fields are plain form values.
type ProductUpload struct {
	Name        string
	Category    string
	Unit        string
	MinOrderQty string
	Price       string
	PriceMin    string
	PriceMax    string
	Currency    string
	Available   string
	ImageName   string
	Image       io.Reader
}

func (u ProductUpload) fields() []MultipartField {
	fields := []MultipartField{
		{Name: "name", Value: u.Name},
		{Name: "category", Value: u.Category},
		{Name: "unit", Value: u.Unit},
		{Name: "min_order_qty", Value: u.MinOrderQty},
		{Name: "price", Value: u.Price},
		{Name: "price_min", Value: u.PriceMin},
		{Name: "price_max", Value: u.PriceMax},
		{Name: "currency", Value: u.Currency},
		{Name: "available", Value: u.Available},
	}
	if u.Image != nil {
		fields = append(fields, MultipartField{
			Name:     "image",
			Filename: u.ImageName,
			Reader:   u.Image,
		})
	}
	return fields
}

// CreateProduct adds a listing for the authenticated vendor.
func (c *Client) CreateProduct(ctx context.Context, token string, upload ProductUpload) (*Product, error) {
	var product Product
	if err := c.postMultipart(ctx, http.MethodPost, "/products", token, upload.fields(), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct edits an existing listing.
func (c *Client) UpdateProduct(ctx context.Context, token, productID string, upload ProductUpload) (*Product, error) {
	var product Product
	path := "/products/" + url.PathEscape(productID)
	if err := c.postMultipart(ctx, http.MethodPut, path, token, upload.fields(), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a listing.
func (c *Client) DeleteProduct(ctx context.Context, token, productID string) error {
	return c.deleteJSON(ctx, "/products/"+url.PathEscape(productID), token, nil)
}
