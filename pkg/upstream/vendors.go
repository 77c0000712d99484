package upstream

import (
	"context"
	"net/url"

	"github.com/agrovia/agroexport-web/pkg/enums"
)

// RegisterVendor submits a vendor self-registration.
func (c *Client) RegisterVendor(ctx context.Context, req VendorRegistration) (*Vendor, error) {
	var vendor Vendor
	if err := c.postJSON(ctx, "/vendors/register", "", req, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

// VendorLogin exchanges credentials for a vendor session.
func (c *Client) VendorLogin(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}
	var session Session
	if err := c.postJSON(ctx, "/vendors/login", "", payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListVendors returns every vendor for the admin dashboard.
func (c *Client) ListVendors(ctx context.Context, token string) ([]Vendor, error) {
	var vendors []Vendor
	if err := c.getJSON(ctx, "/vendors", token, &vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}

// GetVendor fetches one vendor profile.
func (c *Client) GetVendor(ctx context.Context, token, vendorID string) (*Vendor, error) {
	var vendor Vendor
	if err := c.getJSON(ctx, "/vendors/"+url.PathEscape(vendorID), token, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

// SetVendorStatus applies an admin approval decision.
func (c *Client) SetVendorStatus(ctx context.Context, token, vendorID string, status enums.VendorStatus) (*Vendor, error) {
	payload := map[string]string{"status": status.String()}
	var vendor Vendor
	if err := c.putJSON(ctx, "/vendors/"+url.PathEscape(vendorID)+"/status", token, payload, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}
