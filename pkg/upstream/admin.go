package upstream

import "context"

// AdminSignupStatus reports whether the single admin account slot is open.
func (c *Client) AdminSignupStatus(ctx context.Context) (*SignupStatus, error) {
	var status SignupStatus
	if err := c.getJSON(ctx, "/admin/signup-status", "", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// AdminSignup creates the single admin account using a validated license key.
func (c *Client) AdminSignup(ctx context.Context, name, email, password, licenseKey string) (*Session, error) {
	payload := map[string]string{
		"name":        name,
		"email":       email,
		"password":    password,
		"license_key": licenseKey,
	}
	var session Session
	if err := c.postJSON(ctx, "/admin/signup", "", payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// AdminLogin exchanges credentials for an admin session.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}
	var session Session
	if err := c.postJSON(ctx, "/admin/login", "", payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// RequestLicense starts the one-time license-key issuance flow; the key is
// delivered out of band by email.
func (c *Client) RequestLicense(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	return c.postJSON(ctx, "/license/request", "", payload, nil)
}

// ValidateLicense checks a license key before admin signup proceeds.
func (c *Client) ValidateLicense(ctx context.Context, email, key string) error {
	payload := map[string]string{
		"email": email,
		"key":   key,
	}
	return c.postJSON(ctx, "/license/validate", "", payload, nil)
}

// ResendLicense re-sends the license key email.
func (c *Client) ResendLicense(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	return c.postJSON(ctx, "/license/resend", "", payload, nil)
}
