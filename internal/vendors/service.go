package vendors

import (
	"context"
	"fmt"
	"strings"

	"github.com/agrovia/agroexport-web/internal/session"
	"github.com/agrovia/agroexport-web/pkg/enums"
	pkgerrors "github.com/agrovia/agroexport-web/pkg/errors"
	"github.com/agrovia/agroexport-web/pkg/logger"
	"github.com/agrovia/agroexport-web/pkg/upstream"
)

// marketplaceAPI is the slice of the upstream client this service consumes.
type marketplaceAPI interface {
	RegisterVendor(ctx context.Context, req upstream.VendorRegistration) (*upstream.Vendor, error)
	VendorLogin(ctx context.Context, email, password string) (*upstream.Session, error)
	ListVendors(ctx context.Context, token string) ([]upstream.Vendor, error)
	GetVendor(ctx context.Context, token, vendorID string) (*upstream.Vendor, error)
	SetVendorStatus(ctx context.Context, token, vendorID string, status enums.VendorStatus) (*upstream.Vendor, error)
}

// Service covers vendor self-service and the admin approval surface.
type Service interface {
	Register(ctx context.Context, input upstream.VendorRegistration) (*upstream.Vendor, error)
	Login(ctx context.Context, sessionID, email, password string) error
	Logout(ctx context.Context, sessionID string) error
	List(ctx context.Context, token string) ([]upstream.Vendor, error)
	Get(ctx context.Context, token, vendorID string) (*upstream.Vendor, error)
	SetStatus(ctx context.Context, token, vendorID string, status enums.VendorStatus) (*upstream.Vendor, error)
}

type service struct {
	api      marketplaceAPI
	sessions session.Store
	logg     *logger.Logger
}

// NewService builds the vendor service.
func NewService(api marketplaceAPI, sessions session.Store, logg *logger.Logger) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("marketplace api client required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	return &service{api: api, sessions: sessions, logg: logg}, nil
}

// Register submits a vendor self-registration. New accounts start pending
// until an admin approves them.
func (s *service) Register(ctx context.Context, input upstream.VendorRegistration) (*upstream.Vendor, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.BusinessName) == "" {
		fields["business_name"] = "is required"
	}
	if strings.TrimSpace(input.ContactPerson) == "" {
		fields["contact_person"] = "is required"
	}
	if strings.TrimSpace(input.Email) == "" {
		fields["email"] = "is required"
	}
	if strings.TrimSpace(input.Password) == "" {
		fields["password"] = "is required"
	}
	if len(fields) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "please correct the highlighted fields").WithDetails(fields)
	}
	return s.api.RegisterVendor(ctx, input)
}

func (s *service) Login(ctx context.Context, sessionID, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}
	sess, err := s.api.VendorLogin(ctx, email, password)
	if err != nil {
		return err
	}
	if sess == nil || sess.Token == "" {
		return pkgerrors.New(pkgerrors.CodeUpstream, "login response missing token")
	}
	return s.sessions.Set(ctx, sessionID, enums.RoleVendor, session.Credentials{
		Token:   sess.Token,
		Profile: sess.Profile,
	})
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Clear(ctx, sessionID, enums.RoleVendor)
}

func (s *service) List(ctx context.Context, token string) ([]upstream.Vendor, error) {
	return s.api.ListVendors(ctx, token)
}

func (s *service) Get(ctx context.Context, token, vendorID string) (*upstream.Vendor, error) {
	if strings.TrimSpace(vendorID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	return s.api.GetVendor(ctx, token, vendorID)
}

// SetStatus applies an admin approval decision.
func (s *service) SetStatus(ctx context.Context, token, vendorID string, status enums.VendorStatus) (*upstream.Vendor, error) {
	if strings.TrimSpace(vendorID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown vendor status %q", status))
	}
	return s.api.SetVendorStatus(ctx, token, vendorID, status)
}
