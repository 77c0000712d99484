package adminauth

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
	AdminSignupStatus(ctx context.Context) (*upstream.SignupStatus, error)
	AdminSignup(ctx context.Context, name, email, password, licenseKey string) (*upstream.Session, error)
	AdminLogin(ctx context.Context, email, password string) (*upstream.Session, error)
	RequestLicense(ctx context.Context, email string) error
	ValidateLicense(ctx context.Context, email, key string) error
	ResendLicense(ctx context.Context, email string) error
}

// Service runs the admin account flows: the one-time license-key issuance,
// the single-admin signup and login/logout.
type Service interface {
	SignupAllowed(ctx context.Context) (bool, error)
	Signup(ctx context.Context, sessionID string, input SignupInput) error
	Login(ctx context.Context, sessionID, email, password string) error
	Logout(ctx context.Context, sessionID string) error
	RequestLicense(ctx context.Context, email string) error
	ValidateLicense(ctx context.Context, email, key string) error
	ResendLicense(ctx context.Context, email string) error
}

// SignupInput is the admin signup form.
type SignupInput struct {
	Name       string
	Email      string
	Password   string
	LicenseKey string
}

type service struct {
	api      marketplaceAPI
	sessions session.Store
	logg     *logger.Logger
}

// NewService builds the admin auth service.
func NewService(api marketplaceAPI, sessions session.Store, logg *logger.Logger) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("marketplace api client required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	return &service{api: api, sessions: sessions, logg: logg}, nil
}

func (s *service) SignupAllowed(ctx context.Context) (bool, error) {
	status, err := s.api.AdminSignupStatus(ctx)
	if err != nil {
		return false, err
	}
	return status.SignupAllowed, nil
}

// Signup creates the single admin account. The upstream enforces the
// one-admin invariant; a taken slot comes back as a conflict.
func (s *service) Signup(ctx context.Context, sessionID string, input SignupInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "is required"
	}
	if strings.TrimSpace(input.Email) == "" {
		fields["email"] = "is required"
	}
	if strings.TrimSpace(input.Password) == "" {
		fields["password"] = "is required"
	}
	if strings.TrimSpace(input.LicenseKey) == "" {
		fields["license_key"] = "is required"
	}
	if len(fields) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "please correct the highlighted fields").WithDetails(fields)
	}

	sess, err := s.api.AdminSignup(ctx, input.Name, input.Email, input.Password, input.LicenseKey)
	if err != nil {
		return err
	}
	return s.storeSession(ctx, sessionID, sess)
}

func (s *service) Login(ctx context.Context, sessionID, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}
	sess, err := s.api.AdminLogin(ctx, email, password)
	if err != nil {
		return err
	}
	if err := s.storeSession(ctx, sessionID, sess); err != nil {
		return err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithRole(ctx, enums.RoleAdmin.String()), "admin login")
	}
	return nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Clear(ctx, sessionID, enums.RoleAdmin)
}

func (s *service) RequestLicense(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	return s.api.RequestLicense(ctx, email)
}

func (s *service) ValidateLicense(ctx context.Context, email, key string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(key) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email and license key are required")
	}
	return s.api.ValidateLicense(ctx, email, key)
}

func (s *service) ResendLicense(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	return s.api.ResendLicense(ctx, email)
}

func (s *service) storeSession(ctx context.Context, sessionID string, sess *upstream.Session) error {
	if sess == nil || sess.Token == "" {
		return pkgerrors.New(pkgerrors.CodeUpstream, "login response missing token")
	}
	return s.sessions.Set(ctx, sessionID, enums.RoleAdmin, session.Credentials{
		Token:   sess.Token,
		Profile: sess.Profile,
	})
}
