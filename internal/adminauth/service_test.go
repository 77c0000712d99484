package adminauth

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/agrovia/agroexport-web/internal/session"
	"github.com/agrovia/agroexport-web/pkg/enums"
	pkgerrors "github.com/agrovia/agroexport-web/pkg/errors"
	"github.com/agrovia/agroexport-web/pkg/upstream"
	"github.com/stretchr/testify/require"
)

type stubAPI struct {
	signupStatus  *upstream.SignupStatus
	signupResp    *upstream.Session
	signupErr     error
	loginResp     *upstream.Session
	loginErr      error
	loginCalls    int
	licenseCalls  int
	validateCalls int
	resendCalls   int
	lastEmail     string
}

func (s *stubAPI) AdminSignupStatus(ctx context.Context) (*upstream.SignupStatus, error) {
	return s.signupStatus, nil
}

func (s *stubAPI) AdminSignup(ctx context.Context, name, email, password, licenseKey string) (*upstream.Session, error) {
	return s.signupResp, s.signupErr
}

func (s *stubAPI) AdminLogin(ctx context.Context, email, password string) (*upstream.Session, error) {
	s.loginCalls++
	s.lastEmail = email
	return s.loginResp, s.loginErr
}

func (s *stubAPI) RequestLicense(ctx context.Context, email string) error {
	s.licenseCalls++
	s.lastEmail = email
	return nil
}

func (s *stubAPI) ValidateLicense(ctx context.Context, email, key string) error {
	s.validateCalls++
	return nil
}

func (s *stubAPI) ResendLicense(ctx context.Context, email string) error {
	s.resendCalls++
	return nil
}

func TestLoginStoresAdminCredentials(t *testing.T) {
	api := &stubAPI{loginResp: &upstream.Session{
		Token:   "admin-tok",
		Profile: json.RawMessage(`{"name":"Ama"}`),
	}}
	store := session.NewMemoryStore()
	svc, err := NewService(api, store, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Login(context.Background(), "sid-1", "ama@example.com", "pw"))

	creds, ok, err := store.Get(context.Background(), "sid-1", enums.RoleAdmin)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "admin-tok", creds.Token)
}

func TestLoginRequiresCredentials(t *testing.T) {
	api := &stubAPI{}
	svc, _ := NewService(api, session.NewMemoryStore(), nil)

	err := svc.Login(context.Background(), "sid-1", "", "")
	require.Error(t, err)
	require.Equal(t, 0, api.loginCalls)
}

func TestLoginSurfacesLockedAccount(t *testing.T) {
	api := &stubAPI{loginErr: pkgerrors.New(pkgerrors.CodeLocked, "account locked")}
	store := session.NewMemoryStore()
	svc, _ := NewService(api, store, nil)

	err := svc.Login(context.Background(), "sid-1", "ama@example.com", "pw")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeLocked, typed.Code())

	_, ok, _ := store.Get(context.Background(), "sid-1", enums.RoleAdmin)
	require.False(t, ok, "no credentials may be stored after a failed login")
}

func TestSignupValidatesRequiredFields(t *testing.T) {
	svc, _ := NewService(&stubAPI{}, session.NewMemoryStore(), nil)

	err := svc.Signup(context.Background(), "sid-1", SignupInput{Email: "a@b.c"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	fields, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	require.Contains(t, fields, "name")
	require.Contains(t, fields, "password")
	require.Contains(t, fields, "license_key")
}

func TestLogoutClearsOnlyAdminSlot(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "sid-1", enums.RoleAdmin, session.Credentials{Token: "a"}))
	require.NoError(t, store.Set(ctx, "sid-1", enums.RoleVendor, session.Credentials{Token: "v"}))

	svc, _ := NewService(&stubAPI{}, store, nil)
	require.NoError(t, svc.Logout(ctx, "sid-1"))

	_, ok, _ := store.Get(ctx, "sid-1", enums.RoleAdmin)
	require.False(t, ok)
	_, ok, _ = store.Get(ctx, "sid-1", enums.RoleVendor)
	require.True(t, ok)
}

func TestSignupAllowed(t *testing.T) {
	svc, _ := NewService(&stubAPI{signupStatus: &upstream.SignupStatus{SignupAllowed: false}}, session.NewMemoryStore(), nil)
	allowed, err := svc.SignupAllowed(context.Background())
	require.NoError(t, err)
	require.False(t, allowed)
}

func TestLicenseFlowRequiresEmail(t *testing.T) {
	api := &stubAPI{}
	svc, _ := NewService(api, session.NewMemoryStore(), nil)

	require.Error(t, svc.RequestLicense(context.Background(), " "))
	require.Error(t, svc.ValidateLicense(context.Background(), "a@b.c", ""))
	require.Error(t, svc.ResendLicense(context.Background(), ""))
	require.Equal(t, 0, api.licenseCalls)
	require.Equal(t, 0, api.validateCalls)
	require.Equal(t, 0, api.resendCalls)

	require.NoError(t, svc.RequestLicense(context.Background(), "a@b.c"))
	require.Equal(t, 1, api.licenseCalls)
}
