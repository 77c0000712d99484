package vendors

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovia/agroexport-web/internal/session"
	"github.com/agrovia/agroexport-web/pkg/enums"
	pkgerrors "github.com/agrovia/agroexport-web/pkg/errors"
	"github.com/agrovia/agroexport-web/pkg/upstream"
)

type stubAPI struct {
	registerCalls int
	loginCalls    int
	statusCalls   int
	lastStatus    enums.VendorStatus
	lastVendorID  string
	loginErr      error
	session       *upstream.Session
	vendors       []upstream.Vendor
}

func (s *stubAPI) RegisterVendor(_ context.Context, req upstream.VendorRegistration) (*upstream.Vendor, error) {
	s.registerCalls++
	return &upstream.Vendor{
		ID:           "v-1",
		BusinessName: req.BusinessName,
		Email:        req.Email,
		Status:       enums.VendorStatusPending,
	}, nil
}

func (s *stubAPI) VendorLogin(_ context.Context, email, password string) (*upstream.Session, error) {
	s.loginCalls++
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.session, nil
}

func (s *stubAPI) ListVendors(_ context.Context, token string) ([]upstream.Vendor, error) {
	return s.vendors, nil
}

func (s *stubAPI) GetVendor(_ context.Context, token, vendorID string) (*upstream.Vendor, error) {
	s.lastVendorID = vendorID
	return &upstream.Vendor{ID: vendorID}, nil
}

func (s *stubAPI) SetVendorStatus(_ context.Context, token, vendorID string, status enums.VendorStatus) (*upstream.Vendor, error) {
	s.statusCalls++
	s.lastVendorID = vendorID
	s.lastStatus = status
	return &upstream.Vendor{ID: vendorID, Status: status}, nil
}

func newTestService(t *testing.T, api *stubAPI) (Service, session.Store) {
	t.Helper()
	store := session.NewMemoryStore()
	svc, err := NewService(api, store, nil)
	require.NoError(t, err)
	return svc, store
}

func TestRegisterRequiresCoreFields(t *testing.T) {
	api := &stubAPI{}
	svc, _ := newTestService(t, api)

	_, err := svc.Register(context.Background(), upstream.VendorRegistration{Email: "farm@example.com"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	fields, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, fields, "business_name")
	assert.Contains(t, fields, "password")
	assert.NotContains(t, fields, "email")
	assert.Zero(t, api.registerCalls)
}

func TestRegisterPassesThrough(t *testing.T) {
	api := &stubAPI{}
	svc, _ := newTestService(t, api)

	vendor, err := svc.Register(context.Background(), upstream.VendorRegistration{
		BusinessName:  "Green Valley Exports",
		ContactPerson: "Asha Rao",
		Email:         "asha@greenvalley.example",
		Password:      "s3cret-pw",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.VendorStatusPending, vendor.Status)
	assert.Equal(t, 1, api.registerCalls)
}

func TestLoginStoresVendorCredentials(t *testing.T) {
	profile := json.RawMessage(`{"business_name":"Green Valley Exports"}`)
	api := &stubAPI{session: &upstream.Session{Token: "vend-token", Profile: profile}}
	svc, store := newTestService(t, api)

	err := svc.Login(context.Background(), "sid-1", "asha@greenvalley.example", "s3cret-pw")
	require.NoError(t, err)

	creds, ok, err := store.Get(context.Background(), "sid-1", enums.RoleVendor)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "vend-token", creds.Token)
	assert.JSONEq(t, string(profile), string(creds.Profile))
}

func TestLoginRejectsEmptyCredentials(t *testing.T) {
	api := &stubAPI{}
	svc, _ := newTestService(t, api)

	err := svc.Login(context.Background(), "sid-1", "", "pw")
	require.Error(t, err)
	assert.Zero(t, api.loginCalls)
}

func TestLoginMissingTokenDoesNotStore(t *testing.T) {
	api := &stubAPI{session: &upstream.Session{}}
	svc, store := newTestService(t, api)

	err := svc.Login(context.Background(), "sid-1", "asha@greenvalley.example", "pw")
	require.Error(t, err)

	_, ok, err := store.Get(context.Background(), "sid-1", enums.RoleVendor)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogoutClearsOnlyVendorSlot(t *testing.T) {
	api := &stubAPI{session: &upstream.Session{Token: "vend-token"}}
	svc, store := newTestService(t, api)

	require.NoError(t, store.Set(context.Background(), "sid-1", enums.RoleCustomer, session.Credentials{Token: "cust-token"}))
	require.NoError(t, svc.Login(context.Background(), "sid-1", "asha@greenvalley.example", "pw"))
	require.NoError(t, svc.Logout(context.Background(), "sid-1"))

	_, ok, err := store.Get(context.Background(), "sid-1", enums.RoleVendor)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.Get(context.Background(), "sid-1", enums.RoleCustomer)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSetStatusValidatesInput(t *testing.T) {
	api := &stubAPI{}
	svc, _ := newTestService(t, api)

	_, err := svc.SetStatus(context.Background(), "tok", "v-1", enums.VendorStatus("frozen"))
	require.Error(t, err)
	assert.Zero(t, api.statusCalls)

	_, err = svc.SetStatus(context.Background(), "tok", "", enums.VendorStatusApproved)
	require.Error(t, err)
	assert.Zero(t, api.statusCalls)

	vendor, err := svc.SetStatus(context.Background(), "tok", "v-1", enums.VendorStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, enums.VendorStatusApproved, vendor.Status)
	assert.Equal(t, 1, api.statusCalls)
	assert.Equal(t, enums.VendorStatusApproved, api.lastStatus)
}
