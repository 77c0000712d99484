package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agrovia/agroexport-web/pkg/config"
	"github.com/agrovia/agroexport-web/pkg/enums"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	sid := NewSessionID()

	_, ok, err := store.Get(ctx, sid, enums.RoleAdmin)
	require.NoError(t, err)
	require.False(t, ok)

	creds := Credentials{Token: "tok", Profile: json.RawMessage(`{"name":"Ama"}`)}
	require.NoError(t, store.Set(ctx, sid, enums.RoleAdmin, creds))

	got, ok, err := store.Get(ctx, sid, enums.RoleAdmin)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok", got.Token)

	// Other roles stay empty.
	_, ok, err = store.Get(ctx, sid, enums.RoleVendor)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	sid := NewSessionID()

	require.NoError(t, store.Set(ctx, sid, enums.RoleAdmin, Credentials{Token: "a"}))
	require.NoError(t, store.Set(ctx, sid, enums.RoleVendor, Credentials{Token: "v"}))

	require.NoError(t, store.Clear(ctx, sid, enums.RoleAdmin))
	_, ok, _ := store.Get(ctx, sid, enums.RoleAdmin)
	require.False(t, ok)
	_, ok, _ = store.Get(ctx, sid, enums.RoleVendor)
	require.True(t, ok)

	require.NoError(t, store.ClearAll(ctx, sid))
	_, ok, _ = store.Get(ctx, sid, enums.RoleVendor)
	require.False(t, ok)
}

func TestCookieRoundTrip(t *testing.T) {
	cfg := config.SessionConfig{
		Secret:     "secret",
		Issuer:     "agroexport-web",
		CookieName: "agx_sid",
		TTL:        time.Hour,
	}
	cookie := NewCookie(cfg)

	rec := httptest.NewRecorder()
	require.NoError(t, cookie.Write(rec, "sid-1", time.Now()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	sid, ok := cookie.Read(req)
	require.True(t, ok)
	require.Equal(t, "sid-1", sid)
}

func TestCookieRejectsTampering(t *testing.T) {
	cfg := config.SessionConfig{
		Secret:     "secret",
		Issuer:     "agroexport-web",
		CookieName: "agx_sid",
		TTL:        time.Hour,
	}
	cookie := NewCookie(cfg)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "agx_sid", Value: "forged"})

	_, ok := cookie.Read(req)
	require.False(t, ok)
}

func TestCookieEnsureMintsNewSession(t *testing.T) {
	cfg := config.SessionConfig{
		Secret:     "secret",
		Issuer:     "agroexport-web",
		CookieName: "agx_sid",
		TTL:        time.Hour,
	}
	cookie := NewCookie(cfg)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sid, err := cookie.Ensure(rec, req)
	require.NoError(t, err)
	require.NotEmpty(t, sid)
	require.NotEmpty(t, rec.Result().Cookies())
}
