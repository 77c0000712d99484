package session

import (
	"net/http"
	"time"

	pkgauth "github.com/agrovia/agroexport-web/pkg/auth"
	"github.com/agrovia/agroexport-web/pkg/config"
)

// Cookie binds a browser to its server-side session via a signed token. The
// cookie never carries upstream bearer tokens.
type Cookie struct {
	cfg config.SessionConfig
}

// NewCookie builds the cookie codec.
func NewCookie(cfg config.SessionConfig) Cookie {
	return Cookie{cfg: cfg}
}

// Read extracts and verifies the session ID from the request cookie.
func (c Cookie) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(c.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	sid, err := pkgauth.ParseSessionToken(c.cfg, cookie.Value)
	if err != nil {
		return "", false
	}
	return sid, true
}

// Write issues a signed cookie for the session ID.
func (c Cookie) Write(w http.ResponseWriter, sessionID string, now time.Time) error {
	token, err := pkgauth.MintSessionToken(c.cfg, now, sessionID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(c.cfg.TTL),
		HttpOnly: true,
		Secure:   c.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Ensure returns the request's session ID, minting a fresh session and
// setting the cookie when none exists yet.
func (c Cookie) Ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	if sid, ok := c.Read(r); ok {
		return sid, nil
	}
	sid := NewSessionID()
	if err := c.Write(w, sid, time.Now()); err != nil {
		return "", err
	}
	return sid, nil
}

// Drop expires the session cookie.
func (c Cookie) Drop(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
