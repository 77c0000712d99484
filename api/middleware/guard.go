package middleware

import (
	"net/http"

	"github.com/agrovia/agroexport-web/internal/session"
	"github.com/agrovia/agroexport-web/pkg/enums"
	"github.com/agrovia/agroexport-web/pkg/logger"
)

// EnsureSession guarantees every request carries a browser session, minting
// the signed cookie on first contact. The session identifier flows down via
// context so form handlers can key server-side state to it.
func EnsureSession(cookie session.Cookie, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, err := cookie.Ensure(w, r)
			if err != nil {
				if logg != nil {
					logg.Error(r.Context(), "session.cookie.mint", err)
				}
				http.Error(w, "Something went wrong on our side. Please try again.", http.StatusInternalServerError)
				return
			}

			ctx := WithSessionID(r.Context(), sid)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sid)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route subtree on stored credentials for one role. The
// check is presence-only: a request without credentials for the role is sent
// to the role's login page and the protected handler never runs. Whether the
// token is still honored is decided by the marketplace API on first use.
func RequireRole(role enums.Role, store session.Store, loginPath string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sid := SessionIDFromContext(ctx)
			if sid == "" {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			creds, ok, err := store.Get(ctx, sid, role)
			if err != nil {
				if logg != nil {
					logg.Error(ctx, "session.lookup", err)
				}
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			if !ok || creds.Token == "" {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			ctx = WithRole(ctx, role)
			ctx = WithToken(ctx, creds.Token)
			if logg != nil {
				ctx = logg.WithRole(ctx, role.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
