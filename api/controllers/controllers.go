package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/agrovia/agroexport-web/api/middleware"
	"github.com/agrovia/agroexport-web/internal/session"
	"github.com/agrovia/agroexport-web/pkg/enums"
	pkgerrors "github.com/agrovia/agroexport-web/pkg/errors"
	"github.com/agrovia/agroexport-web/pkg/logger"
	"github.com/agrovia/agroexport-web/web"
)

// newFormToken mints the hidden one-shot token embedded in every mutating
// form.
func newFormToken() string {
	return uuid.NewString()
}

// renderPage executes a page template, falling back to a plain 500 when the
// template itself faults.
func renderPage(w http.ResponseWriter, r *http.Request, renderer *web.Renderer, logg *logger.Logger, status int, page string, data any) {
	if err := renderer.Render(w, status, page, data); err != nil {
		if logg != nil {
			logg.Error(r.Context(), "render."+page, err)
		}
		http.Error(w, "Something went wrong on our side. Please try again.", http.StatusInternalServerError)
	}
}

// renderErrorPage shows the generic error page with the typed error's public
// message.
func renderErrorPage(w http.ResponseWriter, r *http.Request, renderer *web.Renderer, logg *logger.Logger, err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	if logg != nil {
		logg.Error(r.Context(), "page.error", err)
	}
	meta := pkgerrors.MetadataFor(typed.Code())
	msg := meta.PublicMessage
	if m := typed.Message(); m != "" && meta.DetailsAllowed {
		msg = m
	}
	renderPage(w, r, renderer, logg, meta.HTTPStatus, "error", map[string]any{
		"Message": msg,
	})
}

// publicMessage extracts a message safe to show a visitor.
func publicMessage(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return pkgerrors.MetadataFor(pkgerrors.CodeInternal).PublicMessage
	}
	meta := pkgerrors.MetadataFor(typed.Code())
	if typed.Message() != "" && meta.DetailsAllowed {
		return typed.Message()
	}
	return meta.PublicMessage
}

// isUnauthorized reports whether the upstream rejected our stored token.
func isUnauthorized(err error) bool {
	typed := pkgerrors.As(err)
	return typed != nil && typed.Code() == pkgerrors.CodeUnauthorized
}

// isLocked reports whether the upstream flagged the account as licence
// locked.
func isLocked(err error) bool {
	typed := pkgerrors.As(err)
	return typed != nil && typed.Code() == pkgerrors.CodeLocked
}

// expireAndRedirect wipes the role's stored credentials and bounces the
// browser to the role's login page. Used when the upstream answers 401 for a
// token we still had on file.
func expireAndRedirect(w http.ResponseWriter, r *http.Request, store session.Store, role enums.Role, loginPath string, logg *logger.Logger) {
	ctx := r.Context()
	if sid := middleware.SessionIDFromContext(ctx); sid != "" {
		if err := store.Clear(ctx, sid, role); err != nil && logg != nil {
			logg.Error(ctx, "session.expire", err)
		}
	}
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}
