package middleware

import (
	"net/http"
	"time"

	"github.com/agrovia/agroexport-web/api/responses"
	pkgerrors "github.com/agrovia/agroexport-web/pkg/errors"
	"github.com/agrovia/agroexport-web/pkg/logger"
	"github.com/agrovia/agroexport-web/pkg/redis"
)

// FormTokenField is the hidden input carrying the one-shot submit token.
const FormTokenField = "form_token"

// SubmitGuard makes form POSTs one-shot. Each rendered form embeds a fresh
// token; the first submit claims it with SetNX and any replay of the same
// token, from a double click or a browser resubmit, is turned away before
// the upstream order is created. Requests without a token pass through.
func SubmitGuard(store redis.SubmitGuardStore, ttl time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			token := r.PostFormValue(FormTokenField)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			claimed, err := store.SetNX(ctx, store.SubmitGuardKey(token), 1, ttl)
			if err != nil {
				// The guard is best-effort: a Redis outage should not
				// block order intake.
				if logg != nil {
					logg.Error(ctx, "submit_guard.claim", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			if !claimed {
				if logg != nil {
					logg.Warn(ctx, "submit_guard.duplicate")
				}
				if wantsJSON(r) {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeConflict, "this form was already submitted"))
					return
				}
				target := r.Referer()
				if target == "" {
					target = r.URL.Path
				}
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
