package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/agrovia/agroexport-web/pkg/config"
)

var defaultCORSOrigins = []string{
	"http://localhost:8080", // local dev
	"http://localhost:3000", // legacy SPA shell during migration
}

// CORS returns middleware that applies the allowed origin policy. Origins
// come from configuration, falling back to the local dev set.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
