package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns middleware with permissive defaults suitable for a mobile-app
// backend. The app itself talks to the API natively; the permissive origin
// list exists for the web-based QR fallback and the docs UI.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	})
}
