package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows every origin, method and header so browser clients served from
// other hosts (the mobile web build in development) can call the API.
func CORS(next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
			http.MethodHead,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{HeaderRequestID},
		AllowCredentials: true,
	})
	return c.Handler(next)
}

// Chain wraps h with the standard middleware stack, outermost first:
// request id, logging, CORS.
func Chain(h http.Handler) http.Handler {
	return RequestID(Logging(CORS(h)))
}
