package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows the listed origins, or every origin when the list is empty.
func Cors(allowed []string) Middleware {
	options := cors.Options{
		AllowedOrigins: allowed,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders: []string{"*"},
	}
	if len(allowed) == 0 {
		options.AllowOriginFunc = func(string) bool { return true }
	}
	return cors.New(options).Handler
}
