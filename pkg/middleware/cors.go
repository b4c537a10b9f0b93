package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the browser front end to call the API. With no configured
// origins every origin is allowed without credentials.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := allowedOrigins
	credentials := true
	if len(origins) == 0 {
		origins = []string{"*"}
		credentials = false
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", GuestHeader},
		ExposedHeaders:   []string{GuestHeader},
		AllowCredentials: credentials,
		MaxAge:           300,
	})
}
