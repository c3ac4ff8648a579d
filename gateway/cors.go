package gateway

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

func corsOptions(allowedOrigins []string) cors.Options {
	return cors.Options{
		AllowOriginFunc: allowedOrigin(allowedOrigins),
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"*"},
		AllowCredentials: false,
	}
}

// allowedOrigin denies every origin when the list is empty and accepts every
// origin when it contains "*". Origins match with or without their scheme.
func allowedOrigin(allowedOrigins []string) func(origin string) bool {
	trimScheme := func(origin string) string {
		return strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://")
	}
	return func(origin string) bool {
		for _, allowed := range allowedOrigins {
			if allowed == "*" || allowed == origin || trimScheme(allowed) == trimScheme(origin) {
				return true
			}
		}
		return false
	}
}
