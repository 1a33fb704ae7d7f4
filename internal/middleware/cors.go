package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// CORS allows browser clients served from origins to call the API.
// origins is a comma separated list; "*" allows any origin.
func CORS(origins string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: splitOrigins(origins),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Location"},
		MaxAge:         300,
	})

	return c.Handler
}

func splitOrigins(origins string) []string {
	var out []string

	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}

	return out
}
