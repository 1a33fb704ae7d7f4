package middleware

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlinks/internal/handlers"
)

// RequestOrigin is a middleware that records the externally visible scheme and
// host of the request, honouring reverse proxy headers.
func RequestOrigin(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		origin := handlers.RequestOrigin{
			Scheme: extractScheme(ctx),
			Host:   extractHost(ctx),
		}

		newCtx := handlers.ContextWithOrigin(ctx.Context(), origin)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}

func extractScheme(ctx huma.Context) string {
	if proto := firstValue(ctx.Header("X-Forwarded-Proto")); proto != "" {
		return strings.ToLower(proto)
	}

	if ctx.TLS() != nil {
		return "https"
	}

	return "http"
}

func extractHost(ctx huma.Context) string {
	if host := firstValue(ctx.Header("X-Forwarded-Host")); host != "" {
		return host
	}

	return ctx.Host()
}

// firstValue returns the first entry of a comma separated header added by a proxy chain.
func firstValue(header string) string {
	if idx := strings.Index(header, ","); idx != -1 {
		return strings.TrimSpace(header[:idx])
	}

	return strings.TrimSpace(header)
}
