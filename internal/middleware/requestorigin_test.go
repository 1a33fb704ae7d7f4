package middleware_test

import (
	"context"
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/serroba/shortlinks/internal/handlers"
	"github.com/serroba/shortlinks/internal/middleware"
	"github.com/stretchr/testify/assert"
)

type testOutput struct {
	Body string `json:"body"`
}

func setupTestAPI(t *testing.T) (*chi.Mux, huma.API) {
	t.Helper()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(middleware.RequestOrigin(api))

	return router, api
}

func captureOrigin(t *testing.T, req *http.Request) handlers.RequestOrigin {
	t.Helper()

	router, api := setupTestAPI(t)
	originChan := make(chan handlers.RequestOrigin, 1)

	huma.Get(api, "/test", func(ctx context.Context, _ *struct{}) (*testOutput, error) {
		originChan <- handlers.OriginFromContext(ctx)

		return &testOutput{Body: "ok"}, nil
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	return <-originChan
}

func TestRequestOrigin(t *testing.T) {
	t.Run("uses request host over plain http", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://sho.rt:8888/test", nil)

		origin := captureOrigin(t, req)

		assert.Equal(t, "http", origin.Scheme)
		assert.Equal(t, "sho.rt:8888", origin.Host)
		assert.Equal(t, "http://sho.rt:8888", origin.BaseURL())
	})

	t.Run("detects tls", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "https://sho.rt/test", nil)
		req.TLS = &tls.ConnectionState{}

		origin := captureOrigin(t, req)

		assert.Equal(t, "https://sho.rt", origin.BaseURL())
	})

	t.Run("honours forwarded headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://internal:8080/test", nil)
		req.Header.Set("X-Forwarded-Proto", "HTTPS")
		req.Header.Set("X-Forwarded-Host", "links.example.com, proxy.internal")

		origin := captureOrigin(t, req)

		assert.Equal(t, "https://links.example.com", origin.BaseURL())
	})
}

func TestRequestOrigin_BaseURL(t *testing.T) {
	assert.Empty(t, handlers.RequestOrigin{}.BaseURL())
	assert.Equal(t, "http://host", handlers.RequestOrigin{Host: "host"}.BaseURL())
}

func TestOriginFromContext_Missing(t *testing.T) {
	assert.Equal(t, handlers.RequestOrigin{}, handlers.OriginFromContext(context.Background()))
}
