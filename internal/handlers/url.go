package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlinks/internal/events"
	"github.com/serroba/shortlinks/internal/metrics"
	"github.com/serroba/shortlinks/internal/shortener"
	"go.uber.org/zap"
)

const fallbackBaseURL = "http://localhost"

// URLHandler handles URL shortening operations.
type URLHandler struct {
	service    *shortener.Service
	baseURL    string
	publishers events.Publishers
	metrics    *metrics.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewURLHandler creates a new URL handler. An empty baseURL means short URLs
// are built from the origin of each request.
func NewURLHandler(
	service *shortener.Service,
	baseURL string,
	publishers events.Publishers,
	m *metrics.Metrics,
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		service:    service,
		baseURL:    strings.TrimRight(baseURL, "/"),
		publishers: publishers,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

func (h *URLHandler) CreateShortURL(ctx context.Context, req *CreateShortURLRequest) (*CreateShortURLResponse, error) {
	if req.Body.URL == nil {
		return nil, huma.Error400BadRequest("url is required")
	}

	shortURL, err := h.service.Shorten(ctx, *req.Body.URL)
	if err != nil {
		return nil, h.shortenError(err)
	}

	h.metrics.Shortened.Inc()

	if err := h.publishers.LinkCreated(ctx, events.NewLinkCreated(shortURL)); err != nil {
		h.logger.Error("failed to publish lifecycle event",
			zap.String("topic", events.TopicLinkCreated),
			zap.String("code", string(shortURL.Code)),
			zap.Error(err),
		)
	}

	fullShortURL := h.resolveBaseURL(ctx) + "/" + string(shortURL.Code)

	resp := &CreateShortURLResponse{}
	resp.Headers.Location = fullShortURL
	resp.Body.Code = string(shortURL.Code)
	resp.Body.ShortURL = fullShortURL
	resp.Body.OriginalURL = shortURL.OriginalURL
	resp.Body.ExpiresAt = shortURL.ExpiresAt

	return resp, nil
}

func (h *URLHandler) shortenError(err error) error {
	switch {
	case errors.Is(err, shortener.ErrInvalidURL):
		return huma.Error400BadRequest("url must be an absolute URL with a host")
	case errors.Is(err, shortener.ErrDuplicateKey):
		h.anomaly(metrics.AnomalyDuplicateKey, err)
	case errors.Is(err, shortener.ErrAllocationExhausted):
		h.anomaly(metrics.AnomalyAllocationExhausted, err)
	default:
		h.logger.Error("failed to shorten url", zap.Error(err))
	}

	return huma.Error500InternalServerError("failed to save url")
}

// anomaly records a fault that a healthy code space should never produce.
func (h *URLHandler) anomaly(kind string, err error) {
	h.metrics.Anomalies.WithLabelValues(kind).Inc()
	h.logger.Error("short code allocation anomaly",
		zap.String("kind", kind),
		zap.Error(err),
	)
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	code := shortener.Code(req.Code)

	originalURL, err := h.service.Resolve(ctx, code)
	if err != nil {
		return nil, h.resolveError(ctx, code, err)
	}

	h.metrics.Resolved.WithLabelValues(metrics.OutcomeRedirected).Inc()

	resp := &RedirectResponse{
		Status: http.StatusFound,
	}
	resp.Headers.Location = originalURL

	return resp, nil
}

func (h *URLHandler) resolveError(ctx context.Context, code shortener.Code, err error) error {
	switch {
	case errors.Is(err, shortener.ErrNotFound):
		h.metrics.Resolved.WithLabelValues(metrics.OutcomeNotFound).Inc()

		return huma.Error404NotFound("short url not found")
	case errors.Is(err, shortener.ErrExpired):
		h.metrics.Resolved.WithLabelValues(metrics.OutcomeExpired).Inc()

		event := &events.ExpiredLinkHit{Code: string(code), DetectedAt: h.now()}
		if err := h.publishers.ExpiredLinkHit(ctx, event); err != nil {
			h.logger.Error("failed to publish lifecycle event",
				zap.String("topic", events.TopicExpiredLinkHit),
				zap.String("code", event.Code),
				zap.Error(err),
			)
		}

		return huma.Error410Gone("short url expired")
	default:
		h.metrics.Resolved.WithLabelValues(metrics.OutcomeError).Inc()
		h.logger.Error("failed to get url", zap.String("code", string(code)), zap.Error(err))

		return huma.Error500InternalServerError("failed to get url")
	}
}

func (h *URLHandler) resolveBaseURL(ctx context.Context) string {
	if h.baseURL != "" {
		return h.baseURL
	}

	if base := OriginFromContext(ctx).BaseURL(); base != "" {
		return base
	}

	return fallbackBaseURL
}
