package events

import (
	"context"

	"go.uber.org/zap"
)

// Sink receives lifecycle events from the consumers.
type Sink interface {
	LinkCreated(ctx context.Context, event *LinkCreated) error
	ExpiredLinkHit(ctx context.Context, event *ExpiredLinkHit) error
}

// LogSink writes every event to a zap logger as an audit trail.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a sink that logs events.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) LinkCreated(_ context.Context, event *LinkCreated) error {
	s.logger.Info("link created",
		zap.String("code", event.Code),
		zap.String("destinationHash", event.DestinationHash),
		zap.Time("createdAt", event.CreatedAt),
		zap.Time("expiresAt", event.ExpiresAt),
	)

	return nil
}

func (s *LogSink) ExpiredLinkHit(_ context.Context, event *ExpiredLinkHit) error {
	s.logger.Info("expired link hit",
		zap.String("code", event.Code),
		zap.Time("detectedAt", event.DetectedAt),
	)

	return nil
}

var _ Sink = (*LogSink)(nil)
