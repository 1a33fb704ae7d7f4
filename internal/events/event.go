// Package events defines the short link lifecycle stream.
package events

import (
	"time"

	"github.com/serroba/shortlinks/internal/shortener"
)

const (
	TopicLinkCreated    = "link.created"
	TopicExpiredLinkHit = "link.expired_hit"
)

// LinkCreated is emitted after a short link is stored.
type LinkCreated struct {
	Code            string    `json:"code"`
	DestinationHash string    `json:"destinationHash"`
	CreatedAt       time.Time `json:"createdAt"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// NewLinkCreated builds the event for a freshly stored record. The destination
// is identified by its hash only.
func NewLinkCreated(shortURL *shortener.ShortURL) *LinkCreated {
	return &LinkCreated{
		Code:            string(shortURL.Code),
		DestinationHash: shortener.HashURL(shortURL.OriginalURL),
		CreatedAt:       shortURL.CreatedAt,
		ExpiresAt:       shortURL.ExpiresAt,
	}
}

// ExpiredLinkHit is emitted on every resolve that hits a link past its expiry.
// It is not deduplicated; one record can produce many hits.
type ExpiredLinkHit struct {
	Code       string    `json:"code"`
	DetectedAt time.Time `json:"detectedAt"`
}
