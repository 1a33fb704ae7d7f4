package shortener

import "time"

// Code represents a short URL code.
type Code string

// ShortURL represents a shortened URL entity.
type ShortURL struct {
	Code        Code
	OriginalURL string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Expired reports whether the record is dead at now. A record is still live
// at the exact instant of ExpiresAt.
func (s *ShortURL) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Clone returns a copy that shares no state with s.
func (s *ShortURL) Clone() *ShortURL {
	c := *s

	return &c
}
