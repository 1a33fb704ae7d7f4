package shortener

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// MaxURLLength is the longest destination accepted by ValidateURL.
const MaxURLLength = 2048

// ValidateURL checks that raw is a syntactically valid absolute URL with a host.
// No network access is performed.
func ValidateURL(raw string) error {
	if raw == "" || len(raw) > MaxURLLength {
		return ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}

	if !u.IsAbs() || u.Host == "" {
		return ErrInvalidURL
	}

	return nil
}

// NormalizeURL normalizes a URL for consistent hashing.
// - Lowercases the scheme and host
// - Removes default ports (80 for http, 443 for https)
// - Removes trailing slashes from path (unless path is just "/")
// - Removes the fragment
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	switch {
	case u.Scheme == "http" && strings.HasSuffix(u.Host, ":80"):
		u.Host = strings.TrimSuffix(u.Host, ":80")
	case u.Scheme == "https" && strings.HasSuffix(u.Host, ":443"):
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	if len(u.Path) > 1 && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	u.Fragment = ""

	return u.String(), nil
}

// HashURL returns the hex SHA-256 of the normalized form of rawURL. Unparseable
// input is hashed as-is.
func HashURL(rawURL string) string {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		normalized = rawURL
	}

	h := sha256.Sum256([]byte(normalized))

	return hex.EncodeToString(h[:])
}
