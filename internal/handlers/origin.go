package handlers

import "context"

type requestOriginKey struct{}

// RequestOrigin is the externally visible scheme and host of the current request.
type RequestOrigin struct {
	Scheme string
	Host   string
}

// BaseURL returns scheme://host, or "" when the host is unknown.
func (o RequestOrigin) BaseURL() string {
	if o.Host == "" {
		return ""
	}

	scheme := o.Scheme
	if scheme == "" {
		scheme = "http"
	}

	return scheme + "://" + o.Host
}

// ContextWithOrigin adds the request origin to context.
func ContextWithOrigin(ctx context.Context, origin RequestOrigin) context.Context {
	return context.WithValue(ctx, requestOriginKey{}, origin)
}

// OriginFromContext extracts the request origin from context.
func OriginFromContext(ctx context.Context) RequestOrigin {
	if v, ok := ctx.Value(requestOriginKey{}).(RequestOrigin); ok {
		return v
	}

	return RequestOrigin{}
}
