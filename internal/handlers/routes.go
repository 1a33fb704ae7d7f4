package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers all URL shortener routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler) {
	// POST /api/shorten - Create short URL
	huma.Register(api, huma.Operation{
		OperationID:   "create-short-url",
		Method:        http.MethodPost,
		Path:          "/api/shorten",
		Summary:       "Create short URL",
		Description:   "Creates a short URL that redirects to the given URL until it expires.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusOK,
	}, urlHandler.CreateShortURL)

	// POST /api/shorturls - Alias kept for older clients
	huma.Register(api, huma.Operation{
		OperationID:   "create-short-url-alias",
		Method:        http.MethodPost,
		Path:          "/api/shorturls",
		Summary:       "Create short URL (alias)",
		Description:   "Same as POST /api/shorten.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusOK,
	}, urlHandler.CreateShortURL)

	// GET /{code} - Redirect to original URL
	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the original URL associated with the short code.",
		Tags:        []string{"URLs"},
		Errors:      []int{http.StatusNotFound, http.StatusGone},
	}, urlHandler.RedirectToURL)
}
