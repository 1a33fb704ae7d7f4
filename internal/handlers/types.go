package handlers

import "time"

// CreateShortURLRequest is the request body for creating a short URL.
// URL is optional at the schema level so that a missing or null value is
// reported as a bad request by the handler.
type CreateShortURLRequest struct {
	Body struct {
		URL *string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"url,omitempty" nullable:"true" required:"false"`
	}
}

// CreateShortURLResponse is the response for a successfully created short URL.
type CreateShortURLResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body struct {
		Code        string    `doc:"The short code"                 example:"aB3_x-9Z"                           json:"code"`
		ShortURL    string    `doc:"The full short URL"             example:"http://localhost:8888/aB3_x-9Z"     json:"shortUrl"`
		OriginalURL string    `doc:"The original URL"               example:"https://example.com/very/long/path" json:"originalUrl"`
		ExpiresAt   time.Time `doc:"When the short URL stops working" json:"expiresAt"`
	}
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"aB3_x-9Z" path:"code"`
}

// RedirectResponse sends the client on to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}
