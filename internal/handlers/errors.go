package handlers

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// ErrorResponse is the error body of every API response. Error repeats the
// message under the key browser clients read.
type ErrorResponse struct {
	Status  int                 `json:"status"`
	Title   string              `json:"title"`
	Message string              `json:"error"`
	Errors  []*huma.ErrorDetail `json:"errors,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

func (e *ErrorResponse) GetStatus() int {
	return e.Status
}

// NewError builds an ErrorResponse. Request bodies that fail schema
// validation are reported as 400 like any other invalid input.
func NewError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	details := make([]*huma.ErrorDetail, 0, len(errs))

	for _, err := range errs {
		if err == nil {
			continue
		}

		var detailer huma.ErrorDetailer
		if errors.As(err, &detailer) {
			details = append(details, detailer.ErrorDetail())

			continue
		}

		details = append(details, &huma.ErrorDetail{Message: err.Error()})
	}

	return &ErrorResponse{
		Status:  status,
		Title:   http.StatusText(status),
		Message: msg,
		Errors:  details,
	}
}

// UseErrorModel installs NewError as huma's error constructor.
func UseErrorModel() {
	huma.NewError = NewError
}
