package http

import (
	"errors"
	"net/http"
	"strings"

	"budget/internal/core"
	"budget/internal/query"
)

// sanitizeInput removes control characters other than tab and newlines and trims whitespace.
func sanitizeInput(s string) string {
	return stripControl(strings.TrimSpace(s))
}

// stripControl removes control characters other than tab and newlines.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// isValidationError reports whether err describes bad transaction fields.
func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidType) ||
		errors.Is(err, core.ErrEmptyCategory) ||
		errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidDate)
}

// isQueryError reports whether err describes bad list parameters.
func isQueryError(err error) bool {
	return errors.Is(err, query.ErrInvalidFilter) ||
		errors.Is(err, query.ErrInvalidSort) ||
		errors.Is(err, ErrInvalidLimit)
}

// errorResponse translates an error from parsing or from the ledger into a
// response. Storage failures are not described to the client.
func errorResponse(err error) *JSONResponseBuilder {
	switch {
	case errors.Is(err, ErrMalformedBody):
		return BadRequestError(err.Error())
	case isValidationError(err):
		return UnprocessableEntityError(err.Error())
	case isQueryError(err):
		return BadRequestError(err.Error())
	default:
		return InternalServerError(http.StatusText(http.StatusInternalServerError))
	}
}
