package httpx

import (
	"errors"
	"net/http"

	"github.com/jobpilot/jobreview/internal/domain/card"
	"github.com/jobpilot/jobreview/internal/domain/listing"
	apperrors "github.com/jobpilot/jobreview/internal/errors"
	"github.com/jobpilot/jobreview/internal/service"
)

// DetermineErrorStatus maps an error to the HTTP status a handler should answer with.
func DetermineErrorStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, listing.ErrLoadInProgress), errors.Is(err, card.ErrDecisionInFlight):
		return http.StatusConflict
	case errors.Is(err, listing.ErrPageOutOfRange), errors.Is(err, service.ErrSessionRequired):
		return http.StatusBadRequest
	}

	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeThrottled:
		return http.StatusTooManyRequests
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorCodeFor returns the short machine-readable code for JSON error bodies.
func errorCodeFor(err error) string {
	if code := apperrors.GetCode(err); code != "" {
		return string(code)
	}
	switch DetermineErrorStatus(err) {
	case http.StatusConflict:
		return "conflict"
	case http.StatusBadRequest:
		return "bad_request"
	default:
		return "internal"
	}
}

// WriteAPIError writes err as a JSON error with its mapped status.
func WriteAPIError(w http.ResponseWriter, err error) {
	status := DetermineErrorStatus(err)
	if status >= http.StatusInternalServerError {
		// Do not leak store details on server-side failures.
		WriteError(w, ErrorParams{Code: status, ErrCode: errorCodeFor(err)})
		return
	}
	WriteError(w, ErrorParams{Code: status, ErrCode: errorCodeFor(err), Err: err})
}
