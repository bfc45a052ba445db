package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DRSN-tech/match-engine/pkg/e"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrEmptyVectors):
		return http.StatusBadRequest, e.ErrEmptyVectors.Error()
	case errors.Is(err, e.ErrInvalidTopK):
		return http.StatusBadRequest, e.ErrInvalidTopK.Error()
	case errors.Is(err, e.ErrVectorDimensionWrong):
		return http.StatusBadRequest, e.ErrVectorDimensionWrong.Error()
	case errors.Is(err, e.ErrNoAssets):
		return http.StatusBadRequest, e.ErrNoAssets.Error()
	case errors.Is(err, e.ErrUnsupportedKind):
		return http.StatusBadRequest, e.ErrUnsupportedKind.Error()
	case errors.Is(err, e.ErrInvalidTimestamp):
		return http.StatusBadRequest, e.ErrInvalidTimestamp.Error()
	case errors.Is(err, e.ErrResourceExhausted):
		return http.StatusServiceUnavailable, e.ErrResourceExhausted.Error()
	case errors.Is(err, e.ErrIndexUnavailable):
		return http.StatusServiceUnavailable, e.ErrIndexUnavailable.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
