package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/lunarbyte/tradevalues/internal/domain"
)

// responseBufferPool recycles encode buffers across requests; most
// responses here fit well under the initial capacity.
var responseBufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// ValidationErrorResponse carries per-field validation failures
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := responseBufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		responseBufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a domain error to its HTTP shape and writes it
func respondServiceError(w http.ResponseWriter, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}

// mapServiceErrorToUserMessage maps domain errors to user-facing HTTP
// status codes and messages. Unknown errors collapse to a 500 with a
// generic message so internals never leak.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound, ErrMsgCategoryNotFoundError
	case errors.Is(err, domain.ErrInventoryRowNotFound):
		return http.StatusNotFound, ErrMsgInventoryRowError
	case errors.Is(err, domain.ErrRequestNotFound):
		return http.StatusNotFound, ErrMsgRequestNotFoundError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError

	case errors.Is(err, domain.ErrRequestNotPending):
		return http.StatusConflict, ErrMsgRequestSettledError
	case errors.Is(err, domain.ErrCategoryInUse):
		return http.StatusConflict, ErrMsgCategoryInUseError
	case errors.Is(err, domain.ErrNameTaken):
		return http.StatusConflict, ErrMsgNameTakenError
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, ErrMsgUsernameTakenError
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, ErrMsgEmailTakenError

	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrMsgBadCredentialsError
	case errors.Is(err, domain.ErrAuthRequired):
		return http.StatusUnauthorized, ErrMsgAuthRequiredError
	case errors.Is(err, domain.ErrAccountInactive):
		return http.StatusForbidden, ErrMsgInactiveAccountError
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, ErrMsgForbiddenError

	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusBadRequest, ErrMsgBadTokenError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
