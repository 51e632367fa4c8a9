package response

import (
	"encoding/json"
	"net/http"

	"github.com/voltkart/storefront/internal/errors"
)

// APIResponse is the wire envelope: {success, data} on success,
// {success:false, error} on failure.
type APIResponse struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
	Details []string `json:"details,omitempty"`
}

func WriteJson(w http.ResponseWriter, statusCode int, data any) error {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, data any) {
	WriteJson(w, statusCode, APIResponse{
		Success: true,
		Data:    data,
	})
}

func Error(w http.ResponseWriter, err error) {

	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	var details []string

	if appErr, ok := errors.IsAppError(err); ok {
		statusCode = appErr.StatusCode
		message = appErr.Message
		details = appErr.Details
	}

	WriteJson(w, statusCode, APIResponse{
		Success: false,
		Error:   message,
		Details: details,
	})
}
