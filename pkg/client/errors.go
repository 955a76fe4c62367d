package client

import "errors"

// ErrSessionExpired is returned after a failed token refresh; the token
// store has been cleared and the OnSessionExpired hook (the headless
// equivalent of the login redirect) has run.
var ErrSessionExpired = errors.New("client: session expired")

// APIError is the normalized shape of every request failure. Responses
// without a structured body fall back to the defaults below.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Status  int    `json:"status"`
}

func (e *APIError) Error() string { return e.Message }

func unknownError() *APIError {
	return &APIError{
		Message: "An unexpected error occurred",
		Code:    "UNKNOWN_ERROR",
		Status:  500,
	}
}
