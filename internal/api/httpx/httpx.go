package httpx

import (
	"encoding/json"
	"net/http"
)

// APIError is the wire shape of every error response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Status  int    `json:"status"`
}

func (e APIError) Error() string { return e.Message }

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string) {
	WriteJSON(w, status, APIError{
		Message: msg,
		Code:    code,
		Status:  status,
	})
}
