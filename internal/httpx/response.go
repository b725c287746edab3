// Package httpx writes the JSON response envelope used by every endpoint:
// {"status": "OK"|"ERROR", "data": ..., "message": ..., "count": ...}.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response shape.
type Envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// JSON writes an arbitrary payload with the given status code.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body, err := json.Marshal(payload)
	if err != nil {
		// best-effort error response; avoid writing partial JSON
		http.Error(w, `{"status":"ERROR","message":"encode error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

// OK writes a 200 envelope with data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Envelope{Status: "OK", Data: data})
}

// OKCount writes a 200 envelope with data and a count.
func OKCount(w http.ResponseWriter, data any, count int) {
	JSON(w, http.StatusOK, Envelope{Status: "OK", Data: data, Count: &count})
}

// Error writes an ERROR envelope with the given status code and message.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Envelope{Status: "ERROR", Message: msg})
}
