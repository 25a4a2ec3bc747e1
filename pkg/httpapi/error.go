package httpapi

import (
	"encoding/json"
	"net/http"
)

// ErrorEnvelope is the JSON shape every API error response uses. Meta carries
// request-scoped extras such as the request id.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	envelope := &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	}
	return WriteJSON(w, status, envelope)
}
