package handler

import (
	"encoding/json"
	"net/http"

	"github.com/trustworkers/api/internal/model"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteSuccess writes {"success":true,"message":...} with fields merged into
// the top level object
func WriteSuccess(w http.ResponseWriter, status int, message string, fields map[string]interface{}) {
	body := make(map[string]interface{}, len(fields)+2)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true
	body["message"] = message
	WriteJSON(w, status, body)
}

// WriteError writes the failure envelope
func WriteError(w http.ResponseWriter, err *model.APIError) {
	err.WriteJSON(w)
}

// DecodeJSON decodes a JSON request body into the given struct. Unknown
// fields are ignored so older clients keep working.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// authFields flattens an auth response into envelope fields
func authFields(resp *model.AuthResponse) map[string]interface{} {
	return map[string]interface{}{
		"token":      resp.Token,
		"token_type": resp.TokenType,
		"expires_in": resp.ExpiresIn,
		"user":       resp.User,
	}
}
