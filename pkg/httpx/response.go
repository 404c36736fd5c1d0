package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ErrorResponse is the wire shape of every error body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a JSON error body with the given status code.
func WriteError(w http.ResponseWriter, code int, detail string) {
	WriteJSON(w, code, ErrorResponse{Detail: detail})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// BearerChallenge builds an RFC 6750 WWW-Authenticate value. When the route
// declares scopes the challenge is scope-qualified, e.g.
// `Bearer scope="me rates"`; otherwise plain `Bearer`.
func BearerChallenge(scopes []string) string {
	if len(scopes) == 0 {
		return "Bearer"
	}
	return `Bearer scope="` + strings.Join(scopes, " ") + `"`
}

// WriteBearerError rejects a request with a bearer challenge header and a
// JSON error body.
func WriteBearerError(w http.ResponseWriter, code int, scopes []string, detail string) {
	w.Header().Set("WWW-Authenticate", BearerChallenge(scopes))
	WriteError(w, code, detail)
}

// ParseSpaceDelimitedFields splits a space-delimited string into fields.
// This is useful for parsing space-separated lists like scopes.
// Returns nil if the input string is empty or contains only whitespace.
func ParseSpaceDelimitedFields(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}
