// Package httputil centralizes JSON response writing so handlers stay thin
// and error envelopes remain consistent across endpoints.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "carelink/pkg/domain-errors"
)

// WriteJSON encodes v with the given status. Encoding failures are swallowed;
// by then the status line has already been committed.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the JSON error envelope. Internal
// errors omit the description so infrastructure details never leak to callers.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeInternal
	description := ""

	var de dErrors.DomainError
	if errors.As(err, &de) {
		code = de.Code
		description = de.Description
	}

	body := map[string]string{"error": string(code)}
	if description != "" && code != dErrors.CodeInternal {
		body["error_description"] = description
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}
