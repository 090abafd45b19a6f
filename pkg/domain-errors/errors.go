// Package domainerrors defines the coded error type shared by services and
// transport. Services attach a code; transport translates codes to HTTP
// statuses without inspecting error text.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code identifies a class of failure in caller-facing vocabulary.
type Code string

const (
	CodeBadRequest Code = "bad_request"
	CodeNotFound   Code = "not_found"
	CodeConflict   Code = "conflict"
	CodeInternal   Code = "internal_error"
)

// DomainError carries a code plus a human-readable description.
type DomainError struct {
	Code        Code
	Description string
}

func (e DomainError) Error() string {
	if e.Description == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Description
}

// New builds a DomainError with the given code and description.
func New(code Code, description string) DomainError {
	return DomainError{Code: code, Description: description}
}

// Is reports whether err is a DomainError with the given code.
func Is(err error, code Code) bool {
	var de DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ToHTTPStatus maps an error code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
