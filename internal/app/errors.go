package app

import (
	"github.com/Guilhem-Bonnet/bgmi-go/internal/ports"
)

var (
	ErrNotFound = ports.ErrNotFound
	ErrLocked   = ports.ErrLocked
)

// Codes used by CodedError.
const (
	CodeInvalidParams = "invalid_params"
	CodeSourceHTTP    = "source_http"
	CodeSourceDecode  = "source_decode"
	CodeNetwork       = "network_error"
)

// CodedError porte un code d'erreur stable, renvoyé tel quel par l'API HTTP.
//
// Exemples de codes: invalid_params, source_http, source_decode, network_error.
type CodedError struct {
	Code    string
	Message string
	Err     error
}

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *CodedError) Unwrap() error { return e.Err }

func invalidParams(msg string) error {
	return &CodedError{Code: CodeInvalidParams, Message: msg}
}
