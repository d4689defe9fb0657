package go_payhost

import (
	"errors"
	"fmt"
)

// ValidationError indicates that a request is missing required fields or contains invalid data.
type ValidationError struct {
	Fields []FieldError
}

type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation error"
	}
	if len(e.Fields) == 1 {
		fe := e.Fields[0]
		if fe.Field == "" {
			return fmt.Sprintf("validation error: %s", fe.Message)
		}
		return fmt.Sprintf("validation error: %s: %s", fe.Field, fe.Message)
	}
	return fmt.Sprintf("validation error: %d fields", len(e.Fields))
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// IsValidationError checks whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConfigurationError indicates a credential required for the requested
// operation is missing (e.g. pre-authorization without a public key).
// Recoverable by reconfiguring the client.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	if e == nil || e.Message == "" {
		return "configuration error"
	}
	return "configuration error: " + e.Message
}

// EncryptionError indicates the merchant_auth payload could not be encrypted
// (malformed or absent public key). Not retryable without fixing configuration.
type EncryptionError struct {
	Err error
}

func (e *EncryptionError) Error() string {
	if e == nil || e.Err == nil {
		return "encryption error"
	}
	return "encryption error: " + e.Err.Error()
}

func (e *EncryptionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UnsupportedOperationError indicates an Execute call on a payload whose
// payment option returns a rendered page, without the WithAllowHTML opt-in.
// Use the payload-only path (and your own redirect) instead.
type UnsupportedOperationError struct {
	PaymentOption string
}

func (e *UnsupportedOperationError) Error() string {
	if e == nil {
		return "unsupported operation"
	}
	return fmt.Sprintf("unsupported operation: payment option %q returns a checkout page, not JSON; build the payload and redirect, or opt in with WithAllowHTML", e.PaymentOption)
}

// UnexpectedContentTypeError indicates a 2xx response that was HTML (or
// unparseable) when JSON was expected and WithAllowHTML was not given.
type UnexpectedContentTypeError struct {
	ContentType string
	Body        []byte
}

func (e *UnexpectedContentTypeError) Error() string {
	if e == nil {
		return "unexpected content type"
	}
	return fmt.Sprintf("unexpected content type: %q", e.ContentType)
}

// APIError represents a non-2xx response from the gateway.
//
// JSON is set when the response declared a JSON content type; Body always
// carries the raw bytes for caller-driven decisions (retry on 5xx etc).
type APIError struct {
	StatusCode int
	Status     string
	Body       []byte
	JSON       []byte
}

func (e *APIError) Error() string {
	if e == nil {
		return "payhost api error"
	}
	if len(e.Body) == 0 {
		return fmt.Sprintf("payhost api error: status %d", e.StatusCode)
	}
	b := e.Body
	if len(b) > 1024 {
		b = b[:1024]
	}
	return fmt.Sprintf("payhost api error: status %d: %s", e.StatusCode, string(b))
}
