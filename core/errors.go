package core

import "github.com/pkg/errors"

// FieldError names one rejected input field and why it was rejected.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is the invalid-input error kind: the request was understood
// but one or more fields failed a domain rule that the struct tags cannot
// express. The API layer renders Fields as a field -> message map, same shape
// as translated validator errors.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

// NewInvalidInputError flags a single rejected field.
func NewInvalidInputError(field, msg string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Error: msg}}}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return "invalid input"
	}
	return err.Err.Error()
}

// FieldMap flattens Fields for serialization.
func (err ValidationError) FieldMap() map[string]string {
	flds := make(map[string]string, len(err.Fields))
	for _, fErr := range err.Fields {
		flds[fErr.Field] = fErr.Error
	}
	return flds
}

// shutdownError reports an unrecoverable condition. The API layer reacts by
// draining in-flight requests and stopping the server.
type shutdownError struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdownError{message: msg}
}

func (s shutdownError) Error() string {
	return s.message
}

// IsShutdown checks whether err, at any wrap depth, asks for a shutdown.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdownError)
	return ok
}
