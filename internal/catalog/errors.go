package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a non-2xx response from the data service.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("data service returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("data service returned %d", e.Code)
}

// Temporary reports whether the status is worth retrying.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// UnavailableError indicates the data service could not be reached.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data service unavailable: %v", e.Err)
	}
	return "data service unavailable"
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// InvalidResponseError indicates the data service answered with a body that
// does not match the expected envelope.
type InvalidResponseError struct {
	Body []byte
	Err  error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid data service response: %v", e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// ProviderMessage extracts the human-readable message the data service
// attached to err, if any.
func ProviderMessage(err error) (string, bool) {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message, true
	}
	return "", false
}
