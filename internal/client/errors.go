package client

import (
	"fmt"

	"github.com/dm/mistinfo/internal/model"
)

// StatusError is returned when the API answers with anything other than 200.
type StatusError struct {
	Kind       model.ResourceKind
	StatusCode int
	Body       string // truncated response body, for diagnostics
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("failed to get %s: status code %d", e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("failed to get %s: status code %d: %s", e.Kind, e.StatusCode, e.Body)
}

// DecodeError is returned when a 200 response body is not valid JSON.
type DecodeError struct {
	Kind model.ResourceKind
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
