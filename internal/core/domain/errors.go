package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// Failure taxonomy. Every error returned by the API client wraps exactly one of these.
var (
	ErrAuth             = errors.New("authentication failed")
	ErrValidation       = errors.New("validation failed")
	ErrNetwork          = errors.New("network error")
	ErrForbidden        = errors.New("access forbidden")
	ErrNotFound         = errors.New("not found")
	ErrServer           = errors.New("server error")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// APIError is a failed backend call. Kind is one of the taxonomy sentinels;
// Status and Body are zero for transport failures.
type APIError struct {
	Op     string
	Kind   error
	Status int
	Body   []byte
	Err    error
}

func (e *APIError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: %v (status %d): %s", e.Op, e.Kind, e.Status, e.Message())
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
}

func (e *APIError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Message extracts a human-readable message from the response body.
// The backend answers either {"error": "..."}, {"detail": "..."} or a
// field → messages map for serializer errors.
func (e *APIError) Message() string {
	if len(e.Body) > 0 {
		var envelope map[string]any
		if err := json.Unmarshal(e.Body, &envelope); err == nil {
			for _, key := range []string{"error", "detail", "message"} {
				if s, ok := envelope[key].(string); ok && s != "" {
					return s
				}
			}
			if msgs := fieldMessages(envelope); msgs != "" {
				return msgs
			}
		}
	}
	if e.Status != 0 {
		return http.StatusText(e.Status)
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "request failed"
}

func fieldMessages(envelope map[string]any) string {
	var parts []string
	for field, v := range envelope {
		list, ok := v.([]any)
		if !ok {
			continue
		}
		for _, item := range list {
			if s, ok := item.(string); ok {
				parts = append(parts, field+": "+s)
			}
		}
	}
	if len(parts) == 0 {
		return ""
	}
	// map iteration order is random
	slices.Sort(parts)
	return strings.Join(parts, "; ")
}

// UserMessage returns the text shown in a notification for err.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return err.Error()
}

// NewValidationError builds a client-side validation failure.
func NewValidationError(op, msg string) error {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return &APIError{Op: op, Kind: ErrValidation, Body: body}
}
