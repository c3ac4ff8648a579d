package fotolia

import (
	"errors"
	"fmt"
)

// Common errors. Every error returned by Dispatch or Download matches exactly
// one of these through errors.Is.
var (
	// ErrUnknownMethod indicates the method is not in the registry
	ErrUnknownMethod = errors.New("unknown or unsupported method")
	// ErrAuthRequired indicates a session token is required but none is held
	ErrAuthRequired = errors.New("needs a valid session ID")
	// ErrTransport indicates the exchange with the service failed
	ErrTransport = errors.New("transport failure")
	// ErrAPI indicates the service returned an error envelope
	ErrAPI = errors.New("fotolia API error")
	// ErrHTTPStatus indicates a non-200 response without an error envelope
	ErrHTTPStatus = errors.New("invalid response HTTP code")
	// ErrIO indicates the local download sink could not be used
	ErrIO = errors.New("local I/O failure")
)

// Kind classifies an Error.
type Kind int

const (
	KindUnknownMethod Kind = iota + 1
	KindAuthRequired
	KindTransport
	KindAPI
	KindHTTPStatus
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindUnknownMethod:
		return "unknown_method"
	case KindAuthRequired:
		return "auth_required"
	case KindTransport:
		return "transport"
	case KindAPI:
		return "api"
	case KindHTTPStatus:
		return "http_status"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is implemented only by the error types of this package, so a type
// switch over them is exhaustive.
type Error interface {
	error
	Kind() Kind
	sealed()
}

// KindOf returns the Kind of the first Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return 0
}

// UnknownMethodError is returned before any I/O when a method is not registered.
type UnknownMethodError struct {
	Method string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown or unsupported method: %s", e.Method)
}

func (e *UnknownMethodError) Unwrap() error { return ErrUnknownMethod }
func (e *UnknownMethodError) Kind() Kind    { return KindUnknownMethod }
func (e *UnknownMethodError) sealed()       {}

// AuthRequiredError is returned when a non-empty session is demanded.
type AuthRequiredError struct{}

func (e *AuthRequiredError) Error() string { return ErrAuthRequired.Error() }
func (e *AuthRequiredError) Unwrap() error { return ErrAuthRequired }
func (e *AuthRequiredError) Kind() Kind    { return KindAuthRequired }
func (e *AuthRequiredError) sealed()       {}

// TransportError covers timeouts, connection and DNS failures, unreadable
// bodies and responses without a content type.
type TransportError struct {
	URL    string
	Reason string
	Err    error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil && e.URL != "":
		return fmt.Sprintf("failed to reach URL %q: %v", e.URL, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	default:
		return fmt.Sprintf("invalid response, %s", e.Reason)
	}
}

func (e *TransportError) Is(target error) bool { return target == ErrTransport }
func (e *TransportError) Unwrap() error        { return e.Err }
func (e *TransportError) Kind() Kind           { return KindTransport }
func (e *TransportError) sealed()              {}

// APIError is the error envelope returned by the service.
type APIError struct {
	Message string
	Code    int
	Status  int
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("fotolia API error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("fotolia API error: %s", e.Message)
}

func (e *APIError) Unwrap() error { return ErrAPI }
func (e *APIError) Kind() Kind    { return KindAPI }
func (e *APIError) sealed()       {}

// HTTPStatusError is a non-200 response that carried no error envelope.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("invalid response HTTP code: %d", e.StatusCode)
}

func (e *HTTPStatusError) Unwrap() error { return ErrHTTPStatus }
func (e *HTTPStatusError) Kind() Kind    { return KindHTTPStatus }
func (e *HTTPStatusError) sealed()       {}

// IsNotFound checks if the response was a 404
func (e *HTTPStatusError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the response indicates an authentication failure
func (e *HTTPStatusError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IOError is returned by the download path when the sink cannot be opened or
// written.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("cannot open %s for writing: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("write to download sink: %v", e.Err)
}

func (e *IOError) Is(target error) bool { return target == ErrIO }
func (e *IOError) Unwrap() error        { return e.Err }
func (e *IOError) Kind() Kind           { return KindIO }
func (e *IOError) sealed()              {}
