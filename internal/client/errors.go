package client

import "fmt"

// Kind classifies a gateway failure
type Kind string

const (
	// KindNetwork means no response was received at all
	KindNetwork Kind = "network"
	// KindUnauthorized is a 401; the session is no longer valid
	KindUnauthorized Kind = "unauthorized"
	// KindForbidden is a 403; the session is valid but lacks permission
	KindForbidden Kind = "forbidden"
	// KindNotFound is a 404; the entity no longer exists
	KindNotFound Kind = "not_found"
	// KindValidation is any other 4xx with a structured message
	KindValidation Kind = "validation"
	// KindServerError is a 5xx
	KindServerError Kind = "server_error"
)

// Error is a classified API failure. Message carries the server's
// structured message verbatim for Validation errors.
type Error struct {
	Kind    Kind
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case KindNetwork:
		return "network error"
	case KindUnauthorized:
		return "authentication required"
	case KindForbidden:
		return "permission denied"
	case KindNotFound:
		return "not found"
	case KindServerError:
		return "server error"
	default:
		return fmt.Sprintf("request failed (%s)", e.Kind)
	}
}

// IsKind reports whether err is a gateway error of the given kind
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !asError(err, &e) {
		return false
	}
	return e.Kind == kind
}
