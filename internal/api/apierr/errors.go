package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mfreeman/rosterhub/internal/model"
	"github.com/mfreeman/rosterhub/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeTeamNotFound       = "TEAM_NOT_FOUND"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeRosterNotFound     = "ROSTER_NOT_FOUND"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeJerseyTaken        = "JERSEY_TAKEN"
	CodeTeamInUse          = "TEAM_IN_USE"
	CodeAlreadyOnRoster    = "ALREADY_ON_ROSTER"
	CodeNotOnRoster        = "NOT_ON_ROSTER"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrTeamNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTeamNotFound, "Team not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrRosterNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRosterNotFound, "Roster not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrJerseyTaken):
		return &httpError{http.StatusConflict, APIError{CodeJerseyTaken, err.Error()}}
	case errors.Is(err, model.ErrTeamInUse):
		return &httpError{http.StatusConflict, APIError{CodeTeamInUse, err.Error()}}
	case errors.Is(err, model.ErrAlreadyOnRoster):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyOnRoster, err.Error()}}
	case errors.Is(err, model.ErrNotOnRoster):
		return &httpError{http.StatusConflict, APIError{CodeNotOnRoster, err.Error()}}

	// Validation failures carry their message verbatim so clients can
	// surface them to the user
	case errors.Is(err, model.ErrMissingField),
		errors.Is(err, model.ErrMissingTeam),
		errors.Is(err, model.ErrInvalidSport),
		errors.Is(err, model.ErrInvalidStatus),
		errors.Is(err, model.ErrInvalidRosterType),
		errors.Is(err, model.ErrInvalidRole),
		errors.Is(err, model.ErrJerseyOutOfRange),
		errors.Is(err, model.ErrScoreRequiresCompletion),
		errors.Is(err, model.ErrCompletionRequiresScore):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, err.Error()}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid email or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrEmailExists):
		return &httpError{http.StatusConflict, APIError{CodeEmailExists, "Email already registered"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error for insufficient role
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Insufficient permissions"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
