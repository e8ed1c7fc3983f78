package pkg

import (
	"fmt"
	"net/http"
	"strings"
)

// APIError is a denial or failure with a stable code and the HTTP status it
// maps to. Handlers pass these to Fail; anything else becomes INTERNAL_ERROR.
type APIError struct {
	Code    string
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

var (
	ErrUnauthenticated = &APIError{Code: "UNAUTHENTICATED", Status: http.StatusUnauthorized, Message: "authentication required"}
	ErrAccountInactive = &APIError{Code: "ACCOUNT_INACTIVE", Status: http.StatusForbidden, Message: "account is deactivated"}
	ErrHostRequired    = &APIError{Code: "HOST_ACCESS_REQUIRED", Status: http.StatusForbidden, Message: "host access required"}
	ErrHostPending     = &APIError{Code: "HOST_APPROVAL_PENDING", Status: http.StatusForbidden, Message: "host application pending admin approval"}
	ErrAdminRequired   = &APIError{Code: "ADMIN_REQUIRED", Status: http.StatusForbidden, Message: "admin access required"}

	ErrSelfRegistration   = &APIError{Code: "SELF_REGISTRATION_FORBIDDEN", Status: http.StatusForbidden, Message: "hosts cannot register for their own competition"}
	ErrAlreadyRegistered  = &APIError{Code: "ALREADY_REGISTERED", Status: http.StatusBadRequest, Message: "already registered"}
	ErrNotRegistered      = &APIError{Code: "NOT_REGISTERED", Status: http.StatusBadRequest, Message: "must register before submitting"}
	ErrAlreadySubmitted   = &APIError{Code: "ALREADY_SUBMITTED", Status: http.StatusBadRequest, Message: "submission already exists"}
	ErrTeamFull           = &APIError{Code: "TEAM_FULL", Status: http.StatusBadRequest, Message: "team is full"}
	ErrAlreadyMember      = &APIError{Code: "ALREADY_A_MEMBER", Status: http.StatusBadRequest, Message: "already a member of this team"}
	ErrSelfMentorship     = &APIError{Code: "SELF_MENTORSHIP_FORBIDDEN", Status: http.StatusBadRequest, Message: "cannot request mentorship from yourself"}
	ErrMentorshipInactive = &APIError{Code: "MENTORSHIP_NOT_ACTIVE", Status: http.StatusBadRequest, Message: "mentorship is not active"}
)

// NotFound covers both genuine misses and ownership mismatches on mutation,
// so a caller cannot probe for the existence of resources they do not own.
func NotFound(resource string) *APIError {
	return &APIError{Code: "NOT_FOUND", Status: http.StatusNotFound, Message: resource + " not found"}
}

func ValidationError(missing []string) *APIError {
	return &APIError{
		Code:    "VALIDATION_ERROR",
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
	}
}

func BadRequest(msg string) *APIError {
	return &APIError{Code: "VALIDATION_ERROR", Status: http.StatusBadRequest, Message: msg}
}
