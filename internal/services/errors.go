// Package services holds the business-rule layer between the HTTP handlers
// and the repositories. All outcomes carry a closed set of error codes that
// the handlers translate into response envelopes.
package services

// ErrorCode identifies a follow-service failure. The set is closed; callers
// switch on it to pick HTTP statuses.
type ErrorCode string

const (
	CodeValidationError   ErrorCode = "VALIDATION_ERROR"
	CodeSelfFollowError   ErrorCode = "SELF_FOLLOW_ERROR"
	CodeUserNotFound      ErrorCode = "USER_NOT_FOUND"
	CodeUserInactive      ErrorCode = "USER_INACTIVE"
	CodeAlreadyFollowing  ErrorCode = "ALREADY_FOLLOWING"
	CodeInvalidActorID    ErrorCode = "INVALID_ACTOR_ID"
	CodeNotFollowing      ErrorCode = "NOT_FOLLOWING"
	CodeInvalidUserID     ErrorCode = "INVALID_USER_ID"
	CodeInvalidParameters ErrorCode = "INVALID_PARAMETERS"
	CodeInvalidFollowerID ErrorCode = "INVALID_FOLLOWER_ID"
	CodeInvalidUserIDs    ErrorCode = "INVALID_USER_IDS"
	CodeTooManyUsers      ErrorCode = "TOO_MANY_USERS"
	CodeInternalError     ErrorCode = "INTERNAL_ERROR"
)

// Error is a typed, user-facing service failure
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

func newError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// internalError collapses an unexpected failure to a generic message; the
// underlying cause is intentionally not exposed to the caller.
func internalError() *Error {
	return newError(CodeInternalError, "an unexpected error occurred")
}
