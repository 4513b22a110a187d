package service

// Error is a failure with a stable message code that is safe to show to the
// caller. Internal errors never carry details, those are logged instead.
type Error struct {
	Code     string
	Internal bool
}

func (e *Error) Error() string {
	return e.Code
}

var (
	ErrEmailExists          = &Error{Code: "emailExists"}
	ErrUserNotFound         = &Error{Code: "userNotFound"}
	ErrInvalidCredentials   = &Error{Code: "invalidCredentials"}
	ErrInvalidRequest       = &Error{Code: "invalidRequest"}
	ErrInvalidCode          = &Error{Code: "invalidCode"}
	ErrCodeExpired          = &Error{Code: "codeExpired"}
	ErrAccessDenied         = &Error{Code: "accessDenied"}
	ErrRefreshTokenMismatch = &Error{Code: "refreshTokenMismatch"}
	ErrOAuthEmailMissing    = &Error{Code: "oauthEmailMissing"}

	// Shares its code with ErrInvalidCode so callers can't tell a missing
	// validation step apart from a wrong code
	ErrNotValidated = &Error{Code: "invalidCode"}

	ErrInternal = &Error{Code: "serverError", Internal: true}
)
