package auth

import (
	"errors"
	"fmt"
)

// Kind groups failures the way the HTTP layer reports them
type Kind int

const (
	KindSignupRestricted Kind = iota + 1
	KindAuthenticationFailed
	KindAuthorizationFailed
	KindUpdateCustomer
)

func (k Kind) String() string {
	switch k {
	case KindSignupRestricted:
		return "SignupRestricted"
	case KindAuthenticationFailed:
		return "AuthenticationFailed"
	case KindAuthorizationFailed:
		return "AuthorizationFailed"
	case KindUpdateCustomer:
		return "UpdateCustomerFailed"
	default:
		return "Unknown"
	}
}

// Error is a business failure with a stable code clients can match on
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Kind, e.Code, e.Message)
}

// Is matches any *Error with the same code, so the package level values can
// be used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrMissingSignupField   = &Error{KindSignupRestricted, "SGR-005", "Except last name all fields should be filled"}
	ErrContactNumberTaken   = &Error{KindSignupRestricted, "SGR-001", "This contact number is already registered! Try other contact number."}
	ErrEmailTaken           = &Error{KindSignupRestricted, "SGR-002", "This email is already registered! Try other email."}
	ErrInvalidContactNumber = &Error{KindSignupRestricted, "SGR-003", "Invalid contact number!"}
	ErrWeakSignupPassword   = &Error{KindSignupRestricted, "SGR-004", "Weak password!"}
	ErrInvalidEmail         = &Error{KindSignupRestricted, "SGR-006", "Invalid email-id format!"}

	ErrContactNotRegistered = &Error{KindAuthenticationFailed, "ATH-001", "This contact number has not been registered!"}
	ErrInvalidCredentials   = &Error{KindAuthenticationFailed, "ATH-002", "Invalid Credentials"}
	ErrMalformedCredentials = &Error{KindAuthenticationFailed, "ATH-003", "Incorrect format of decoded customer name and password"}

	ErrNotLoggedIn    = &Error{KindAuthorizationFailed, "ATHR-001", "Customer is not Logged in."}
	ErrLoggedOut      = &Error{KindAuthorizationFailed, "ATHR-002", "Customer is logged out. Log in again to access this endpoint."}
	ErrSessionExpired = &Error{KindAuthorizationFailed, "ATHR-003", "Your session is expired. Log in again to access this endpoint."}

	ErrIncorrectOldPassword = &Error{KindUpdateCustomer, "UCR-001", "Incorrect old password!"}
	ErrEmptyFirstName       = &Error{KindUpdateCustomer, "UCR-002", "First name field should not be empty"}
	ErrEmptyPasswordField   = &Error{KindUpdateCustomer, "UCR-003", "No field should be empty"}
	ErrWeakPassword         = &Error{KindUpdateCustomer, "UCR-004", "Weak password!"}
)

// AsError unwraps err to a business failure, if it is one
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
