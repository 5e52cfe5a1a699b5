package domain

import (
	"errors"
	"fmt"
)

// AuthErrorKind classifies authentication and authorization failures
type AuthErrorKind string

const (
	InvalidCredentials AuthErrorKind = "invalid_credentials"
	NotAuthorized      AuthErrorKind = "not_authorized"
	MissingToken       AuthErrorKind = "missing_token"
	TokenInvalid       AuthErrorKind = "token_invalid"
	TokenNotRecognized AuthErrorKind = "token_not_recognized"
	UserNotFound       AuthErrorKind = "user_not_found"
)

// AuthError is returned by the session manager and access control
type AuthError struct {
	Kind    AuthErrorKind
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Authentication errors
var (
	ErrInvalidCredentials = &AuthError{Kind: InvalidCredentials, Message: "invalid credentials"}
	ErrNotAuthorized      = &AuthError{Kind: NotAuthorized, Message: "not authorized"}
	ErrMissingToken       = &AuthError{Kind: MissingToken, Message: "no token provided"}
	ErrTokenInvalid       = &AuthError{Kind: TokenInvalid, Message: "invalid or expired token"}
	ErrTokenNotRecognized = &AuthError{Kind: TokenNotRecognized, Message: "refresh token not recognized"}
	ErrAuthUserNotFound   = &AuthError{Kind: UserNotFound, Message: "token subject no longer exists"}
)

// Account errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserBlocked       = errors.New("user account is blocked")
	ErrEmptyPassword     = errors.New("no password provided")
	ErrResetTokenInvalid = errors.New("token expired, please try again later")
)

// MaxPasswordBytes is the longest password bcrypt accepts
const MaxPasswordBytes = 72

// ErrPasswordTooLong rejects passwords bcrypt would refuse to hash
var ErrPasswordTooLong = &ValidationError{Field: "password", Reason: fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes)}

// Token verification errors
var (
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenSignature = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token has expired")
)

// Catalog errors
var (
	ErrPageNotFound = errors.New("this page does not exist")
	ErrNoProducts   = errors.New("no products found")
	ErrDuplicate    = errors.New("record already exists")
)

// CodeStore is the oops code attached to wrapped persistence failures
const CodeStore = "STORE_ERROR"

// ValidationError reports malformed input rejected before any store access
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NotFoundError reports an absent entity
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with Given ID not found", e.Entity)
}

// Is lets errors.Is match any NotFoundError against ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ErrNotFound matches every NotFoundError
var ErrNotFound = errors.New("not found")

// NewNotFound builds a NotFoundError for the named entity
func NewNotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// AuthKind extracts the AuthErrorKind from err, if any
func AuthKind(err error) (AuthErrorKind, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return "", false
}
