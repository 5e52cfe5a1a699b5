package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shubham23mamgain/bringit/domain"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// jsonFieldName reports validation failures under the wire name of a field
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// Respond writes the success envelope
func Respond(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// Fail writes the failure envelope and aborts the chain
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// WriteError maps err onto a status and client-safe message. Anything
// unrecognised is a 500 whose detail is only recorded on the context for
// the request logger.
func WriteError(c *gin.Context, err error) {
	status, message := classify(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	Fail(c, status, message)
}

func classify(err error) (int, string) {
	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		authErr    *domain.AuthError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Error()
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Error()
	case errors.As(err, &authErr):
		if authErr.Kind == domain.NotAuthorized {
			return http.StatusForbidden, "Not Authorized"
		}
		return http.StatusUnauthorized, authMessages[authErr.Kind]
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusConflict, "User already exists"
	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict, "Record already exists"
	case errors.Is(err, domain.ErrUserBlocked):
		return http.StatusForbidden, "User is blocked"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User with Given ID not found"
	case errors.Is(err, domain.ErrEmptyPassword):
		return http.StatusBadRequest, "No password provided"
	case errors.Is(err, domain.ErrResetTokenInvalid):
		return http.StatusBadRequest, "Token Expired, Please try again later"
	case errors.Is(err, domain.ErrPageNotFound):
		return http.StatusNotFound, "This Page does not exist"
	case errors.Is(err, domain.ErrNoProducts):
		return http.StatusNotFound, "No Products found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

var authMessages = map[domain.AuthErrorKind]string{
	domain.InvalidCredentials: "Invalid Credentials",
	domain.MissingToken:       "There is no token attached to the header",
	domain.TokenInvalid:       "Not Authorized, token expired. Please login again",
	domain.TokenNotRecognized: "No Refresh Token present in db or not matched",
	domain.UserNotFound:       "User not found",
}

// bindJSON binds the body and answers 400 on failure
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		WriteError(c, bindError(err))
		return false
	}
	return true
}

// bindError turns a binding failure into a field-level ValidationError
// without exposing Go type names
func bindError(err error) *domain.ValidationError {
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		fe := fields[0]
		return &domain.ValidationError{Field: fe.Field(), Reason: validationReason(fe)}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &domain.ValidationError{Field: typeErr.Field, Reason: "has the wrong type"}
	}
	return &domain.ValidationError{Field: "body", Reason: "must be valid JSON"}
}

func validationReason(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s%s", fe.Param(), unit)
	case "max", "lte":
		return fmt.Sprintf("must be at most %s%s", fe.Param(), unit)
	case "gt":
		return "must be greater than " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "is invalid"
	}
}

// idParam returns the validated :id path parameter
func idParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if err := domain.ValidateID(id); err != nil {
		WriteError(c, err)
		return "", false
	}
	return id, true
}

// currentUser returns the authenticated user attached by the auth middleware
func currentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get("user")
	if !ok {
		WriteError(c, domain.ErrMissingToken)
		return nil, false
	}
	user, ok := v.(*domain.User)
	if !ok {
		WriteError(c, domain.ErrMissingToken)
		return nil, false
	}
	return user, true
}
