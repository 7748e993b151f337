package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	invitationdomain "github.com/noreyni/webhook-api/internal/invitation/domain"
	"github.com/noreyni/webhook-api/internal/principal"
	projectdomain "github.com/noreyni/webhook-api/internal/project/domain"
	userdomain "github.com/noreyni/webhook-api/internal/user/domain"
)

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrRateLimited     = errors.New("too many requests")
	errMissingStatus   = errors.New("status query parameter is required")
	errMissingName     = errors.New("name query parameter is required")
	errPageSizeTooBig  = errors.New("page size must not exceed 100")
	errMalformedBody   = errors.New("request body is malformed")
	errMissingInvitees = errors.New("inviteeIds is required")
)

// AbortWithError records the error on the context and stops the handler
// chain. The terminal middleware turns it into the envelope.
func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandlingMiddleware writes the response for any handler that aborted
// with an error and did not write a body itself.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, Response{Success: false, Message: message})
	}
}

func mapError(err error) (int, string) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, principal.ErrUnresolved):
		return http.StatusUnauthorized, "authentication required"
	case isForbiddenError(err):
		return http.StatusForbidden, err.Error()
	case isNotFoundError(err):
		return http.StatusNotFound, err.Error()
	case isConflictError(err):
		return http.StatusConflict, err.Error()
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, err.Error()
	default:
		// Storage and other unexpected failures stay opaque to clients.
		return http.StatusInternalServerError, "internal server error"
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, errMissingStatus),
		errors.Is(err, errMissingName),
		errors.Is(err, errPageSizeTooBig),
		errors.Is(err, errMalformedBody),
		errors.Is(err, errMissingInvitees):
		return true
	case errors.Is(err, projectdomain.ErrInvalidID),
		errors.Is(err, projectdomain.ErrInvalidName),
		errors.Is(err, projectdomain.ErrInvalidStatus),
		errors.Is(err, projectdomain.ErrInvalidVisibility),
		errors.Is(err, projectdomain.ErrInvalidType):
		return true
	case errors.Is(err, userdomain.ErrInvalidID),
		errors.Is(err, userdomain.ErrInvalidEmail),
		errors.Is(err, userdomain.ErrInvalidFirstName),
		errors.Is(err, userdomain.ErrInvalidLastName),
		errors.Is(err, userdomain.ErrInvalidPassword),
		errors.Is(err, userdomain.ErrInvalidRole):
		return true
	case errors.Is(err, invitationdomain.ErrInvalidID),
		errors.Is(err, invitationdomain.ErrInvalidStatus),
		errors.Is(err, invitationdomain.ErrNoInvitees):
		return true
	default:
		return false
	}
}

func isForbiddenError(err error) bool {
	return errors.Is(err, projectdomain.ErrNotOwner) ||
		errors.Is(err, invitationdomain.ErrNotInvitee)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, projectdomain.ErrNotFound) ||
		errors.Is(err, userdomain.ErrNotFound) ||
		errors.Is(err, invitationdomain.ErrNotFound)
}

func isConflictError(err error) bool {
	return errors.Is(err, projectdomain.ErrNameTaken) ||
		errors.Is(err, userdomain.ErrEmailTaken) ||
		errors.Is(err, invitationdomain.ErrAlreadyInvited) ||
		errors.Is(err, invitationdomain.ErrAlreadyMember) ||
		errors.Is(err, invitationdomain.ErrNotPending) ||
		errors.Is(err, invitationdomain.ErrExpired)
}

func classifyErrorForLog(err error) (string, string) {
	switch {
	case isValidationError(err):
		return "validation", "bad_request"
	case errors.Is(err, principal.ErrUnresolved):
		return "auth", "unauthorized"
	case isForbiddenError(err):
		return "auth", "forbidden"
	case isNotFoundError(err):
		return "client", "not_found"
	case isConflictError(err):
		return "client", "conflict"
	case errors.Is(err, ErrRateLimited):
		return "client", "rate_limited"
	default:
		return "server", "internal"
	}
}
