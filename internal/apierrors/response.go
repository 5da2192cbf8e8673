package apierrors

import (
	"errors"
	"net/http"

	"referral-server/internal/observability"
	"referral-server/internal/referral/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Package-level logger that uses context for observability
var logger = observability.NewNopLogger()

// SetLogger replaces the logger used for error responses.
func SetLogger(l *observability.Logger) {
	logger = l
}

// ErrorResponse is the JSON structure returned to API clients for errors
type ErrorResponse struct {
	Error  string                           `json:"error"`
	Code   string                           `json:"code,omitempty"`
	Fields map[string]validation.FieldError `json:"fields,omitempty"`
}

// RespondWithError handles error logging and sends a sanitized JSON response to the client.
// This is the primary function handlers should use for error responses.
//
// Example usage:
//
//	if err != nil {
//	    apierrors.RespondWithError(c, err)
//	    return
//	}
func RespondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	ctx := c.Request.Context()
	apiErr := MapError(err)

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "status_code", Value: apiErr.StatusCode},
		observability.Field{Key: "error_code", Value: apiErr.Code},
		observability.Field{Key: "error_message", Value: apiErr.Message},
	)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		logger.Error(ctx, "API error response", err)
	} else {
		logger.Info(ctx, "API error response")
	}

	c.AbortWithStatusJSON(apiErr.StatusCode, ErrorResponse{
		Error:  apiErr.Message,
		Code:   apiErr.Code,
		Fields: apiErr.Fields,
	})
}

// RespondWithValidationError handles Gin binding/validation errors.
// This should be used when c.ShouldBind or similar binding functions fail.
func RespondWithValidationError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	ctx := c.Request.Context()

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		logger.Info(ctx, "request validation failed")
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error: buildValidationMessage(validationErrs),
			Code:  CodeInvalidInput,
		})
		return
	}

	logger.Info(ctx, "request binding failed")
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: "Invalid request format. Please check your input.",
		Code:  CodeInvalidInput,
	})
}
