package apierrors

import (
	"errors"
	"net/http"

	"referral-server/internal/referral/processor"
	"referral-server/internal/referral/validation"
	"referral-server/internal/store"
)

// MapError converts domain/processor errors to APIErrors.
// If the error is already an APIError, it returns it as-is.
// If the error is unknown, it returns a sanitized InternalError (500).
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var validationErr *validation.ValidationError
	if errors.As(err, &validationErr) {
		return ValidationFailed(validationErr)
	}

	switch {
	case errors.Is(err, processor.ErrReferralNotFound):
		return NotFound(CodeReferralNotFound, "Referral not found")

	case errors.Is(err, processor.ErrInvalidAvatar):
		return BadRequest(CodeInvalidAvatar, "Avatar must be a non-empty image file")

	case errors.Is(err, processor.ErrReferralRejected):
		return referralRejected(err)

	case errors.Is(err, processor.ErrPersistenceFailed):
		return ServiceUnavailable(
			CodePersistenceFailed,
			"Could not save your changes. Please try again later.",
			err,
		)

	case errors.Is(err, processor.ErrStorageUploadFailed):
		return ServiceUnavailable(
			CodeStorageUploadFail,
			"Could not upload the avatar. Please try again later.",
			err,
		)

	case errors.Is(err, store.ErrNotFound):
		return NotFound(CodeNotFound, "Resource not found")

	default:
		return InternalError(err)
	}
}

// referralRejected reports a constraint violation as a client error. Only the
// column name reaches the response; the database message stays in the log.
func referralRejected(err error) *APIError {
	apiErr := &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       CodeReferralRejected,
		Message:    "The referral was rejected. Please check the fields and try again.",
		Err:        err,
	}

	var constraintErr *store.ConstraintError
	if errors.As(err, &constraintErr) && constraintErr.Column != "" {
		apiErr.Fields = map[string]validation.FieldError{
			constraintErr.Column: {Code: validation.InvalidFormat, Message: "Rejected by the database"},
		}
	}
	return apiErr
}
