package service

import (
	"errors"
	"fmt"
	"strings"

	apperrors "task-manager-backend/internal/errors"

	"github.com/go-playground/validator/v10"
)

// translateValidationError converts validator failures into the typed
// ValidationError the transport layer maps to a 400. The first failing
// field wins; validator reports them in struct order.
func translateValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperrors.NewValidationError(strings.ToLower(fe.Field()), validationMessage(fe))
	}
	return fmt.Errorf("validation failed: %w", err)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// normalizePagination applies defaults and bounds to skip/limit parameters.
// Negative values are rejected rather than clamped.
func normalizePagination(skip, limit int) (int, int, error) {
	if skip < 0 || limit < 0 {
		return 0, 0, apperrors.ErrInvalidPaginationParams
	}
	if limit == 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return skip, limit, nil
}
