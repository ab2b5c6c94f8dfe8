package auth

import (
	"errors"
	"fmt"
	"strings"

	apperrors "task-manager-backend/internal/errors"

	"github.com/go-playground/validator/v10"
)

func translateValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return apperrors.NewValidationError(field, "is required")
		case "min":
			return apperrors.NewValidationError(field, fmt.Sprintf("must be at least %s", fe.Param()))
		case "max":
			return apperrors.NewValidationError(field, fmt.Sprintf("must be at most %s", fe.Param()))
		case "email":
			return apperrors.NewValidationError(field, "must be a valid email address")
		default:
			return apperrors.NewValidationError(field, fmt.Sprintf("failed %s validation", fe.Tag()))
		}
	}
	return fmt.Errorf("validation failed: %w", err)
}
