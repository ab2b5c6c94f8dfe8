package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "with this username"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a bad input shape or range: invalid priority,
// invalid status, invalid group_by, self-dependency
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// IntegrityError represents a storage-layer constraint violation surfaced at
// commit time: uniqueness, foreign key, check constraint. Integrity errors
// are always fatal to the enclosing transaction.
type IntegrityError struct {
	Constraint string
	Message    string
}

func (e *IntegrityError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("integrity error (%s): %s", e.Constraint, e.Message)
	}
	return fmt.Sprintf("integrity error: %s", e.Message)
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrTaskNotFound         = &NotFoundError{Entity: "task"}
	ErrAssignmentNotFound   = &NotFoundError{Entity: "assignment"}
	ErrUserNotFound         = &NotFoundError{Entity: "user"}
	ErrTeamNotFound         = &NotFoundError{Entity: "team"}
	ErrCommentNotFound      = &NotFoundError{Entity: "comment"}
	ErrRoleNotFound         = &NotFoundError{Entity: "role"}
	ErrRefreshTokenNotFound = &NotFoundError{Entity: "refresh token"}
)

// Already Exists Errors
var (
	ErrUsernameExists   = &AlreadyExistsError{Entity: "user", Context: "with this username"}
	ErrEmailExists      = &AlreadyExistsError{Entity: "user", Context: "with this email"}
	ErrDependencyExists = &AlreadyExistsError{Entity: "dependency", Context: "between these tasks"}
	ErrRoleExists       = &AlreadyExistsError{Entity: "role", Context: "with this name"}
)

// Business Logic Errors
var (
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidPriority         = errors.New("priority out of range")
	ErrSelfDependency          = errors.New("task can not depend on itself")
	ErrInvalidGroupBy          = errors.New("unsupported group_by value")
	ErrInvalidFilterLogic      = errors.New("filter logic must be AND or OR")
	ErrInvalidPaginationParams = errors.New("invalid pagination parameters")
)

// Authentication Errors
var (
	ErrInvalidCredentials  = &AuthenticationError{Message: "incorrect credentials"}
	ErrInvalidToken        = &AuthenticationError{Message: "invalid token"}
	ErrInactiveUser        = &AuthenticationError{Message: "inactive user"}
	ErrInvalidRefreshToken = &AuthenticationError{Message: "invalid refresh token"}
	ErrSuperuserRequired   = &AuthorizationError{Message: "superuser privilege required"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsIntegrity checks if an error is an IntegrityError
func IsIntegrity(err error) bool {
	var integrityErr *IntegrityError
	return errors.As(err, &integrityErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewIntegrityError creates a new IntegrityError
func NewIntegrityError(constraint, message string) error {
	return &IntegrityError{Constraint: constraint, Message: message}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}
