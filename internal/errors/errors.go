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
	Context string // Additional context like "with this email"
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

// ValidationError represents a validation error
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

// AuthenticationError represents a missing or invalid session
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents an authenticated caller acting on a resource it does not own
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// SignatureError represents a payment callback whose signature does not match
type SignatureError struct {
	Message string
}

func (e *SignatureError) Error() string {
	return e.Message
}

// UnavailableError represents backend resource exhaustion. Callers may retry.
type UnavailableError struct {
	Resource string
	Cause    error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s temporarily unavailable", e.Resource)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrUserNotFound           = &NotFoundError{Entity: "user"}
	ErrProfileNotFound        = &NotFoundError{Entity: "profile"}
	ErrPhotoNotFound          = &NotFoundError{Entity: "photo"}
	ErrTeamNotFound           = &NotFoundError{Entity: "team"}
	ErrRegistrationNotFound   = &NotFoundError{Entity: "registration"}
	ErrContactMessageNotFound = &NotFoundError{Entity: "contact message"}
)

// Already Exists Errors
var (
	ErrEmailExists              = &AlreadyExistsError{Entity: "user", Context: "with this email"}
	ErrActiveRegistrationExists = &AlreadyExistsError{Entity: "registration", Context: "for this team"}
	ErrPaymentAlreadyCompleted  = &AlreadyExistsError{Entity: "payment", Context: "for this registration"}
)

// Authentication Errors
var (
	ErrUnauthenticated    = &AuthenticationError{Message: "authentication required"}
	ErrInvalidCredentials = &AuthenticationError{Message: "invalid email or password"}
	ErrInvalidToken       = &AuthenticationError{Message: "invalid or expired session"}
)

// Authorization Errors
var (
	ErrNotTeamCaptain = &AuthorizationError{Message: "only the team captain can modify this team"}
	ErrAdminRequired  = &AuthorizationError{Message: "admin access required"}
)

// Payment Errors
var (
	ErrInvalidSignature       = &SignatureError{Message: "payment signature verification failed"}
	ErrInvalidPaymentState    = errors.New("registration is not awaiting payment")
	ErrPaymentProviderFailure = errors.New("payment provider request failed")
)

// Resource Errors
var (
	ErrUnavailable = &UnavailableError{Resource: "database"}
)

// Configuration Errors
var (
	ErrPaymentSecretMissing = &ConfigurationError{Message: "PAYMENT_KEY_SECRET must be set"}
	ErrStorageNotConfigured = &ConfigurationError{Message: "photo storage is not configured"}
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

// IsSignature checks if an error is a SignatureError
func IsSignature(err error) bool {
	var sigErr *SignatureError
	return errors.As(err, &sigErr)
}

// IsUnavailable checks if an error is an UnavailableError
func IsUnavailable(err error) bool {
	var unavailableErr *UnavailableError
	return errors.As(err, &unavailableErr)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity
func NewAlreadyExistsError(entity, context string) error {
	return &AlreadyExistsError{Entity: entity, Context: context}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}

// NewUnavailableError wraps cause as a retriable UnavailableError
func NewUnavailableError(resource string, cause error) error {
	return &UnavailableError{Resource: resource, Cause: cause}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(message string) error {
	return &ConfigurationError{Message: message}
}
