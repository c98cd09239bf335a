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
	Context string // Additional context like "with this name"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s %s already exists", e.Entity, e.Context)
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

// StoreErrorKind classifies failures reported by the relational store
type StoreErrorKind string

const (
	KindUniqueViolation     StoreErrorKind = "unique_violation"
	KindForeignKeyViolation StoreErrorKind = "foreign_key_violation"
	KindInvalidInputFormat  StoreErrorKind = "invalid_input_format"
	KindSchemaMismatch      StoreErrorKind = "schema_mismatch"
	KindUnknown             StoreErrorKind = "unknown"
)

// StoreError is a store failure translated out of the driver's error type.
// Code is the SQLSTATE when the store reported one.
type StoreError struct {
	Kind       StoreErrorKind
	Code       string
	Message    string
	Detail     string
	Constraint string
	Table      string
	Err        error
}

func (e *StoreError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("store error (%s): %s [constraint %s]", e.Kind, e.Message, e.Constraint)
	}
	return fmt.Sprintf("store error (%s): %s", e.Kind, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Entity Not Found Errors
var (
	ErrCategoryNotFound  = &NotFoundError{Entity: "category"}
	ErrComponentNotFound = &NotFoundError{Entity: "component"}
)

// Already Exists Errors
var (
	ErrCategoryExists  = &AlreadyExistsError{Entity: "category", Context: "with this name"}
	ErrComponentExists = &AlreadyExistsError{Entity: "component", Context: "with this name"}
)

// Input errors detected before any statement is issued
var (
	ErrEmptyCategoryName       = &ValidationError{Field: "name", Message: "category name must not be empty"}
	ErrCategoryAndNameRequired = &ValidationError{Field: "category_id", Message: "category and component name are required"}
	ErrComponentIDRequired     = &ValidationError{Field: "id", Message: "component id is required for update"}
)

// Reference and format errors surfaced from component writes
var (
	ErrCategoryReferenceNotFound = &ValidationError{Field: "category_id", Message: "the specified category does not exist"}
	ErrInvalidParametersFormat   = &ValidationError{Field: "parameters", Message: "invalid data format (check component parameters)"}
	ErrSchemaMismatch            = errors.New("database structure error: a column or table is missing")
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

// StoreKind returns the store error kind carried by err, or "" when err is not a StoreError
func StoreKind(err error) StoreErrorKind {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Kind
	}
	return ""
}

// IsStoreKind reports whether err is a StoreError of the given kind
func IsStoreKind(err error, kind StoreErrorKind) bool {
	return StoreKind(err) == kind
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
