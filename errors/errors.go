/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Metadata validation sentinels. Every MetadataError matches exactly one of
// these plus ErrInvalidMetadata.
var (
	// ErrInvalidMetadata is matched by every entity metadata validation failure
	ErrInvalidMetadata = errors.New("invalid entity metadata")

	// ErrMissingIDField is returned when no id marker and no field named id exist
	ErrMissingIDField = errors.New("missing id field")

	// ErrConflictingIDMarkers is returned when generic and store-specific id markers are mixed
	ErrConflictingIDMarkers = errors.New("conflicting id markers")

	// ErrMultipleIDFields is returned when more than one field carries an id marker
	ErrMultipleIDFields = errors.New("multiple id fields")

	// ErrUnsupportedIDType is returned when the id field type cannot be used as a key
	ErrUnsupportedIDType = errors.New("unsupported id type")

	// ErrReservedFieldName is returned when the id column uses the reserved raw-document name
	ErrReservedFieldName = errors.New("reserved field name")

	// ErrInvalidGeneratedIDType is returned when generation is requested for an ineligible key type
	ErrInvalidGeneratedIDType = errors.New("invalid generated id type")

	// ErrInvalidConsistency is returned for an unrecognized consistency token
	ErrInvalidConsistency = errors.New("invalid consistency")

	// ErrInvalidTimeout is returned for a negative timeout
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrInvalidTableName is returned when name resolution yields an empty name
	ErrInvalidTableName = errors.New("invalid table name")

	// ErrInvalidCapacityMode is returned for an unrecognized capacity mode token
	ErrInvalidCapacityMode = errors.New("invalid capacity mode")
)

// Common sentinel errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists is returned when attempting to create an entity that already exists
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotRegistered is returned when no descriptor is registered for a type
	ErrNotRegistered = errors.New("no descriptor registered for type")

	// ErrInternal marks resolver defects, as opposed to invalid user input
	ErrInternal = errors.New("internal resolver error")
)

// MetadataError reports why metadata for an entity type could not be resolved.
type MetadataError struct {
	Entity string
	Kind   error
	Detail string
}

func (e *MetadataError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("entity %s: %v", e.Entity, e.Kind)
	}
	return fmt.Sprintf("entity %s: %v: %s", e.Entity, e.Kind, e.Detail)
}

func (e *MetadataError) Is(target error) bool {
	return target == ErrInvalidMetadata || target == e.Kind
}

func (e *MetadataError) Unwrap() error {
	return e.Kind
}

// InternalError represents a defect in the resolver itself.
type InternalError struct {
	Entity string
	Detail string
}

func (e *InternalError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("%v: %s", ErrInternal, e.Detail)
	}
	return fmt.Sprintf("%v: entity %s: %s", ErrInternal, e.Entity, e.Detail)
}

func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewMetadataError creates a new MetadataError of the given kind
func NewMetadataError(entity string, kind error, format string, args ...any) error {
	return &MetadataError{Entity: entity, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// NewInternalError creates a new InternalError
func NewInternalError(entity, format string, args ...any) error {
	return &InternalError{Entity: entity, Detail: fmt.Sprintf(format, args...)}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(entityType, key string) error {
	return &AlreadyExistsError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsInvalidMetadata checks if an error is an entity metadata validation error
func IsInvalidMetadata(err error) bool {
	return errors.Is(err, ErrInvalidMetadata)
}

// IsInternal checks if an error is a resolver defect
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
