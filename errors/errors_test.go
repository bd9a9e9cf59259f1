/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestMetadataError(t *testing.T) {
	tests := []struct {
		name     string
		kind     error
		detail   string
		expected string
	}{
		{
			name:     "with detail",
			kind:     ErrUnsupportedIDType,
			detail:   "bool",
			expected: "entity Order: unsupported id type: bool",
		},
		{
			name:     "without detail",
			kind:     ErrMissingIDField,
			expected: "entity Order: missing id field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewMetadataError("Order", tt.kind, "%s", tt.detail)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !errors.Is(err, tt.kind) {
				t.Errorf("MetadataError should match its kind %v", tt.kind)
			}

			if !IsInvalidMetadata(err) {
				t.Error("IsInvalidMetadata should return true for MetadataError")
			}

			if IsInternal(err) {
				t.Error("MetadataError must not be reported as internal")
			}
		})
	}
}

func TestMetadataErrorKindsAreExclusive(t *testing.T) {
	err := NewMetadataError("Order", ErrMultipleIDFields, "ID, Key")

	if errors.Is(err, ErrConflictingIDMarkers) {
		t.Error("MultipleIDFields error should not match ErrConflictingIDMarkers")
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Error("MetadataError should not match ErrInvalidInput")
	}
}

func TestInternalError(t *testing.T) {
	err := NewInternalError("Order", "no wire type for %s", "bool")

	expected := "internal resolver error: entity Order: no wire type for bool"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsInternal(err) {
		t.Error("IsInternal should return true for InternalError")
	}

	if IsInvalidMetadata(err) {
		t.Error("InternalError must not be reported as a validation failure")
	}

	if got := NewInternalError("", "boom").Error(); got != "internal resolver error: boom" {
		t.Errorf("Unexpected message without entity: %q", got)
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("User", "123")

	expected := `User with key "123" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestAlreadyExistsError(t *testing.T) {
	err := NewAlreadyExistsError("Product", "ABC")

	expected := `Product with key "ABC" already exists`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsAlreadyExists(err) {
		t.Error("IsAlreadyExists should return true for AlreadyExistsError")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "id",
			message:  "unable to read key",
			expected: `validation failed for field "id": unable to read key`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "missing required fields",
			expected: "validation failed: missing required fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !IsValidationError(err) {
				t.Error("IsValidationError should return true for ValidationError")
			}
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	original := NewMetadataError("User", ErrInvalidTimeout, "-1")
	wrapped := fmt.Errorf("bootstrap repository: %w", original)

	if !errors.Is(wrapped, ErrInvalidTimeout) {
		t.Error("Wrapped MetadataError should still match its kind")
	}

	var me *MetadataError
	if !errors.As(wrapped, &me) || me.Entity != "User" {
		t.Errorf("errors.As should recover the MetadataError, got %+v", me)
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrInvalidMetadata,
		ErrMissingIDField,
		ErrConflictingIDMarkers,
		ErrMultipleIDFields,
		ErrUnsupportedIDType,
		ErrReservedFieldName,
		ErrInvalidGeneratedIDType,
		ErrInvalidConsistency,
		ErrInvalidTimeout,
		ErrInvalidTableName,
		ErrInvalidCapacityMode,
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidInput,
		ErrNotRegistered,
		ErrInternal,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v matches %v", err1, err2)
			}
		}
	}
}
