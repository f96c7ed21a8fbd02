// Package domain defines error types for the ordering engine.
package domain

import (
	"errors"
	"fmt"
)

// MissingAddressError is returned by checkout when no delivery address was given
type MissingAddressError struct{}

// Error implements the error interface for MissingAddressError
func (e *MissingAddressError) Error() string {
	return "missing address: enter a delivery address first"
}

// Is allows proper error type checking with errors.Is()
func (e *MissingAddressError) Is(target error) bool {
	_, ok := target.(*MissingAddressError)
	return ok
}

// UnknownPromoCodeError is reported when a promo code is unknown or rejected.
// It is advisory: the discount is reset, nothing else fails.
type UnknownPromoCodeError struct {
	Code string
}

// Error implements the error interface for UnknownPromoCodeError
func (e *UnknownPromoCodeError) Error() string {
	return fmt.Sprintf("invalid promo code: code=%s", e.Code)
}

// Is allows proper error type checking with errors.Is()
func (e *UnknownPromoCodeError) Is(target error) bool {
	_, ok := target.(*UnknownPromoCodeError)
	return ok
}

// UnresolvedCatalogReferenceError is returned when an id or name matches no catalog entry
type UnresolvedCatalogReferenceError struct {
	Kind string
	Ref  string
}

// Error implements the error interface for UnresolvedCatalogReferenceError
func (e *UnresolvedCatalogReferenceError) Error() string {
	return fmt.Sprintf("unresolved catalog reference: kind=%s, ref=%s", e.Kind, e.Ref)
}

// Is allows proper error type checking with errors.Is()
func (e *UnresolvedCatalogReferenceError) Is(target error) bool {
	_, ok := target.(*UnresolvedCatalogReferenceError)
	return ok
}

// InvalidSelectionError is returned when a user selection does not parse into a known value
type InvalidSelectionError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for InvalidSelectionError
func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidSelectionError) Is(target error) bool {
	_, ok := target.(*InvalidSelectionError)
	return ok
}

// Helper functions for creating errors with context

// NewMissingAddressError creates a new MissingAddressError
func NewMissingAddressError() error {
	return &MissingAddressError{}
}

// NewUnknownPromoCodeError creates a new UnknownPromoCodeError
func NewUnknownPromoCodeError(code string) error {
	return &UnknownPromoCodeError{Code: code}
}

// NewUnresolvedCatalogReferenceError creates a new UnresolvedCatalogReferenceError
func NewUnresolvedCatalogReferenceError(kind, ref string) error {
	return &UnresolvedCatalogReferenceError{Kind: kind, Ref: ref}
}

// NewInvalidSelectionError creates a new InvalidSelectionError
func NewInvalidSelectionError(field, reason string, value interface{}) error {
	return &InvalidSelectionError{
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}

// Type assertion helpers for use with errors.As()

// IsMissingAddressError checks if an error is a MissingAddressError
func IsMissingAddressError(err error) bool {
	var mae *MissingAddressError
	return errors.As(err, &mae)
}

// IsUnknownPromoCodeError checks if an error is an UnknownPromoCodeError
func IsUnknownPromoCodeError(err error) bool {
	var upe *UnknownPromoCodeError
	return errors.As(err, &upe)
}

// IsUnresolvedCatalogReferenceError checks if an error is an UnresolvedCatalogReferenceError
func IsUnresolvedCatalogReferenceError(err error) bool {
	var ure *UnresolvedCatalogReferenceError
	return errors.As(err, &ure)
}

// IsInvalidSelectionError checks if an error is an InvalidSelectionError
func IsInvalidSelectionError(err error) bool {
	var ise *InvalidSelectionError
	return errors.As(err, &ise)
}
