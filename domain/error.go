// Package domain defines error types for the store system.
package domain

import (
	"errors"
	"fmt"
)

// ProductNotFoundError is returned when a positional product ID is out of range
type ProductNotFoundError struct {
	ProductID int
}

// Error implements the error interface for ProductNotFoundError
func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: id=%d", e.ProductID)
}

// Is allows proper error type checking with errors.Is()
func (e *ProductNotFoundError) Is(target error) bool {
	_, ok := target.(*ProductNotFoundError)
	return ok
}

// InvalidInputError is returned when input validation fails
type InvalidInputError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for InvalidInputError
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidInputError) Is(target error) bool {
	_, ok := target.(*InvalidInputError)
	return ok
}

// DuplicateProductError is returned when a product with the same
// case-insensitive (name, brand) pair already exists
type DuplicateProductError struct {
	Name  string
	Brand string
}

// Error implements the error interface for DuplicateProductError
func (e *DuplicateProductError) Error() string {
	return fmt.Sprintf("duplicate product: name=%s, brand=%s already exists", e.Name, e.Brand)
}

// Is allows proper error type checking with errors.Is()
func (e *DuplicateProductError) Is(target error) bool {
	_, ok := target.(*DuplicateProductError)
	return ok
}

// InsufficientStockError is returned when a sale would drive stock negative
type InsufficientStockError struct {
	Name      string
	Brand     string
	Requested int
	Available int
}

// Error implements the error interface for InsufficientStockError
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: product=%s %s, requested=%d, available=%d",
		e.Name, e.Brand, e.Requested, e.Available)
}

// Is allows proper error type checking with errors.Is()
func (e *InsufficientStockError) Is(target error) bool {
	_, ok := target.(*InsufficientStockError)
	return ok
}

// MalformedRecordError is returned for a catalog line that cannot be parsed
type MalformedRecordError struct {
	LineNo int
	Line   string
	Reason string
}

// Error implements the error interface for MalformedRecordError
func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record: line=%d, reason=%s", e.LineNo, e.Reason)
}

// Is allows proper error type checking with errors.Is()
func (e *MalformedRecordError) Is(target error) bool {
	_, ok := target.(*MalformedRecordError)
	return ok
}

// Helper functions for creating errors with context

// NewProductNotFoundError creates a new ProductNotFoundError
func NewProductNotFoundError(productID int) error {
	return &ProductNotFoundError{ProductID: productID}
}

// NewInvalidInputError creates a new InvalidInputError
func NewInvalidInputError(field, reason string, value interface{}) error {
	return &InvalidInputError{
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}

// NewDuplicateProductError creates a new DuplicateProductError
func NewDuplicateProductError(name, brand string) error {
	return &DuplicateProductError{Name: name, Brand: brand}
}

// NewInsufficientStockError creates a new InsufficientStockError
func NewInsufficientStockError(name, brand string, requested, available int) error {
	return &InsufficientStockError{
		Name:      name,
		Brand:     brand,
		Requested: requested,
		Available: available,
	}
}

// NewMalformedRecordError creates a new MalformedRecordError
func NewMalformedRecordError(lineNo int, line, reason string) error {
	return &MalformedRecordError{LineNo: lineNo, Line: line, Reason: reason}
}

// Type assertion helpers for use with errors.As()

// IsProductNotFoundError checks if an error is a ProductNotFoundError
func IsProductNotFoundError(err error) bool {
	var pnf *ProductNotFoundError
	return errors.As(err, &pnf)
}

// IsInvalidInputError checks if an error is an InvalidInputError
func IsInvalidInputError(err error) bool {
	var iie *InvalidInputError
	return errors.As(err, &iie)
}

// IsDuplicateProductError checks if an error is a DuplicateProductError
func IsDuplicateProductError(err error) bool {
	var dpe *DuplicateProductError
	return errors.As(err, &dpe)
}

// IsInsufficientStockError checks if an error is an InsufficientStockError
func IsInsufficientStockError(err error) bool {
	var ise *InsufficientStockError
	return errors.As(err, &ise)
}

// IsMalformedRecordError checks if an error is a MalformedRecordError
func IsMalformedRecordError(err error) bool {
	var mre *MalformedRecordError
	return errors.As(err, &mre)
}
