package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a missing parent entity.
	ErrNotFound = errors.New("not found")

	// ErrConflict reports a storage-level race: a unique constraint or
	// serialization failure at commit time. The write coordinators retry
	// the whole operation once on this error.
	ErrConflict = errors.New("conflict")
)

// A FieldError reports one field failing a local rule, for example a
// required creation field missing from a child spec.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func RequiredFieldError(field string) *FieldError {
	return &FieldError{Field: field, Message: "this field is required"}
}

// An InvariantError reports a cross-row numeric rule failing.
type InvariantError struct {
	Invariant string
	Message   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s", e.Invariant, e.Message)
}

// StockSumError reports the variants stock sum exceeding the product
// total. remaining is how much stock the caller may still allocate.
func StockSumError(sum, limit, remaining int) *InvariantError {
	return &InvariantError{
		Invariant: "stock_sum",
		Message: fmt.Sprintf(
			"variants total in stock %d can't be greater than product total in stock %d: only %d left",
			sum, limit, remaining,
		),
	}
}

func DiscountPriceError() *InvariantError {
	return &InvariantError{
		Invariant: "discount_price",
		Message:   "discount price can't be greater than maximum price",
	}
}

// An OwnershipError reports a child spec referencing an id the parent
// does not own. Never auto-corrected: the caller either typoed an id or
// is reaching into someone else's aggregate.
type OwnershipError struct {
	Kind string
	ID   int64
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("parent has no %s with id %d", e.Kind, e.ID)
}

// IsValidation reports whether err belongs to the caller-facing
// validation taxonomy rather than to storage failures.
func IsValidation(err error) bool {
	var (
		fe *FieldError
		ie *InvariantError
		oe *OwnershipError
	)
	return errors.As(err, &fe) || errors.As(err, &ie) || errors.As(err, &oe)
}
