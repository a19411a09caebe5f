package core

import (
	"errors"
	"fmt"
)

// Validation sentinels. All are detected before any store write, so a
// validation failure never leaves a partial stock change behind.
var (
	ErrInvalidPrice    = errors.New("unit price must be greater than zero")
	ErrInvalidDiscount = errors.New("discount percent must be between 0 and 100")
	ErrInvalidRoyalty  = errors.New("royalty percent must be between 0 and 100")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidSize     = errors.New("size is not in the configured label set")
)

// InsufficientStockError reports that a sale asked for more units than the
// product has on hand for the chosen size. Available lets the caller correct
// the input without another lookup.
type InsufficientStockError struct {
	ProductID string
	Size      Size
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s size %s: available %d, requested %d",
		e.ProductID, e.Size, e.Available, e.Requested)
}

// NotFoundError reports that a referenced product or sale does not exist.
type NotFoundError struct {
	Kind string // "product" or "sale"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// StoreError wraps a transport or backend failure from a store collaborator.
// The coordinator treats it as opaque: the operation is aborted and no local
// state is retained.
type StoreError struct {
	Op  string // e.g. "products.update"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store operation %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
