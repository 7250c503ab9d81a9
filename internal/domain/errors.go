package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInternal         = errors.New("internal error")
)

// InsufficientStockError reports a quantity check that failed against
// the physically available amount. Callers render both numbers.
type InsufficientStockError struct {
	ItemID    int32
	Requested int32
	Available int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %d: requested %d, available %d",
		e.ItemID, e.Requested, e.Available)
}

// ExcessReturnError reports a return larger than the total outstanding
// balance in scope.
type ExcessReturnError struct {
	ItemID      int32
	Requested   int32
	Outstanding int32
	Place       string
}

func (e *ExcessReturnError) Error() string {
	if e.Place != "" {
		return fmt.Sprintf("cannot return %d units of item %d: only %d outstanding at %q",
			e.Requested, e.ItemID, e.Outstanding, e.Place)
	}
	return fmt.Sprintf("cannot return %d units of item %d: only %d outstanding",
		e.Requested, e.ItemID, e.Outstanding)
}

// Is lets errors.Is(err, ErrInvalidArgument) match an excess return,
// which is an argument problem rather than a stock problem: the goods
// being handed back exceed what the ledger says is out.
func (e *ExcessReturnError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func IsInsufficientStock(err error) bool {
	var ise *InsufficientStockError
	return errors.As(err, &ise)
}
