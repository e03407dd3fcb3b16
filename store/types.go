// Package store is a fixture for analysis and planning tests. It declares
// base types together with predicates and error functions, some of them
// with signatures newtype-generator must reject.
package store

import (
	"errors"
	"fmt"
	"time"

	"newtype-generator/utils"
)

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Cents is an amount in the lowest currency unit.
type Cents int64

// Order represents a transaction made by a customer.
type Order struct {
	ID        int64       `json:"id"`
	Status    OrderStatus `json:"status"`
	Total     Cents       `json:"total_cents"`
	OrderedAt time.Time   `json:"ordered_at"`
}

// Amount is declared by hand, so a newtype of that name must be refused.
type Amount struct {
	Value Cents
}

// AmountError reports an amount outside the accepted range.
type AmountError struct {
	Amount Cents
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("amount %d is out of range", e.Amount)
}

// ErrNegative is declared by hand; a sentinel of the same name conflicts.
var ErrNegative = errors.New("amount must not be negative")

// reason is a named string returned by statusReason.
type reason string

func isKnownStatus(s OrderStatus) bool {
	return utils.IsOneOf(s, StatusPending, StatusPaid, StatusShipped, StatusCancelled)
}

func isNonNegative(c *Cents) bool {
	return *c >= 0
}

func isShortDelay(d time.Duration) bool {
	return d > 0 && d < 48*time.Hour
}

func statusMessage(s OrderStatus) string {
	return fmt.Sprintf("unknown order status %q", string(s))
}

func statusReason(s *OrderStatus) reason {
	return reason("status " + string(*s) + " is not known")
}

func negativeError(c *Cents) error {
	return fmt.Errorf("%d: %w", *c, ErrNegative)
}

func amountError(c Cents) *AmountError {
	return &AmountError{Amount: c}
}

// Shapes that cannot serve as predicate or error function.

func twoArgs(a, b Cents) bool {
	return a == b
}

func countCents(c Cents) int {
	return int(c)
}

func variadicCheck(c ...Cents) bool {
	return len(c) > 0
}

func anyCheck[T any](_ T) bool {
	return true
}

func multiResult(c Cents) (string, error) {
	return fmt.Sprint(c), nil
}

// Positive is a method, not a package-level function.
func (c Cents) Positive() bool {
	return c > 0
}

// NewDiscount is the hand-written constructor of a manual newtype with the
// wrong signature: it takes a string and does not return Discount.
func NewDiscount(val string) (Cents, error) {
	var c Cents

	_, err := fmt.Sscan(val, &c)

	return c, err
}
