package domain

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/interbanking/banking_poc/internal/apperrors"
)

// AccountID uniquely identifies an account. Compared by value.
type AccountID struct {
	value uuid.UUID
}

// NewAccountID generates a random account identifier.
func NewAccountID() AccountID {
	return AccountID{value: uuid.New()}
}

// ParseAccountID parses the canonical string form of an account identifier.
func ParseAccountID(s string) (AccountID, error) {
	v, err := uuid.Parse(s)
	if err != nil || v == uuid.Nil {
		return AccountID{}, fmt.Errorf("%w: account id %q", apperrors.ErrInvalidIdentifier, s)
	}
	return AccountID{value: v}, nil
}

// String returns the canonical UUID form.
func (id AccountID) String() string {
	return id.value.String()
}

// IsZero reports whether the identifier is unset.
func (id AccountID) IsZero() bool {
	return id.value == uuid.Nil
}

// CustomerID uniquely identifies the customer owning an account.
type CustomerID struct {
	value uuid.UUID
}

// NewCustomerID generates a random customer identifier.
func NewCustomerID() CustomerID {
	return CustomerID{value: uuid.New()}
}

// ParseCustomerID parses the canonical string form of a customer identifier.
func ParseCustomerID(s string) (CustomerID, error) {
	v, err := uuid.Parse(s)
	if err != nil || v == uuid.Nil {
		return CustomerID{}, fmt.Errorf("%w: customer id %q", apperrors.ErrInvalidIdentifier, s)
	}
	return CustomerID{value: v}, nil
}

// String returns the canonical UUID form.
func (id CustomerID) String() string {
	return id.value.String()
}

// IsZero reports whether the identifier is unset.
func (id CustomerID) IsZero() bool {
	return id.value == uuid.Nil
}
