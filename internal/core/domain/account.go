package domain

import (
	"fmt"
	"time"

	"github.com/interbanking/banking_poc/internal/apperrors"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	StatusActive  AccountStatus = "ACTIVE"
	StatusBlocked AccountStatus = "BLOCKED"
)

// Account is the aggregate root for a customer account. Balance and status
// only change through the domain methods below; a failed operation leaves the
// aggregate untouched.
type Account struct {
	id            AccountID
	accountNumber string
	customerID    CustomerID
	balance       Money
	status        AccountStatus
	createdAt     time.Time
	updatedAt     time.Time
}

// NewAccount creates a new active account. The initial balance must not be
// negative; zero is allowed.
func NewAccount(id AccountID, accountNumber string, customerID CustomerID, initialBalance Money) (*Account, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: account id is required", apperrors.ErrInvalidIdentifier)
	}
	if accountNumber == "" {
		return nil, fmt.Errorf("%w: account number is required", apperrors.ErrValidation)
	}
	if customerID.IsZero() {
		return nil, fmt.Errorf("%w: customer id is required", apperrors.ErrInvalidIdentifier)
	}
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", apperrors.ErrInvalidAmount)
	}

	now := time.Now()
	return &Account{
		id:            id,
		accountNumber: accountNumber,
		customerID:    customerID,
		balance:       initialBalance,
		status:        StatusActive,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructAccount rebuilds an account from persisted state. It does not
// re-run construction invariants; the stored state was validated when it was
// first written. Repository use only.
func ReconstructAccount(id AccountID, accountNumber string, customerID CustomerID, balance Money, status AccountStatus, createdAt, updatedAt time.Time) *Account {
	return &Account{
		id:            id,
		accountNumber: accountNumber,
		customerID:    customerID,
		balance:       balance,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ID returns the account identifier.
func (a *Account) ID() AccountID { return a.id }

// AccountNumber returns the externally visible account number.
func (a *Account) AccountNumber() string { return a.accountNumber }

// CustomerID returns the owning customer's identifier.
func (a *Account) CustomerID() CustomerID { return a.customerID }

// Balance returns the current balance.
func (a *Account) Balance() Money { return a.balance }

// Status returns the current lifecycle state.
func (a *Account) Status() AccountStatus { return a.status }

// CreatedAt returns the creation timestamp.
func (a *Account) CreatedAt() time.Time { return a.createdAt }

// UpdatedAt returns the timestamp of the last successful mutation.
func (a *Account) UpdatedAt() time.Time { return a.updatedAt }

// Debit withdraws amount from the balance.
// The account must be active, the amount strictly positive, and the balance
// sufficient.
func (a *Account) Debit(amount Money) error {
	if err := a.validateAmount(amount); err != nil {
		return err
	}
	if err := a.validateActive(); err != nil {
		return err
	}

	insufficient, err := a.balance.LessThan(amount)
	if err != nil {
		return err
	}
	if insufficient {
		return fmt.Errorf("%w: balance %s cannot cover debit of %s", apperrors.ErrInsufficientBalance, a.balance, amount)
	}

	newBalance, err := a.balance.Subtract(amount)
	if err != nil {
		return err
	}
	a.balance = newBalance
	a.updatedAt = time.Now()
	return nil
}

// Credit deposits amount into the balance.
// The account must be active and the amount strictly positive.
func (a *Account) Credit(amount Money) error {
	if err := a.validateAmount(amount); err != nil {
		return err
	}
	if err := a.validateActive(); err != nil {
		return err
	}

	newBalance, err := a.balance.Add(amount)
	if err != nil {
		return err
	}
	a.balance = newBalance
	a.updatedAt = time.Now()
	return nil
}

// Block transitions the account to BLOCKED. Unconditional.
func (a *Account) Block() {
	a.status = StatusBlocked
	a.updatedAt = time.Now()
}

// Unblock transitions the account back to ACTIVE. Unconditional.
func (a *Account) Unblock() {
	a.status = StatusActive
	a.updatedAt = time.Now()
}

// CanDebit reports whether a debit of amount would succeed. Pure; never
// mutates and never fails.
func (a *Account) CanDebit(amount Money) bool {
	ok, err := a.balance.GreaterThanOrEqual(amount)
	if err != nil {
		return false
	}
	return a.status == StatusActive && ok
}

// IsActive reports whether the account is in the ACTIVE state.
func (a *Account) IsActive() bool {
	return a.status == StatusActive
}

func (a *Account) validateAmount(amount Money) error {
	if amount.IsZeroOrNegative() {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrInvalidAmount, amount)
	}
	return nil
}

func (a *Account) validateActive() error {
	if a.status != StatusActive {
		return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountNotActive, a.id, a.status)
	}
	return nil
}
