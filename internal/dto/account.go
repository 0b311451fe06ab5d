package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/interbanking/banking_poc/internal/core/domain"
)

// CreateAccountRequest defines the data needed to open a new account.
// InitialBalance may be zero but not negative; the aggregate enforces this.
type CreateAccountRequest struct {
	CustomerID     string          `json:"customerID" binding:"required,uuid"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Currency       string          `json:"currency" binding:"omitempty,currency"` // Defaults to BRL
}

// DebitAccountRequest defines the data needed to debit an account.
type DebitAccountRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency" binding:"omitempty,currency"`
	Description string          `json:"description"`
}

// CreditAccountRequest defines the data needed to credit an account.
type CreditAccountRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency" binding:"omitempty,currency"`
	Description string          `json:"description"`
}

// BlockAccountRequest carries the reason for blocking an account.
type BlockAccountRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AccountCreatedResult is returned after a successful account creation.
type AccountCreatedResult struct {
	AccountID     string `json:"accountID"`
	AccountNumber string `json:"accountNumber"`
	Status        string `json:"status"`
}

// TransactionResult is returned after a successful debit or credit.
type TransactionResult struct {
	AccountID     string          `json:"accountID"`
	TransactionID string          `json:"transactionID"`
	NewBalance    decimal.Decimal `json:"newBalance"`
	Status        string          `json:"status"`
}

// AccountStatusResult is returned after a block or unblock.
type AccountStatusResult struct {
	AccountID string `json:"accountID"`
	NewStatus string `json:"newStatus"`
}

// AccountResponse is the full read-side view of an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	CustomerID    string          `json:"customerID"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// AccountBalanceResponse is the balance view of an account.
type AccountBalanceResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	LastUpdated   time.Time       `json:"lastUpdated"`
}

// CustomerAccountsResponse lists a customer's accounts with their combined
// balances. Totals are reported per currency; balances never combine across
// currencies.
type CustomerAccountsResponse struct {
	CustomerID    string                     `json:"customerID"`
	Accounts      []AccountResponse          `json:"accounts"`
	TotalBalances map[string]decimal.Decimal `json:"totalBalances"`
}

// ToAccountResponse converts a domain.Account to its read-side view.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.ID().String(),
		AccountNumber: acc.AccountNumber(),
		CustomerID:    acc.CustomerID().String(),
		Balance:       acc.Balance().Amount(),
		Currency:      acc.Balance().Currency(),
		Status:        string(acc.Status()),
		CreatedAt:     acc.CreatedAt(),
		UpdatedAt:     acc.UpdatedAt(),
	}
}
