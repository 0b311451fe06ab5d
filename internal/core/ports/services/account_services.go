package services

import (
	"context"

	"github.com/interbanking/banking_poc/internal/dto"
)

// AccountCommandSvc exposes the account write use cases to callers.
// Domain and lookup failures propagate unchanged as apperrors sentinels.
type AccountCommandSvc interface {
	// CreateAccount opens a new account for a customer with a unique,
	// generated account number.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*dto.AccountCreatedResult, error)

	// DebitAccount withdraws an amount from an account.
	DebitAccount(ctx context.Context, accountID string, req dto.DebitAccountRequest) (*dto.TransactionResult, error)

	// CreditAccount deposits an amount into an account.
	CreditAccount(ctx context.Context, accountID string, req dto.CreditAccountRequest) (*dto.TransactionResult, error)

	// BlockAccount transitions an account to BLOCKED.
	BlockAccount(ctx context.Context, accountID string, req dto.BlockAccountRequest) (*dto.AccountStatusResult, error)

	// UnblockAccount transitions an account back to ACTIVE.
	UnblockAccount(ctx context.Context, accountID string) (*dto.AccountStatusResult, error)
}

// AccountQuerySvc exposes the account read side.
type AccountQuerySvc interface {
	// GetAccount retrieves the full view of a single account.
	GetAccount(ctx context.Context, accountID string) (*dto.AccountResponse, error)

	// GetAccountBalance retrieves the balance view of a single account.
	GetAccountBalance(ctx context.Context, accountID string) (*dto.AccountBalanceResponse, error)

	// GetCustomerAccounts lists a customer's accounts with their combined balance.
	GetCustomerAccounts(ctx context.Context, customerID string) (*dto.CustomerAccountsResponse, error)
}
