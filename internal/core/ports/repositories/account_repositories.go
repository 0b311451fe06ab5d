package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/interbanking/banking_poc/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, id domain.AccountID) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountsByCustomerID retrieves every account owned by a customer.
	FindAccountsByCustomerID(ctx context.Context, customerID domain.CustomerID) ([]domain.Account, error)

	// ExistsByAccountNumber reports whether an account number is already taken.
	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists the account's current state, inserting or updating.
	SaveAccount(ctx context.Context, account *domain.Account) error

	// DeleteAccount removes an account.
	DeleteAccount(ctx context.Context, id domain.AccountID) error
}

// AccountTransactionSupport defines operations executed within a caller-owned
// database transaction.
type AccountTransactionSupport interface {
	// FindAccountByIDForUpdate selects an account and locks its row for the
	// duration of the transaction.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, id domain.AccountID) (*domain.Account, error)

	// SaveAccountInTx persists the account's current state within the transaction.
	SaveAccountInTx(ctx context.Context, tx pgx.Tx, account *domain.Account) error

	// ExistsByAccountNumberInTx reports number collisions within the transaction.
	ExistsByAccountNumberInTx(ctx context.Context, tx pgx.Tx, accountNumber string) (bool, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction
// capabilities.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
