package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/interbanking/banking_poc/internal/core/domain"
)

// AuditLogger records significant account events. Entries are written inside
// the caller's transaction so the audit trail commits or rolls back with the
// use case that produced it.
type AuditLogger interface {
	// LogAccountCreationInTx records the creation of an account.
	LogAccountCreationInTx(ctx context.Context, tx pgx.Tx, account *domain.Account) error

	// LogTransactionInTx records a balance operation and its outcome.
	LogTransactionInTx(ctx context.Context, tx pgx.Tx, accountID domain.AccountID, operation string, amount domain.Money, result string) error

	// LogAccountStatusChangeInTx records a status transition.
	LogAccountStatusChangeInTx(ctx context.Context, tx pgx.Tx, accountID domain.AccountID, oldStatus, newStatus domain.AccountStatus) error
}
