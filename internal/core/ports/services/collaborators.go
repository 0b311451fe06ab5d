package services

import (
	"context"

	"github.com/interbanking/banking_poc/internal/core/domain"
)

// AccountNumberGenerator produces candidate account numbers. Uniqueness is
// enforced by the command service against the repository, not by the
// generator.
type AccountNumberGenerator interface {
	GenerateAccountNumber() string
}

// NotificationSvc publishes account events to interested consumers.
// Notifications are best-effort side effects fired after the owning
// transaction commits; the command service logs failures and never fails a
// use case on them.
type NotificationSvc interface {
	NotifyAccountCreated(ctx context.Context, account *domain.Account) error
	NotifyTransactionCompleted(ctx context.Context, accountID domain.AccountID, transactionType string, amount domain.Money) error
	NotifyAccountBlocked(ctx context.Context, account *domain.Account) error
}
