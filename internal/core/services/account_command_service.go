package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/interbanking/banking_poc/internal/core/domain"
	portsrepo "github.com/interbanking/banking_poc/internal/core/ports/repositories"
	portssvc "github.com/interbanking/banking_poc/internal/core/ports/services"
	"github.com/interbanking/banking_poc/internal/dto"
)

const (
	operationDebit  = "DEBIT"
	operationCredit = "CREDIT"

	transactionCompleted = "COMPLETED"
	transactionSuccess   = "SUCCESS"
)

// accountCommandService implements the AccountCommandSvc interface.
// Every use case runs load, domain mutation, persistence and audit inside one
// database transaction; notifications fire after a successful commit.
type accountCommandService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryWithTx
	numberGen   portssvc.AccountNumberGenerator
	auditLog    portsrepo.AuditLogger
	notifier    portssvc.NotificationSvc
}

// CommandServiceOption is a functional option for configuring the account
// command service.
type CommandServiceOption func(*accountCommandService)

// WithAuditLogger adds the audit logging dependency.
func WithAuditLogger(auditLog portsrepo.AuditLogger) CommandServiceOption {
	return func(s *accountCommandService) {
		s.auditLog = auditLog
	}
}

// WithNotificationService adds the notification dependency.
func WithNotificationService(notifier portssvc.NotificationSvc) CommandServiceOption {
	return func(s *accountCommandService) {
		s.notifier = notifier
	}
}

// NewAccountCommandService creates a new account command service with the
// provided options.
func NewAccountCommandService(repo portsrepo.AccountRepositoryWithTx, numberGen portssvc.AccountNumberGenerator, options ...CommandServiceOption) portssvc.AccountCommandSvc {
	svc := &accountCommandService{
		accountRepo: repo,
		numberGen:   numberGen,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.AccountCommandSvc = (*accountCommandService)(nil)

func (s *accountCommandService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*dto.AccountCreatedResult, error) {
	customerID, err := domain.ParseCustomerID(req.CustomerID)
	if err != nil {
		s.LogError(ctx, err, "Invalid customer ID for CreateAccount",
			slog.String("customer_id", req.CustomerID))
		return nil, err
	}

	initialBalance, err := s.toMoney(req.InitialBalance, req.Currency)
	if err != nil {
		return nil, err
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction for CreateAccount")
		return nil, err
	}
	defer s.accountRepo.Rollback(ctx, tx) // No-op once committed

	accountNumber, err := s.uniqueAccountNumber(ctx, tx)
	if err != nil {
		return nil, err
	}

	account, err := domain.NewAccount(domain.NewAccountID(), accountNumber, customerID, initialBalance)
	if err != nil {
		s.LogError(ctx, err, "Account construction failed",
			slog.String("customer_id", customerID.String()))
		return nil, err
	}

	if err := s.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
		s.LogError(ctx, err, "Failed to save new account",
			slog.String("account_id", account.ID().String()))
		return nil, err
	}

	if s.auditLog != nil {
		if err := s.auditLog.LogAccountCreationInTx(ctx, tx, account); err != nil {
			s.LogError(ctx, err, "Failed to audit account creation",
				slog.String("account_id", account.ID().String()))
			return nil, err
		}
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit CreateAccount transaction")
		return nil, err
	}

	s.notify(ctx, func(n portssvc.NotificationSvc) error {
		return n.NotifyAccountCreated(ctx, account)
	})

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.ID().String()),
		slog.String("account_number", account.AccountNumber()),
		slog.String("customer_id", customerID.String()))

	return &dto.AccountCreatedResult{
		AccountID:     account.ID().String(),
		AccountNumber: account.AccountNumber(),
		Status:        string(account.Status()),
	}, nil
}

func (s *accountCommandService) DebitAccount(ctx context.Context, accountID string, req dto.DebitAccountRequest) (*dto.TransactionResult, error) {
	return s.applyBalanceOperation(ctx, accountID, req.Amount, req.Currency, operationDebit)
}

func (s *accountCommandService) CreditAccount(ctx context.Context, accountID string, req dto.CreditAccountRequest) (*dto.TransactionResult, error) {
	return s.applyBalanceOperation(ctx, accountID, req.Amount, req.Currency, operationCredit)
}

// applyBalanceOperation is the shared debit/credit sequence: lock the row,
// run the domain operation, persist, audit, commit, then notify.
func (s *accountCommandService) applyBalanceOperation(ctx context.Context, accountID string, rawAmount decimal.Decimal, currency string, operation string) (*dto.TransactionResult, error) {
	id, err := domain.ParseAccountID(accountID)
	if err != nil {
		s.LogError(ctx, err, "Invalid account ID for balance operation",
			slog.String("account_id", accountID),
			slog.String("operation", operation))
		return nil, err
	}

	amount, err := s.toMoney(rawAmount, currency)
	if err != nil {
		return nil, err
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction for balance operation",
			slog.String("operation", operation))
		return nil, err
	}
	defer s.accountRepo.Rollback(ctx, tx)

	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, id)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account for balance operation",
			slog.String("account_id", accountID),
			slog.String("operation", operation))
		return nil, err
	}

	switch operation {
	case operationDebit:
		err = account.Debit(amount)
	default:
		err = account.Credit(amount)
	}
	if err != nil {
		s.LogError(ctx, err, "Balance operation rejected by domain",
			slog.String("account_id", accountID),
			slog.String("operation", operation),
			slog.String("amount", amount.String()))
		return nil, err
	}

	if err := s.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
		s.LogError(ctx, err, "Failed to persist account after balance operation",
			slog.String("account_id", accountID))
		return nil, err
	}

	transactionID := uuid.NewString()
	if s.auditLog != nil {
		if err := s.auditLog.LogTransactionInTx(ctx, tx, id, operation, amount, transactionSuccess); err != nil {
			s.LogError(ctx, err, "Failed to audit balance operation",
				slog.String("account_id", accountID))
			return nil, err
		}
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit balance operation")
		return nil, err
	}

	s.notify(ctx, func(n portssvc.NotificationSvc) error {
		return n.NotifyTransactionCompleted(ctx, id, operation, amount)
	})

	s.LogInfo(ctx, "Balance operation completed",
		slog.String("account_id", accountID),
		slog.String("operation", operation),
		slog.String("transaction_id", transactionID),
		slog.String("new_balance", account.Balance().String()))

	return &dto.TransactionResult{
		AccountID:     account.ID().String(),
		TransactionID: transactionID,
		NewBalance:    account.Balance().Amount(),
		Status:        transactionCompleted,
	}, nil
}

func (s *accountCommandService) BlockAccount(ctx context.Context, accountID string, req dto.BlockAccountRequest) (*dto.AccountStatusResult, error) {
	id, err := domain.ParseAccountID(accountID)
	if err != nil {
		s.LogError(ctx, err, "Invalid account ID for BlockAccount",
			slog.String("account_id", accountID))
		return nil, err
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction for BlockAccount")
		return nil, err
	}
	defer s.accountRepo.Rollback(ctx, tx)

	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, id)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account for BlockAccount",
			slog.String("account_id", accountID))
		return nil, err
	}

	oldStatus := account.Status()
	account.Block()

	if err := s.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
		s.LogError(ctx, err, "Failed to persist blocked account",
			slog.String("account_id", accountID))
		return nil, err
	}

	if s.auditLog != nil {
		if err := s.auditLog.LogAccountStatusChangeInTx(ctx, tx, id, oldStatus, account.Status()); err != nil {
			s.LogError(ctx, err, "Failed to audit account block",
				slog.String("account_id", accountID))
			return nil, err
		}
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit BlockAccount transaction")
		return nil, err
	}

	s.notify(ctx, func(n portssvc.NotificationSvc) error {
		return n.NotifyAccountBlocked(ctx, account)
	})

	s.LogInfo(ctx, "Account blocked",
		slog.String("account_id", accountID),
		slog.String("reason", req.Reason))

	return &dto.AccountStatusResult{
		AccountID: account.ID().String(),
		NewStatus: string(account.Status()),
	}, nil
}

// UnblockAccount mirrors BlockAccount but sends no notification; only the
// block side of the transition is announced to consumers.
func (s *accountCommandService) UnblockAccount(ctx context.Context, accountID string) (*dto.AccountStatusResult, error) {
	id, err := domain.ParseAccountID(accountID)
	if err != nil {
		s.LogError(ctx, err, "Invalid account ID for UnblockAccount",
			slog.String("account_id", accountID))
		return nil, err
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction for UnblockAccount")
		return nil, err
	}
	defer s.accountRepo.Rollback(ctx, tx)

	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, id)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account for UnblockAccount",
			slog.String("account_id", accountID))
		return nil, err
	}

	oldStatus := account.Status()
	account.Unblock()

	if err := s.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
		s.LogError(ctx, err, "Failed to persist unblocked account",
			slog.String("account_id", accountID))
		return nil, err
	}

	if s.auditLog != nil {
		if err := s.auditLog.LogAccountStatusChangeInTx(ctx, tx, id, oldStatus, account.Status()); err != nil {
			s.LogError(ctx, err, "Failed to audit account unblock",
				slog.String("account_id", accountID))
			return nil, err
		}
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit UnblockAccount transaction")
		return nil, err
	}

	s.LogInfo(ctx, "Account unblocked", slog.String("account_id", accountID))

	return &dto.AccountStatusResult{
		AccountID: account.ID().String(),
		NewStatus: string(account.Status()),
	}, nil
}

// uniqueAccountNumber loops until the generator produces a number the
// repository does not know yet. There is no retry cap; the generator's space
// must keep collisions negligible.
func (s *accountCommandService) uniqueAccountNumber(ctx context.Context, tx pgx.Tx) (string, error) {
	for {
		candidate := s.numberGen.GenerateAccountNumber()

		exists, err := s.accountRepo.ExistsByAccountNumberInTx(ctx, tx, candidate)
		if err != nil {
			s.LogError(ctx, err, "Failed to check account number uniqueness",
				slog.String("account_number", candidate))
			return "", err
		}
		if !exists {
			return candidate, nil
		}

		s.LogDebug(ctx, "Account number collision, regenerating",
			slog.String("account_number", candidate))
	}
}

// toMoney wraps a raw decimal into Money, defaulting the currency.
func (s *accountCommandService) toMoney(amount decimal.Decimal, currency string) (domain.Money, error) {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return domain.NewMoney(amount, currency)
}

// notify runs a best-effort notification after commit; failures are logged,
// never propagated.
func (s *accountCommandService) notify(ctx context.Context, fn func(portssvc.NotificationSvc) error) {
	if s.notifier == nil {
		return
	}
	if err := fn(s.notifier); err != nil {
		s.LogError(ctx, err, "Notification delivery failed")
	}
}
