package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/interbanking/banking_poc/internal/core/domain"
	portsrepo "github.com/interbanking/banking_poc/internal/core/ports/repositories"
	"github.com/interbanking/banking_poc/internal/middleware"
	"github.com/interbanking/banking_poc/internal/models"
)

// PgxAuditRepository appends audit events to the audit_log table. Entries are
// written inside the caller's transaction so they commit or roll back with the
// use case.
type PgxAuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new repository for audit events.
func NewAuditRepository(pool *pgxpool.Pool) portsrepo.AuditLogger {
	return &PgxAuditRepository{pool: pool}
}

var _ portsrepo.AuditLogger = (*PgxAuditRepository)(nil)

// LogAccountCreationInTx records the creation of an account.
func (r *PgxAuditRepository) LogAccountCreationInTx(ctx context.Context, tx pgx.Tx, account *domain.Account) error {
	entry := models.AuditEntry{
		AuditID:   uuid.NewString(),
		AccountID: account.ID().String(),
		EventType: models.AuditAccountCreated,
		Amount:    account.Balance().String(),
		CreatedAt: time.Now(),
	}
	return r.insert(ctx, tx, entry)
}

// LogTransactionInTx records a balance operation and its outcome.
func (r *PgxAuditRepository) LogTransactionInTx(ctx context.Context, tx pgx.Tx, accountID domain.AccountID, operation string, amount domain.Money, result string) error {
	entry := models.AuditEntry{
		AuditID:   uuid.NewString(),
		AccountID: accountID.String(),
		EventType: models.AuditTransaction,
		Operation: operation,
		Amount:    amount.String(),
		Result:    result,
		CreatedAt: time.Now(),
	}
	return r.insert(ctx, tx, entry)
}

// LogAccountStatusChangeInTx records a status transition.
func (r *PgxAuditRepository) LogAccountStatusChangeInTx(ctx context.Context, tx pgx.Tx, accountID domain.AccountID, oldStatus, newStatus domain.AccountStatus) error {
	entry := models.AuditEntry{
		AuditID:   uuid.NewString(),
		AccountID: accountID.String(),
		EventType: models.AuditStatusChange,
		OldStatus: string(oldStatus),
		NewStatus: string(newStatus),
		CreatedAt: time.Now(),
	}
	return r.insert(ctx, tx, entry)
}

func (r *PgxAuditRepository) insert(ctx context.Context, tx pgx.Tx, entry models.AuditEntry) error {
	// The authenticated caller travels in the request context; unauthenticated
	// paths leave the column empty.
	if callerID, ok := middleware.GetCallerIDFromCtx(ctx); ok {
		entry.CreatedBy = callerID
	}

	query := `
		INSERT INTO audit_log (audit_id, account_id, event_type, operation, amount, result, old_status, new_status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		entry.AuditID,
		entry.AccountID,
		entry.EventType,
		entry.Operation,
		entry.Amount,
		entry.Result,
		entry.OldStatus,
		entry.NewStatus,
		entry.CreatedBy,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry for account %s: %w", entry.AccountID, err)
	}
	return nil
}
