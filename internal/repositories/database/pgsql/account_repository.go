package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/interbanking/banking_poc/internal/apperrors"
	"github.com/interbanking/banking_poc/internal/core/domain"
	portsrepo "github.com/interbanking/banking_poc/internal/core/ports/repositories"
	"github.com/interbanking/banking_poc/internal/models"
)

// querier abstracts the pool and a transaction so read paths can share scan code.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PgxAccountRepository persists accounts in PostgreSQL.
type PgxAccountRepository struct {
	baseRepository
}

// NewAccountRepository creates a new repository for account data.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{baseRepository{pool: pool}}
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

const accountColumns = "account_id, account_number, customer_id, balance, currency_code, status, created_at, updated_at"

// toModelAccount converts a domain aggregate to its database row.
func toModelAccount(a *domain.Account) models.Account {
	return models.Account{
		AccountID:     a.ID().String(),
		AccountNumber: a.AccountNumber(),
		CustomerID:    a.CustomerID().String(),
		Balance:       a.Balance().Amount(),
		CurrencyCode:  a.Balance().Currency(),
		Status:        string(a.Status()),
		CreatedAt:     a.CreatedAt(),
		UpdatedAt:     a.UpdatedAt(),
	}
}

// toDomainAccount reconstructs the aggregate from a database row.
func toDomainAccount(m models.Account) (*domain.Account, error) {
	id, err := domain.ParseAccountID(m.AccountID)
	if err != nil {
		return nil, fmt.Errorf("stored account id is corrupt: %w", err)
	}
	customerID, err := domain.ParseCustomerID(m.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("stored customer id is corrupt: %w", err)
	}
	balance, err := domain.NewMoney(m.Balance, m.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("stored balance is corrupt: %w", err)
	}
	return domain.ReconstructAccount(id, m.AccountNumber, customerID, balance, domain.AccountStatus(m.Status), m.CreatedAt, m.UpdatedAt), nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.AccountNumber,
		&m.CustomerID,
		&m.Balance,
		&m.CurrencyCode,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan account row: %w", err)
	}
	return toDomainAccount(m)
}

// SaveAccount persists the account's current state, inserting or updating.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	return r.saveAccount(ctx, r.pool, account)
}

// SaveAccountInTx persists the account's current state within the transaction.
func (r *PgxAccountRepository) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account *domain.Account) error {
	return r.saveAccount(ctx, tx, account)
}

func (r *PgxAccountRepository) saveAccount(ctx context.Context, q querier, account *domain.Account) error {
	m := toModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (account_id) DO UPDATE
		SET balance = EXCLUDED.balance,
		    status = EXCLUDED.status,
		    updated_at = EXCLUDED.updated_at;
	`
	_, err := q.Exec(ctx, query,
		m.AccountID,
		m.AccountNumber,
		m.CustomerID,
		m.Balance,
		m.CurrencyCode,
		m.Status,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account number %s is already taken", apperrors.ErrDuplicate, m.AccountNumber)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, id domain.AccountID) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	account, err := scanAccount(r.pool.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", id, err)
	}
	return account, nil
}

// FindAccountByIDForUpdate retrieves an account and locks its row for the
// duration of the transaction.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, id domain.AccountID) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	account, err := scanAccount(tx.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find account %s for update: %w", id, err)
	}
	return account, nil
}

// FindAccountByNumber retrieves an account by its account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`
	account, err := scanAccount(r.pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find account by number %s: %w", accountNumber, err)
	}
	return account, nil
}

// FindAccountsByCustomerID retrieves every account owned by a customer,
// oldest first.
func (r *PgxAccountRepository) FindAccountsByCustomerID(ctx context.Context, customerID domain.CustomerID) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE customer_id = $1 ORDER BY created_at;`

	rows, err := r.pool.Query(ctx, query, customerID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var m models.Account
		err := rows.Scan(
			&m.AccountID,
			&m.AccountNumber,
			&m.CustomerID,
			&m.Balance,
			&m.CurrencyCode,
			&m.Status,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		account, err := toDomainAccount(m)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating accounts for customer %s: %w", customerID, err)
	}
	return accounts, nil
}

// ExistsByAccountNumber reports whether an account number is already taken.
func (r *PgxAccountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	return r.existsByAccountNumber(ctx, r.pool, accountNumber)
}

// ExistsByAccountNumberInTx reports number collisions within the transaction.
func (r *PgxAccountRepository) ExistsByAccountNumberInTx(ctx context.Context, tx pgx.Tx, accountNumber string) (bool, error) {
	return r.existsByAccountNumber(ctx, tx, accountNumber)
}

func (r *PgxAccountRepository) existsByAccountNumber(ctx context.Context, q querier, accountNumber string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1);`
	var exists bool
	if err := q.QueryRow(ctx, query, accountNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account number %s: %w", accountNumber, err)
	}
	return exists, nil
}

// DeleteAccount removes an account.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, id domain.AccountID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
