package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interbanking/banking_poc/internal/apperrors"
	"github.com/interbanking/banking_poc/internal/core/domain"
)

func newTestAccount(t *testing.T, balance string) *domain.Account {
	t.Helper()
	account, err := domain.NewAccount(
		domain.NewAccountID(),
		"000112345678",
		domain.NewCustomerID(),
		mustMoney(t, balance, "BRL"),
	)
	require.NoError(t, err)
	return account
}

func TestNewAccount(t *testing.T) {
	t.Run("starts active with the initial balance", func(t *testing.T) {
		account := newTestAccount(t, "100.00")

		assert.Equal(t, domain.StatusActive, account.Status())
		assert.True(t, account.IsActive())
		assert.True(t, account.Balance().Equals(mustMoney(t, "100.00", "BRL")))
		assert.WithinDuration(t, time.Now(), account.CreatedAt(), time.Second)
		assert.Equal(t, account.CreatedAt(), account.UpdatedAt())
	})

	t.Run("zero initial balance is allowed", func(t *testing.T) {
		account := newTestAccount(t, "0.00")
		assert.True(t, account.Balance().IsZeroOrNegative())
	})

	t.Run("negative initial balance is rejected", func(t *testing.T) {
		_, err := domain.NewAccount(
			domain.NewAccountID(),
			"000112345678",
			domain.NewCustomerID(),
			mustMoney(t, "-1.00", "BRL"),
		)
		assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
	})

	t.Run("missing account number is rejected", func(t *testing.T) {
		_, err := domain.NewAccount(
			domain.NewAccountID(),
			"",
			domain.NewCustomerID(),
			mustMoney(t, "1.00", "BRL"),
		)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("zero identifiers are rejected", func(t *testing.T) {
		_, err := domain.NewAccount(
			domain.AccountID{},
			"000112345678",
			domain.NewCustomerID(),
			mustMoney(t, "1.00", "BRL"),
		)
		assert.ErrorIs(t, err, apperrors.ErrInvalidIdentifier)

		_, err = domain.NewAccount(
			domain.NewAccountID(),
			"000112345678",
			domain.CustomerID{},
			mustMoney(t, "1.00", "BRL"),
		)
		assert.ErrorIs(t, err, apperrors.ErrInvalidIdentifier)
	})
}

func TestAccount_Debit(t *testing.T) {
	t.Run("reduces the balance", func(t *testing.T) {
		account := newTestAccount(t, "100.00")

		err := account.Debit(mustMoney(t, "40.50", "BRL"))
		require.NoError(t, err)
		assert.True(t, account.Balance().Equals(mustMoney(t, "59.50", "BRL")))
	})

	t.Run("balance may reach exactly zero", func(t *testing.T) {
		account := newTestAccount(t, "100.00")

		err := account.Debit(mustMoney(t, "100.00", "BRL"))
		require.NoError(t, err)
		assert.True(t, account.Balance().IsZeroOrNegative())
		assert.False(t, account.Balance().IsNegative())
	})

	t.Run("insufficient balance leaves the account untouched", func(t *testing.T) {
		account := newTestAccount(t, "10.00")

		err := account.Debit(mustMoney(t, "10.01", "BRL"))
		assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
		assert.True(t, account.Balance().Equals(mustMoney(t, "10.00", "BRL")))
	})

	t.Run("zero and negative amounts are rejected", func(t *testing.T) {
		account := newTestAccount(t, "10.00")

		assert.ErrorIs(t, account.Debit(mustMoney(t, "0.00", "BRL")), apperrors.ErrInvalidAmount)
		assert.ErrorIs(t, account.Debit(mustMoney(t, "-5.00", "BRL")), apperrors.ErrInvalidAmount)
		assert.True(t, account.Balance().Equals(mustMoney(t, "10.00", "BRL")))
	})

	t.Run("blocked account rejects debits", func(t *testing.T) {
		account := newTestAccount(t, "100.00")
		account.Block()

		err := account.Debit(mustMoney(t, "1.00", "BRL"))
		assert.ErrorIs(t, err, apperrors.ErrAccountNotActive)
		assert.True(t, account.Balance().Equals(mustMoney(t, "100.00", "BRL")))
	})

	t.Run("currency mismatch is rejected", func(t *testing.T) {
		account := newTestAccount(t, "100.00")

		err := account.Debit(mustMoney(t, "1.00", "USD"))
		assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)
	})
}

func TestAccount_Credit(t *testing.T) {
	t.Run("increases the balance", func(t *testing.T) {
		account := newTestAccount(t, "100.00")

		err := account.Credit(mustMoney(t, "0.05", "BRL"))
		require.NoError(t, err)
		assert.True(t, account.Balance().Equals(mustMoney(t, "100.05", "BRL")))
	})

	t.Run("zero and negative amounts are rejected", func(t *testing.T) {
		account := newTestAccount(t, "100.00")

		assert.ErrorIs(t, account.Credit(mustMoney(t, "0.00", "BRL")), apperrors.ErrInvalidAmount)
		assert.ErrorIs(t, account.Credit(mustMoney(t, "-5.00", "BRL")), apperrors.ErrInvalidAmount)
	})

	t.Run("blocked account rejects credits", func(t *testing.T) {
		account := newTestAccount(t, "100.00")
		account.Block()

		err := account.Credit(mustMoney(t, "1.00", "BRL"))
		assert.ErrorIs(t, err, apperrors.ErrAccountNotActive)
	})
}

func TestAccount_BlockUnblock(t *testing.T) {
	account := newTestAccount(t, "100.00")

	account.Block()
	assert.Equal(t, domain.StatusBlocked, account.Status())
	assert.False(t, account.IsActive())

	// Blocking an already blocked account stays blocked
	account.Block()
	assert.Equal(t, domain.StatusBlocked, account.Status())

	account.Unblock()
	assert.Equal(t, domain.StatusActive, account.Status())
	assert.True(t, account.IsActive())

	// Balance operations work again after unblocking
	require.NoError(t, account.Debit(mustMoney(t, "1.00", "BRL")))
}

func TestAccount_CanDebit(t *testing.T) {
	account := newTestAccount(t, "50.00")

	assert.True(t, account.CanDebit(mustMoney(t, "50.00", "BRL")))
	assert.False(t, account.CanDebit(mustMoney(t, "50.01", "BRL")))
	assert.False(t, account.CanDebit(mustMoney(t, "1.00", "USD")))

	account.Block()
	assert.False(t, account.CanDebit(mustMoney(t, "1.00", "BRL")))

	// CanDebit never mutates
	assert.True(t, account.Balance().Equals(mustMoney(t, "50.00", "BRL")))
}

func TestReconstructAccount_KeepsStoredState(t *testing.T) {
	id := domain.NewAccountID()
	customerID := domain.NewCustomerID()
	created := time.Now().Add(-48 * time.Hour)
	updated := time.Now().Add(-time.Hour)

	account := domain.ReconstructAccount(id, "000199999999", customerID,
		mustMoney(t, "42.42", "BRL"), domain.StatusBlocked, created, updated)

	assert.Equal(t, id, account.ID())
	assert.Equal(t, "000199999999", account.AccountNumber())
	assert.Equal(t, customerID, account.CustomerID())
	assert.Equal(t, domain.StatusBlocked, account.Status())
	assert.Equal(t, created, account.CreatedAt())
	assert.Equal(t, updated, account.UpdatedAt())
}
