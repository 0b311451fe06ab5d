package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the database representation of a customer account.
type Account struct {
	AccountID     string          `db:"account_id"`
	AccountNumber string          `db:"account_number"` // Unique across the system
	CustomerID    string          `db:"customer_id"`
	Balance       decimal.Decimal `db:"balance"`
	CurrencyCode  string          `db:"currency_code"`
	Status        string          `db:"status"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}
