package models

import "time"

// Audit event types stored in the audit_log table.
const (
	AuditAccountCreated = "ACCOUNT_CREATED"
	AuditTransaction    = "TRANSACTION"
	AuditStatusChange   = "STATUS_CHANGE"
)

// AuditEntry is the database representation of one audit event.
// Operation/Amount/Result are set for transaction events, OldStatus/NewStatus
// for status changes; the remaining columns stay empty. CreatedBy holds the
// authenticated caller when the request carried one.
type AuditEntry struct {
	AuditID   string    `db:"audit_id"`
	AccountID string    `db:"account_id"`
	EventType string    `db:"event_type"`
	Operation string    `db:"operation"`
	Amount    string    `db:"amount"`
	Result    string    `db:"result"`
	OldStatus string    `db:"old_status"`
	NewStatus string    `db:"new_status"`
	CreatedBy string    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
}
