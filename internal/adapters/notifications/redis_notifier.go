// Package notifications publishes account events to a Redis stream.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/interbanking/banking_poc/internal/core/domain"
	portssvc "github.com/interbanking/banking_poc/internal/core/ports/services"
)

// Event types published to the account events stream.
const (
	EventAccountCreated       = "account.created"
	EventTransactionCompleted = "account.transaction.completed"
	EventAccountBlocked       = "account.blocked"
)

// AccountEventsStream is the Redis stream account events are appended to.
const AccountEventsStream = "account.events"

// Event is the envelope written to the stream.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// AccountCreatedEvent is the payload for EventAccountCreated.
type AccountCreatedEvent struct {
	AccountID     string `json:"accountId"`
	AccountNumber string `json:"accountNumber"`
	CustomerID    string `json:"customerId"`
	Balance       string `json:"balance"`
	Currency      string `json:"currency"`
}

// TransactionCompletedEvent is the payload for EventTransactionCompleted.
type TransactionCompletedEvent struct {
	AccountID       string `json:"accountId"`
	TransactionType string `json:"transactionType"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
}

// AccountBlockedEvent is the payload for EventAccountBlocked.
type AccountBlockedEvent struct {
	AccountID     string `json:"accountId"`
	AccountNumber string `json:"accountNumber"`
	CustomerID    string `json:"customerId"`
}

// RedisNotifier implements the NotificationSvc port over a Redis stream.
type RedisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier creates a notifier publishing to the given Redis client.
func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

var _ portssvc.NotificationSvc = (*RedisNotifier)(nil)

// NotifyAccountCreated publishes an account.created event.
func (n *RedisNotifier) NotifyAccountCreated(ctx context.Context, account *domain.Account) error {
	return n.publish(ctx, EventAccountCreated, AccountCreatedEvent{
		AccountID:     account.ID().String(),
		AccountNumber: account.AccountNumber(),
		CustomerID:    account.CustomerID().String(),
		Balance:       account.Balance().Amount().StringFixed(2),
		Currency:      account.Balance().Currency(),
	})
}

// NotifyTransactionCompleted publishes an account.transaction.completed event.
func (n *RedisNotifier) NotifyTransactionCompleted(ctx context.Context, accountID domain.AccountID, transactionType string, amount domain.Money) error {
	return n.publish(ctx, EventTransactionCompleted, TransactionCompletedEvent{
		AccountID:       accountID.String(),
		TransactionType: transactionType,
		Amount:          amount.Amount().StringFixed(2),
		Currency:        amount.Currency(),
	})
}

// NotifyAccountBlocked publishes an account.blocked event. There is no
// corresponding unblocked event; consumers only react to the block side of
// the transition.
func (n *RedisNotifier) NotifyAccountBlocked(ctx context.Context, account *domain.Account) error {
	return n.publish(ctx, EventAccountBlocked, AccountBlockedEvent{
		AccountID:     account.ID().String(),
		AccountNumber: account.AccountNumber(),
		CustomerID:    account.CustomerID().String(),
	})
}

func (n *RedisNotifier) publish(ctx context.Context, eventType string, data any) error {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	args := &redis.XAddArgs{
		Stream: AccountEventsStream,
		Values: map[string]any{
			"event": eventJSON,
		},
	}
	if _, err := n.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}
