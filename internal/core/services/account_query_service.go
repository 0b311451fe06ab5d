package services

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/interbanking/banking_poc/internal/core/domain"
	portsrepo "github.com/interbanking/banking_poc/internal/core/ports/repositories"
	portssvc "github.com/interbanking/banking_poc/internal/core/ports/services"
	"github.com/interbanking/banking_poc/internal/dto"
)

// accountQueryService implements the AccountQuerySvc interface. Read-only;
// it never opens a transaction.
type accountQueryService struct {
	BaseService
	accountRepo portsrepo.AccountReader
}

// NewAccountQueryService creates a new account query service.
func NewAccountQueryService(repo portsrepo.AccountReader) portssvc.AccountQuerySvc {
	return &accountQueryService{accountRepo: repo}
}

var _ portssvc.AccountQuerySvc = (*accountQueryService)(nil)

func (s *accountQueryService) GetAccount(ctx context.Context, accountID string) (*dto.AccountResponse, error) {
	account, err := s.findAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	resp := dto.ToAccountResponse(account)
	return &resp, nil
}

func (s *accountQueryService) GetAccountBalance(ctx context.Context, accountID string) (*dto.AccountBalanceResponse, error) {
	account, err := s.findAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &dto.AccountBalanceResponse{
		AccountID:     account.ID().String(),
		AccountNumber: account.AccountNumber(),
		Balance:       account.Balance().Amount(),
		Currency:      account.Balance().Currency(),
		LastUpdated:   account.UpdatedAt(),
	}, nil
}

func (s *accountQueryService) GetCustomerAccounts(ctx context.Context, customerID string) (*dto.CustomerAccountsResponse, error) {
	id, err := domain.ParseCustomerID(customerID)
	if err != nil {
		s.LogError(ctx, err, "Invalid customer ID for GetCustomerAccounts",
			slog.String("customer_id", customerID))
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByCustomerID(ctx, id)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customer accounts",
			slog.String("customer_id", customerID))
		return nil, err
	}

	responses := make([]dto.AccountResponse, 0, len(accounts))
	totals := make(map[string]domain.Money, 1)
	for i := range accounts {
		responses = append(responses, dto.ToAccountResponse(&accounts[i]))

		// Balances only combine within a currency.
		balance := accounts[i].Balance()
		current, ok := totals[balance.Currency()]
		if !ok {
			totals[balance.Currency()] = balance
			continue
		}
		sum, err := current.Add(balance)
		if err != nil {
			s.LogError(ctx, err, "Failed to total customer balances",
				slog.String("customer_id", customerID))
			return nil, err
		}
		totals[balance.Currency()] = sum
	}

	totalBalances := make(map[string]decimal.Decimal, len(totals))
	for currency, total := range totals {
		totalBalances[currency] = total.Amount()
	}

	s.LogDebug(ctx, "Customer accounts listed",
		slog.String("customer_id", customerID),
		slog.Int("count", len(responses)))

	return &dto.CustomerAccountsResponse{
		CustomerID:    id.String(),
		Accounts:      responses,
		TotalBalances: totalBalances,
	}, nil
}

func (s *accountQueryService) findAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	id, err := domain.ParseAccountID(accountID)
	if err != nil {
		s.LogError(ctx, err, "Invalid account ID for query",
			slog.String("account_id", accountID))
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, id)
	if err != nil {
		s.LogError(ctx, err, "Failed to find account",
			slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}
