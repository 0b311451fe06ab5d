package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/interbanking/banking_poc/internal/apperrors"
	"github.com/interbanking/banking_poc/internal/dto"
	"github.com/interbanking/banking_poc/internal/handlers"
	"github.com/interbanking/banking_poc/internal/middleware"
)

// --- Mock AccountCommandSvc ---

type MockAccountCommandService struct {
	mock.Mock
}

func (m *MockAccountCommandService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*dto.AccountCreatedResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccountCreatedResult), args.Error(1)
}

func (m *MockAccountCommandService) DebitAccount(ctx context.Context, accountID string, req dto.DebitAccountRequest) (*dto.TransactionResult, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionResult), args.Error(1)
}

func (m *MockAccountCommandService) CreditAccount(ctx context.Context, accountID string, req dto.CreditAccountRequest) (*dto.TransactionResult, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionResult), args.Error(1)
}

func (m *MockAccountCommandService) BlockAccount(ctx context.Context, accountID string, req dto.BlockAccountRequest) (*dto.AccountStatusResult, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccountStatusResult), args.Error(1)
}

func (m *MockAccountCommandService) UnblockAccount(ctx context.Context, accountID string) (*dto.AccountStatusResult, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccountStatusResult), args.Error(1)
}

// --- Mock AccountQuerySvc ---

type MockAccountQueryService struct {
	mock.Mock
}

func (m *MockAccountQueryService) GetAccount(ctx context.Context, accountID string) (*dto.AccountResponse, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccountResponse), args.Error(1)
}

func (m *MockAccountQueryService) GetAccountBalance(ctx context.Context, accountID string) (*dto.AccountBalanceResponse, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccountBalanceResponse), args.Error(1)
}

func (m *MockAccountQueryService) GetCustomerAccounts(ctx context.Context, customerID string) (*dto.CustomerAccountsResponse, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CustomerAccountsResponse), args.Error(1)
}

// --- Test Suite ---

type AccountHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCommand *MockAccountCommandService
	mockQuery   *MockAccountQueryService
	jwtSecret   string
}

func (suite *AccountHandlerTestSuite) generateTestToken(callerID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "banking-test",
		Subject:   callerID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidations())

	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockCommand = new(MockAccountCommandService)
	suite.mockQuery = new(MockAccountQueryService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterAccountRoutes(v1, suite.mockCommand, suite.mockQuery)
}

// doRequest performs an authenticated JSON request against the test router.
func (suite *AccountHandlerTestSuite) doRequest(method, url string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, url, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	customerID := uuid.NewString()
	expected := &dto.AccountCreatedResult{
		AccountID:     uuid.NewString(),
		AccountNumber: "000112345678",
		Status:        "ACTIVE",
	}

	suite.mockCommand.On("CreateAccount", mock.Anything, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.CustomerID == customerID
	})).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", gin.H{
		"customerID":     customerID,
		"initialBalance": "100.00",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.AccountCreatedResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(expected.AccountID, body.AccountID)
	suite.Equal(expected.AccountNumber, body.AccountNumber)
	suite.mockCommand.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidCurrencyRejectedByBinding() {
	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", gin.H{
		"customerID": uuid.NewString(),
		"currency":   "reais",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCommand.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingCustomerID() {
	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", gin.H{
		"initialBalance": "10.00",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCommand.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestDebitAccount_Success() {
	accountID := uuid.NewString()
	expected := &dto.TransactionResult{
		AccountID:     accountID,
		TransactionID: uuid.NewString(),
		NewBalance:    decimal.NewFromFloat(60.00),
		Status:        "COMPLETED",
	}

	suite.mockCommand.On("DebitAccount", mock.Anything, accountID, mock.MatchedBy(func(req dto.DebitAccountRequest) bool {
		return req.Amount.Equal(decimal.NewFromFloat(40.00))
	})).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/accounts/%s/debit", accountID), gin.H{
		"amount": "40.00",
	})

	suite.Equal(http.StatusOK, w.Code)
	var body dto.TransactionResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(expected.TransactionID, body.TransactionID)
	suite.mockCommand.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDebitAccount_ZeroAmountRejectedByDomain() {
	accountID := uuid.NewString()

	// An explicit zero passes binding and is rejected by the domain rule.
	suite.mockCommand.On("DebitAccount", mock.Anything, accountID, mock.MatchedBy(func(req dto.DebitAccountRequest) bool {
		return req.Amount.IsZero()
	})).Return(nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrInvalidAmount)).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/accounts/%s/debit", accountID), gin.H{
		"amount": 0,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCommand.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDebitAccount_InsufficientBalance() {
	accountID := uuid.NewString()

	suite.mockCommand.On("DebitAccount", mock.Anything, accountID, mock.Anything).
		Return(nil, fmt.Errorf("%w: balance too low", apperrors.ErrInsufficientBalance)).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/accounts/%s/debit", accountID), gin.H{
		"amount": "999.00",
	})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *AccountHandlerTestSuite) TestDebitAccount_BlockedAccountConflict() {
	accountID := uuid.NewString()

	suite.mockCommand.On("DebitAccount", mock.Anything, accountID, mock.Anything).
		Return(nil, fmt.Errorf("%w: account is BLOCKED", apperrors.ErrAccountNotActive)).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/accounts/%s/debit", accountID), gin.H{
		"amount": "1.00",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreditAccount_Success() {
	accountID := uuid.NewString()
	expected := &dto.TransactionResult{
		AccountID:     accountID,
		TransactionID: uuid.NewString(),
		NewBalance:    decimal.NewFromFloat(150.00),
		Status:        "COMPLETED",
	}

	suite.mockCommand.On("CreditAccount", mock.Anything, accountID, mock.Anything).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/accounts/%s/credit", accountID), gin.H{
		"amount": "50.00",
	})

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *AccountHandlerTestSuite) TestBlockAccount_RequiresReason() {
	accountID := uuid.NewString()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/accounts/%s/block", accountID), gin.H{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCommand.AssertNotCalled(suite.T(), "BlockAccount")
}

func (suite *AccountHandlerTestSuite) TestBlockAccount_Success() {
	accountID := uuid.NewString()
	expected := &dto.AccountStatusResult{AccountID: accountID, NewStatus: "BLOCKED"}

	suite.mockCommand.On("BlockAccount", mock.Anything, accountID, mock.MatchedBy(func(req dto.BlockAccountRequest) bool {
		return req.Reason == "fraud suspicion"
	})).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/accounts/%s/block", accountID), gin.H{
		"reason": "fraud suspicion",
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockCommand.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestUnblockAccount_Success() {
	accountID := uuid.NewString()
	expected := &dto.AccountStatusResult{AccountID: accountID, NewStatus: "ACTIVE"}

	suite.mockCommand.On("UnblockAccount", mock.Anything, accountID).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/accounts/%s/unblock", accountID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.AccountStatusResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("ACTIVE", body.NewStatus)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()

	suite.mockQuery.On("GetAccount", mock.Anything, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/accounts/%s", accountID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_InvalidIDBadRequest() {
	suite.mockQuery.On("GetAccount", mock.Anything, "garbage").
		Return(nil, fmt.Errorf("%w: account id %q", apperrors.ErrInvalidIdentifier, "garbage")).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/garbage", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccountBalance_Success() {
	accountID := uuid.NewString()
	expected := &dto.AccountBalanceResponse{
		AccountID:     accountID,
		AccountNumber: "000112345678",
		Balance:       decimal.NewFromFloat(77.70),
		Currency:      "BRL",
		LastUpdated:   time.Now(),
	}

	suite.mockQuery.On("GetAccountBalance", mock.Anything, accountID).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/accounts/%s/balance", accountID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.AccountBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("BRL", body.Currency)
	suite.True(body.Balance.Equal(decimal.NewFromFloat(77.70)))
}

func (suite *AccountHandlerTestSuite) TestGetCustomerAccounts_Success() {
	customerID := uuid.NewString()
	expected := &dto.CustomerAccountsResponse{
		CustomerID:    customerID,
		Accounts:      []dto.AccountResponse{{AccountID: uuid.NewString()}},
		TotalBalances: map[string]decimal.Decimal{"BRL": decimal.NewFromFloat(10.00)},
	}

	suite.mockQuery.On("GetCustomerAccounts", mock.Anything, customerID).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/customers/%s/accounts", customerID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.CustomerAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Accounts, 1)
	suite.True(body.TotalBalances["BRL"].Equal(decimal.NewFromFloat(10.00)))
}

func (suite *AccountHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockQuery.AssertNotCalled(suite.T(), "GetAccount")
}

// --- Run Test Suite ---

func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
