package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/bank_demo_app/internal/apperrors"
	portssvc "github.com/SscSPs/bank_demo_app/internal/core/ports/services"
	"github.com/SscSPs/bank_demo_app/internal/dto"
	"github.com/SscSPs/bank_demo_app/internal/handlers"
	"github.com/SscSPs/bank_demo_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, pesel string) (*dto.AccountResponse, error) {
	args := m.Called(ctx, pesel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccountResponse), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context) ([]dto.AccountResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.AccountResponse), args.Error(1)
}

func (m *MockAccountService) CountAccounts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccountResponse), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, pesel string, req dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	args := m.Called(ctx, pesel, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccountResponse), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, pesel string) error {
	args := m.Called(ctx, pesel)
	return args.Error(0)
}

func (m *MockAccountService) Transfer(ctx context.Context, pesel string, req dto.TransferRequest) (*dto.AccountResponse, error) {
	args := m.Called(ctx, pesel, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccountResponse), args.Error(1)
}

func (m *MockAccountService) RequestLoan(ctx context.Context, pesel string, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, pesel, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountService) EmailHistory(ctx context.Context, pesel string, address string) (bool, error) {
	args := m.Called(ctx, pesel, address)
	return args.Bool(0), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite Setup ---

type AccountHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockAccountService
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockAccountService)
	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{IsProduction: true}, &portssvc.ServiceContainer{
		Account:         suite.mockService,
		BusinessAccount: new(MockBusinessAccountService),
	})
}

func (suite *AccountHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	return perform(suite.T(), suite.router, method, path, body)
}

// perform sends body (a raw JSON string or a value to encode) to the router.
func perform(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{Name: "Jan", Surname: "Kowalski", Pesel: "90010112345"}
	suite.mockService.On("CreateAccount", mock.Anything, req).
		Return(&dto.AccountResponse{Name: "Jan", Surname: "Kowalski", Pesel: "90010112345"}, nil).Once()

	w := suite.do(http.MethodPost, "/api/accounts", `{"name":"Jan","surname":"Kowalski","pesel":"90010112345","extra":"ignored"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CreatedResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Account created", resp.Message)
	suite.Equal("90010112345", resp.ID)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_BadRequests() {
	tests := []struct {
		name string
		body string
	}{
		{name: "json array", body: `["invalid"]`},
		{name: "missing fields", body: `{"name":"Jan"}`},
		{name: "malformed", body: `{"name":`},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/accounts", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Duplicate() {
	suite.mockService.On("CreateAccount", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("failed to register: %w", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/accounts", dto.CreateAccountRequest{Name: "Jan", Surname: "K", Pesel: "90010112345"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_UnexpectedErrorHidesDetails() {
	suite.mockService.On("CreateAccount", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("disk on fire")).Once()

	w := suite.do(http.MethodPost, "/api/accounts", dto.CreateAccountRequest{Name: "Jan", Surname: "K", Pesel: "90010112345"})

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to create account", decodeError(suite.T(), w))
}

func (suite *AccountHandlerTestSuite) TestCountAndList() {
	suite.mockService.On("CountAccounts", mock.Anything).Return(3, nil).Once()
	suite.mockService.On("ListAccounts", mock.Anything).Return([]dto.AccountResponse{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/accounts/count", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"count":3}`, w.Body.String())

	w = suite.do(http.MethodGet, "/api/accounts", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockService.On("GetAccount", mock.Anything, "99999999999").
		Return(nil, fmt.Errorf("account 99999999999: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/accounts/99999999999", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestUpdateAccount() {
	name := "Anna"
	suite.mockService.On("UpdateAccount", mock.Anything, "90010112345", dto.UpdateAccountRequest{Name: &name}).
		Return(&dto.AccountResponse{Name: "Anna"}, nil).Once()

	w := suite.do(http.MethodPatch, "/api/accounts/90010112345", `{"name":"Anna"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"message":"Account updated"}`, w.Body.String())
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount() {
	suite.mockService.On("DeleteAccount", mock.Anything, "90010112345").Return(nil).Once()
	suite.mockService.On("DeleteAccount", mock.Anything, "90010112345").Return(apperrors.ErrNotFound).Once()

	suite.Equal(http.StatusOK, suite.do(http.MethodDelete, "/api/accounts/90010112345", nil).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodDelete, "/api/accounts/90010112345", nil).Code)
}

func (suite *AccountHandlerTestSuite) TestTransfer_Validation() {
	tests := []struct {
		name string
		body string
	}{
		{name: "zero amount", body: `{"amount":0,"type":"incoming"}`},
		{name: "negative amount", body: `{"amount":-10,"type":"incoming"}`},
		{name: "missing amount", body: `{"type":"incoming"}`},
		{name: "unknown type", body: `{"amount":10,"type":"sideways"}`},
		{name: "missing type", body: `{"amount":10}`},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/accounts/90010112345/transfer", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockService.AssertNotCalled(suite.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestTransfer_InsufficientFunds() {
	suite.mockService.On("Transfer", mock.Anything, "90010112345", mock.MatchedBy(func(req dto.TransferRequest) bool {
		return req.Type == dto.TransferOutgoing && req.Amount.Equal(decimal.NewFromInt(10))
	})).Return(nil, fmt.Errorf("%w: requested 10, available 0", apperrors.ErrInsufficientFunds)).Once()

	w := suite.do(http.MethodPost, "/api/accounts/90010112345/transfer", `{"amount":10,"type":"outgoing"}`)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(decodeError(suite.T(), w), "insufficient funds")
}

func (suite *AccountHandlerTestSuite) TestRequestLoan() {
	suite.mockService.On("RequestLoan", mock.Anything, "90010112345", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromFloat(250.5))
	})).Return(true, nil).Once()

	w := suite.do(http.MethodPost, "/api/accounts/90010112345/loan", `{"amount":"250.50"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"approved":true}`, w.Body.String())
}

func (suite *AccountHandlerTestSuite) TestEmailHistory() {
	suite.mockService.On("EmailHistory", mock.Anything, "90010112345", "jan@example.com").Return(false, nil).Once()

	w := suite.do(http.MethodPost, "/api/accounts/90010112345/history/email", `{"email":"jan@example.com"}`)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"sent":false}`, w.Body.String())

	w = suite.do(http.MethodPost, "/api/accounts/90010112345/history/email", `{"email":"not-an-address"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AccountHandlerTestSuite) TestHealthAndSwaggerDisabledInProduction() {
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())

	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/swagger/index.html", nil).Code)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
