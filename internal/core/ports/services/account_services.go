package services

import (
	"context"

	"github.com/SscSPs/bank_demo_app/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for personal accounts
type AccountReaderSvc interface {
	// GetAccount retrieves the account registered under pesel.
	GetAccount(ctx context.Context, pesel string) (*dto.AccountResponse, error)

	// ListAccounts returns every personal account in registration order.
	ListAccounts(ctx context.Context) ([]dto.AccountResponse, error)

	// CountAccounts returns the number of registered personal accounts.
	CountAccounts(ctx context.Context) (int, error)
}

// AccountWriterSvc defines write operations for personal accounts
type AccountWriterSvc interface {
	// CreateAccount opens and registers a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*dto.AccountResponse, error)

	// UpdateAccount changes the holder's names.
	UpdateAccount(ctx context.Context, pesel string, req dto.UpdateAccountRequest) (*dto.AccountResponse, error)

	// DeleteAccount removes the account from the registry.
	DeleteAccount(ctx context.Context, pesel string) error
}

// AccountTransactionSvc defines money movement on personal accounts
type AccountTransactionSvc interface {
	// Transfer books an incoming, outgoing or express transfer.
	Transfer(ctx context.Context, pesel string, req dto.TransferRequest) (*dto.AccountResponse, error)

	// RequestLoan evaluates and, when approved, credits a loan.
	RequestLoan(ctx context.Context, pesel string, amount decimal.Decimal) (bool, error)

	// EmailHistory mails the account history to address.
	EmailHistory(ctx context.Context, pesel string, address string) (bool, error)
}

// AccountSvcFacade combines all personal account service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountTransactionSvc
}
