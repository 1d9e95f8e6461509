package services

import (
	"context"

	"github.com/SscSPs/bank_demo_app/internal/dto"
	"github.com/shopspring/decimal"
)

// BusinessAccountReaderSvc defines read operations for company accounts
type BusinessAccountReaderSvc interface {
	GetBusinessAccount(ctx context.Context, nip string) (*dto.BusinessAccountResponse, error)
	ListBusinessAccounts(ctx context.Context) ([]dto.BusinessAccountResponse, error)
	CountBusinessAccounts(ctx context.Context) (int, error)
}

// BusinessAccountWriterSvc defines write operations for company accounts
type BusinessAccountWriterSvc interface {
	// CreateBusinessAccount confirms the company with the registry and registers it.
	CreateBusinessAccount(ctx context.Context, req dto.CreateBusinessAccountRequest) (*dto.BusinessAccountResponse, error)
	UpdateBusinessAccount(ctx context.Context, nip string, req dto.UpdateBusinessAccountRequest) (*dto.BusinessAccountResponse, error)
	DeleteBusinessAccount(ctx context.Context, nip string) error
}

// BusinessAccountTransactionSvc defines money movement on company accounts
type BusinessAccountTransactionSvc interface {
	Transfer(ctx context.Context, nip string, req dto.TransferRequest) (*dto.BusinessAccountResponse, error)
	TakeLoan(ctx context.Context, nip string, amount decimal.Decimal) (bool, error)
	EmailHistory(ctx context.Context, nip string, address string) (bool, error)
}

// BusinessAccountSvcFacade combines all company account service interfaces
type BusinessAccountSvcFacade interface {
	BusinessAccountReaderSvc
	BusinessAccountWriterSvc
	BusinessAccountTransactionSvc
}
