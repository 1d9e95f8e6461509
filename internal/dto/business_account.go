package dto

import (
	"github.com/SscSPs/bank_demo_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBusinessAccountRequest defines the data needed to open a company account.
type CreateBusinessAccountRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	NIP         string `json:"nip" binding:"required"`
}

// UpdateBusinessAccountRequest defines the data allowed for updating a company account.
type UpdateBusinessAccountRequest struct {
	CompanyName *string `json:"company_name"`
}

// BusinessAccountResponse defines the data returned for a company account.
type BusinessAccountResponse struct {
	CompanyName string            `json:"company_name"`
	NIP         string            `json:"nip"`
	Balance     decimal.Decimal   `json:"balance"`
	History     []decimal.Decimal `json:"history"`
}

// ToBusinessAccountResponse converts a domain.BusinessAccount to BusinessAccountResponse DTO
func ToBusinessAccountResponse(acc *domain.BusinessAccount) BusinessAccountResponse {
	return BusinessAccountResponse{
		CompanyName: acc.CompanyName,
		NIP:         acc.Identity().String(),
		Balance:     acc.Balance(),
		History:     acc.History(),
	}
}
