package dto

import (
	"github.com/SscSPs/bank_demo_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a personal account.
type CreateAccountRequest struct {
	Name      string  `json:"name" binding:"required"`
	Surname   string  `json:"surname" binding:"required"`
	Pesel     string  `json:"pesel" binding:"required"`
	PromoCode *string `json:"promo_code"` // Optional
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name    *string `json:"name"`
	Surname *string `json:"surname"`
}

// AccountResponse defines the data returned for a personal account.
type AccountResponse struct {
	Name    string            `json:"name"`
	Surname string            `json:"surname"`
	Pesel   string            `json:"pesel"`
	Balance decimal.Decimal   `json:"balance"`
	History []decimal.Decimal `json:"history"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		Name:    acc.FirstName,
		Surname: acc.LastName,
		Pesel:   acc.Identity().String(),
		Balance: acc.Balance(),
		History: acc.History(),
	}
}

// CreatedResponse is returned when an account has been opened. ID is the
// account's identity number, or "Invalid".
type CreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}
