package dto

import "github.com/shopspring/decimal"

// TransferType selects how a transfer moves money.
type TransferType string

const (
	TransferIncoming TransferType = "incoming"
	TransferOutgoing TransferType = "outgoing"
	TransferExpress  TransferType = "express"
)

// TransferRequest books a single transfer on an account.
type TransferRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,gt=0" swaggertype:"number"`
	Type   TransferType    `json:"type" binding:"required,oneof=incoming outgoing express"`
}

// LoanRequest asks for a loan of Amount.
type LoanRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,gt=0" swaggertype:"number"`
}

// LoanResponse reports the loan decision.
type LoanResponse struct {
	Approved bool `json:"approved"`
}

// EmailHistoryRequest asks for the account history to be mailed to Email.
type EmailHistoryRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// EmailHistoryResponse reports whether the history email went out.
type EmailHistoryResponse struct {
	Sent bool `json:"sent"`
}
