package services

import (
	"errors"
	"fmt"

	"github.com/SscSPs/bank_demo_app/internal/apperrors"
	"github.com/SscSPs/bank_demo_app/internal/dto"
	"github.com/shopspring/decimal"
)

// transferer is the money movement shared by both account kinds.
type transferer interface {
	Deposit(amount decimal.Decimal)
	Withdraw(amount decimal.Decimal) error
	ExpressTransfer(amount decimal.Decimal) error
}

// applyTransfer books req on acc. Validation normally happens at the HTTP
// edge; it is repeated here so the services are safe to call directly.
func applyTransfer(acc transferer, req dto.TransferRequest) error {
	if !req.Amount.IsPositive() {
		return fmt.Errorf("transfer amount must be positive: %w", apperrors.ErrValidation)
	}
	switch req.Type {
	case dto.TransferIncoming:
		acc.Deposit(req.Amount)
		return nil
	case dto.TransferOutgoing:
		return acc.Withdraw(req.Amount)
	case dto.TransferExpress:
		return acc.ExpressTransfer(req.Amount)
	default:
		return fmt.Errorf("unknown transfer type %q: %w", req.Type, apperrors.ErrValidation)
	}
}

func transferOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	default:
		return "invalid"
	}
}
