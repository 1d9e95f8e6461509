package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/bank_demo_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ledger holds the balance and the append-only history shared by personal
// and business accounts. History order is chronological.
type ledger struct {
	balance    decimal.Decimal
	history    []decimal.Decimal
	expressFee decimal.Decimal
}

func newLedger(expressFee int64) ledger {
	return ledger{
		balance:    decimal.Zero,
		history:    []decimal.Decimal{},
		expressFee: decimal.NewFromInt(expressFee),
	}
}

// Balance returns the current balance.
func (l *ledger) Balance() decimal.Decimal {
	return l.balance
}

// History returns a copy of the transaction history.
func (l *ledger) History() []decimal.Decimal {
	out := make([]decimal.Decimal, len(l.history))
	copy(out, l.history)
	return out
}

// ExpressFee returns the fixed fee charged on top of an express transfer.
func (l *ledger) ExpressFee() decimal.Decimal {
	return l.expressFee
}

// Deposit credits amount and records it. The sign of amount is not checked.
func (l *ledger) Deposit(amount decimal.Decimal) {
	l.credit(amount)
}

// Withdraw debits amount, failing with ErrInsufficientFunds when it exceeds
// the balance. A failed withdrawal changes nothing.
func (l *ledger) Withdraw(amount decimal.Decimal) error {
	if amount.GreaterThan(l.balance) {
		return insufficientFunds(amount, l.balance)
	}
	l.balance = l.balance.Sub(amount)
	l.history = append(l.history, amount.Neg())
	return nil
}

// ExpressTransfer debits amount plus the express fee and records them as two
// separate entries. Only amount is compared against the balance, so the fee
// may take the balance below zero.
func (l *ledger) ExpressTransfer(amount decimal.Decimal) error {
	if amount.GreaterThan(l.balance) {
		return insufficientFunds(amount, l.balance)
	}
	l.balance = l.balance.Sub(amount).Sub(l.expressFee)
	l.history = append(l.history, amount.Neg(), l.expressFee.Neg())
	return nil
}

// clone returns a ledger whose history no longer aliases l's.
func (l *ledger) clone() ledger {
	c := *l
	c.history = l.History()
	return c
}

func (l *ledger) credit(amount decimal.Decimal) {
	l.balance = l.balance.Add(amount)
	l.history = append(l.history, amount)
}

// lastN returns the trailing n history entries, or false when fewer exist.
func (l *ledger) lastN(n int) ([]decimal.Decimal, bool) {
	if len(l.history) < n {
		return nil, false
	}
	return l.history[len(l.history)-n:], true
}

// formatHistory renders history like "[100, -1, 500]".
func (l *ledger) formatHistory() string {
	parts := make([]string, len(l.history))
	for i, h := range l.history {
		parts[i] = h.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func insufficientFunds(amount, balance decimal.Decimal) error {
	return fmt.Errorf("%w: requested %s, available %s", apperrors.ErrInsufficientFunds, amount.String(), balance.String())
}
