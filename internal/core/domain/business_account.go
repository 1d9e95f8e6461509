package domain

import (
	"context"
	"fmt"

	"github.com/SscSPs/bank_demo_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

const (
	// BusinessExpressFee is charged on top of every business express transfer.
	BusinessExpressFee = 5
	// ContributionMarker is the history entry of a mandatory social-insurance
	// payment. Business loans require at least one.
	ContributionMarker = -1775
)

// BusinessAccount is a company account identified by a 10 character tax number.
type BusinessAccount struct {
	CompanyName string
	identity    Identity
	clock       Clock
	ledger
}

// NewBusinessAccount creates a company account. A tax number of the wrong
// length yields an invalid identity without contacting the registry. A valid
// one is confirmed with verifier for the current date; a failed or negative
// confirmation rejects construction with apperrors.ErrRegistration.
func NewBusinessAccount(ctx context.Context, companyName, taxNumber string, verifier CompanyVerifier, opts ...AccountOption) (*BusinessAccount, error) {
	o := accountOptions{clock: SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}

	b := &BusinessAccount{
		CompanyName: companyName,
		clock:       o.clock,
		ledger:      newLedger(BusinessExpressFee),
	}

	id := NewBusinessIdentity(taxNumber)
	if !id.IsValid() {
		b.identity = id
		return b, nil
	}

	if verifier == nil {
		return nil, fmt.Errorf("%w: no registry available for %s", apperrors.ErrRegistration, taxNumber)
	}
	active, err := verifier.VerifyCompany(ctx, taxNumber, b.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: lookup for %s failed: %w", apperrors.ErrRegistration, taxNumber, err)
	}
	if !active {
		return nil, fmt.Errorf("%w: company %s is not active", apperrors.ErrRegistration, taxNumber)
	}

	b.identity = id
	return b, nil
}

// Identity returns the company's tax identity.
func (b *BusinessAccount) Identity() Identity {
	return b.identity
}

// Equal reports whether both accounts carry the same valid identity.
func (b *BusinessAccount) Equal(other *BusinessAccount) bool {
	if b == nil || other == nil {
		return false
	}
	return b.identity.Equal(other.identity)
}

// Clone returns a detached copy. Mutating either one leaves the other intact.
func (b *BusinessAccount) Clone() *BusinessAccount {
	c := *b
	c.ledger = b.ledger.clone()
	return &c
}

// TakeLoan credits amount when the balance is at least twice amount and the
// history contains ContributionMarker. Otherwise nothing changes.
func (b *BusinessAccount) TakeLoan(amount decimal.Decimal) bool {
	if b.balance.LessThan(amount.Mul(decimal.NewFromInt(2))) || !b.hasContribution() {
		return false
	}
	b.credit(amount)
	return true
}

func (b *BusinessAccount) hasContribution() bool {
	marker := decimal.NewFromInt(ContributionMarker)
	for _, h := range b.history {
		if h.Equal(marker) {
			return true
		}
	}
	return false
}

// SendHistoryViaEmail mails the full history to address and reports success.
func (b *BusinessAccount) SendHistoryViaEmail(ctx context.Context, n Notifier, address string) bool {
	return sendHistory(ctx, n, b.clock.Now(), "Company account history: "+b.formatHistory(), address)
}
