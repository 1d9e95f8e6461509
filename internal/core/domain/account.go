package domain

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// PromoCodePrefix marks a promotional code that grants the sign-up bonus.
	PromoCodePrefix = "PROM_"
	// PersonalExpressFee is charged on top of every personal express transfer.
	PersonalExpressFee = 1
)

// PromoBonus is credited to eligible new accounts without a history entry.
var PromoBonus = decimal.NewFromInt(50)

// Account is a personal account identified by an 11 character identity number.
type Account struct {
	FirstName string
	LastName  string
	identity  Identity
	clock     Clock
	ledger
}

// AccountOption configures optional Account construction parameters.
type AccountOption func(*accountOptions)

type accountOptions struct {
	promoCode *string
	clock     Clock
}

// WithPromoCode supplies a promotional code at account creation.
func WithPromoCode(code string) AccountOption {
	return func(o *accountOptions) {
		o.promoCode = &code
	}
}

// WithClock overrides the clock used for date-dependent rules.
func WithClock(c Clock) AccountOption {
	return func(o *accountOptions) {
		o.clock = c
	}
}

// NewAccount creates a personal account. An identity of the wrong length is
// stored as invalid rather than rejected.
func NewAccount(firstName, lastName, identityNumber string, opts ...AccountOption) *Account {
	o := accountOptions{clock: SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}

	a := &Account{
		FirstName: firstName,
		LastName:  lastName,
		identity:  NewPersonalIdentity(identityNumber),
		clock:     o.clock,
		ledger:    newLedger(PersonalExpressFee),
	}

	if isPromoCode(o.promoCode) && IsAgeEligible(a.identity, a.clock.Now()) {
		// the bonus is intentionally not part of the history
		a.balance = a.balance.Add(PromoBonus)
	}
	return a
}

func isPromoCode(code *string) bool {
	return code != nil && strings.HasPrefix(*code, PromoCodePrefix)
}

// Identity returns the account's identity.
func (a *Account) Identity() Identity {
	return a.identity
}

// Equal reports whether both accounts carry the same valid identity.
func (a *Account) Equal(other *Account) bool {
	if a == nil || other == nil {
		return false
	}
	return a.identity.Equal(other.identity)
}

// Clone returns a detached copy. Mutating either one leaves the other intact.
func (a *Account) Clone() *Account {
	c := *a
	c.ledger = a.ledger.clone()
	return &c
}

// SubmitForLoan credits amount when the last five entries sum to at least
// amount, or when the last three entries are all incoming. It returns false
// and leaves the account untouched otherwise.
func (a *Account) SubmitForLoan(amount decimal.Decimal) bool {
	if !a.lastFiveCover(amount) && !a.lastThreeIncoming() {
		return false
	}
	a.credit(amount)
	return true
}

func (a *Account) lastFiveCover(amount decimal.Decimal) bool {
	last, ok := a.lastN(5)
	if !ok {
		return false
	}
	sum := decimal.Zero
	for _, h := range last {
		sum = sum.Add(h)
	}
	return sum.GreaterThanOrEqual(amount)
}

func (a *Account) lastThreeIncoming() bool {
	last, ok := a.lastN(3)
	if !ok {
		return false
	}
	for _, h := range last {
		if !h.IsPositive() {
			return false
		}
	}
	return true
}

// SendHistoryViaEmail mails the full history to address and reports success.
func (a *Account) SendHistoryViaEmail(ctx context.Context, n Notifier, address string) bool {
	return sendHistory(ctx, n, a.clock.Now(), "Personal account history: "+a.formatHistory(), address)
}
