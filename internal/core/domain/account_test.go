package domain_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/bank_demo_app/internal/apperrors"
	"github.com/SscSPs/bank_demo_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func decs(vs ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(vs))
	for i, v := range vs {
		out[i] = dec(v)
	}
	return out
}

// assertHistory compares decimals by value so that 0 and -0 style
// representation differences do not matter.
func assertHistory(t *testing.T, want []decimal.Decimal, got []decimal.Decimal) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "entry %d: want %s, got %s", i, want[i], got[i])
	}
}

func newTestAccount(opts ...domain.AccountOption) *domain.Account {
	opts = append([]domain.AccountOption{domain.WithClock(domain.FixedClock{At: testNow})}, opts...)
	return domain.NewAccount("Jan", "Kowalski", "90010112345", opts...)
}

func TestNewAccount(t *testing.T) {
	acc := newTestAccount()

	assert.Equal(t, "Jan", acc.FirstName)
	assert.Equal(t, "Kowalski", acc.LastName)
	assert.Equal(t, "90010112345", acc.Identity().String())
	assert.True(t, acc.Balance().IsZero())
	assert.Empty(t, acc.History())
}

func TestNewAccount_InvalidIdentity(t *testing.T) {
	short := domain.NewAccount("Jane", "Doe", "12345")
	long := domain.NewAccount("Jane", "Doe", "12345678901011")

	assert.Equal(t, "Invalid", short.Identity().String())
	assert.Equal(t, "Invalid", long.Identity().String())
	assert.False(t, short.Equal(long), "two invalid accounts are distinct")
}

func TestAccount_Equal(t *testing.T) {
	a := domain.NewAccount("Jan", "Kowalski", "90010112345")
	b := domain.NewAccount("Anna", "Nowak", "90010112345")
	c := domain.NewAccount("Jan", "Kowalski", "92020212345")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestNewAccount_PromoCode(t *testing.T) {
	clock := domain.WithClock(domain.FixedClock{At: testNow})

	tests := []struct {
		name        string
		identity    string
		opts        []domain.AccountOption
		wantBalance int64
	}{
		{name: "eligible with promo", identity: "02270803628", opts: []domain.AccountOption{domain.WithPromoCode("PROM_ABC")}, wantBalance: 50},
		{name: "wrong prefix", identity: "02270803628", opts: []domain.AccountOption{domain.WithPromoCode("CODE_ABC")}, wantBalance: 0},
		{name: "prefix is case sensitive", identity: "02270803628", opts: []domain.AccountOption{domain.WithPromoCode("prom_ABC")}, wantBalance: 0},
		{name: "no promo code", identity: "02270803628", wantBalance: 0},
		{name: "born 1959", identity: "59010803628", opts: []domain.AccountOption{domain.WithPromoCode("PROM_ABC")}, wantBalance: 0},
		{name: "born 1960 is outside the window", identity: "60010803628", opts: []domain.AccountOption{domain.WithPromoCode("PROM_XYZ")}, wantBalance: 0},
		{name: "born 1961", identity: "61010803628", opts: []domain.AccountOption{domain.WithPromoCode("PROM_XYZ")}, wantBalance: 50},
		{name: "invalid identity", identity: "0227", opts: []domain.AccountOption{domain.WithPromoCode("PROM_ABC")}, wantBalance: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := domain.NewAccount("Jan", "Kowalski", tt.identity, append(tt.opts, clock)...)
			assert.True(t, dec(tt.wantBalance).Equal(acc.Balance()), "balance %s", acc.Balance())
			assert.Empty(t, acc.History(), "promo bonus must not be recorded")
		})
	}
}

func TestAccount_DepositWithdraw(t *testing.T) {
	acc := newTestAccount()

	acc.Deposit(dec(500))
	require.NoError(t, acc.Withdraw(dec(200)))
	acc.Deposit(dec(70))
	require.NoError(t, acc.Withdraw(dec(70)))

	assert.True(t, dec(300).Equal(acc.Balance()))
	assertHistory(t, decs(500, -200, 70, -70), acc.History())
}

func TestAccount_WithdrawInsufficientFunds(t *testing.T) {
	acc := newTestAccount()
	acc.Deposit(dec(100))

	err := acc.Withdraw(dec(101))

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.True(t, dec(100).Equal(acc.Balance()))
	assertHistory(t, decs(100), acc.History())
}

func TestAccount_ExpressTransfer(t *testing.T) {
	acc := newTestAccount()
	acc.Deposit(dec(500))

	require.NoError(t, acc.ExpressTransfer(dec(100)))

	assert.True(t, dec(399).Equal(acc.Balance()))
	assertHistory(t, decs(500, -100, -1), acc.History())
}

func TestAccount_ExpressTransferFeeMayOverdraw(t *testing.T) {
	acc := newTestAccount()
	acc.Deposit(dec(100))

	require.NoError(t, acc.ExpressTransfer(dec(100)))

	assert.True(t, dec(-1).Equal(acc.Balance()))
	assertHistory(t, decs(100, -100, -1), acc.History())
}

func TestAccount_ExpressTransferInsufficientFunds(t *testing.T) {
	acc := newTestAccount()
	acc.Deposit(dec(50))

	err := acc.ExpressTransfer(dec(51))

	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.True(t, dec(50).Equal(acc.Balance()))
	assertHistory(t, decs(50), acc.History())
}

func TestAccount_HistoryIsACopy(t *testing.T) {
	acc := newTestAccount()
	acc.Deposit(dec(10))

	h := acc.History()
	h[0] = dec(999)

	assertHistory(t, decs(10), acc.History())
}

func TestAccount_SubmitForLoan(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(a *domain.Account)
		amount   int64
		approved bool
	}{
		{
			name: "last five sum equals amount",
			setup: func(a *domain.Account) {
				a.Deposit(dec(100))
				_ = a.Withdraw(dec(20))
				a.Deposit(dec(50))
				a.Deposit(dec(40))
				a.Deposit(dec(30))
			},
			amount:   200,
			approved: true,
		},
		{
			name: "last five sum below amount and last three not all incoming",
			setup: func(a *domain.Account) {
				a.Deposit(dec(100))
				a.Deposit(dec(100))
				a.Deposit(dec(100))
				_ = a.Withdraw(dec(50))
				a.Deposit(dec(10))
			},
			amount:   500,
			approved: false,
		},
		{
			name: "last three incoming",
			setup: func(a *domain.Account) {
				a.Deposit(dec(1))
				a.Deposit(dec(2))
				a.Deposit(dec(3))
			},
			amount:   1000,
			approved: true,
		},
		{
			name: "last three contain an outgoing entry",
			setup: func(a *domain.Account) {
				a.Deposit(dec(100))
				_ = a.Withdraw(dec(10))
				a.Deposit(dec(20))
			},
			amount:   10,
			approved: false,
		},
		{
			name: "zero entry is not incoming",
			setup: func(a *domain.Account) {
				a.Deposit(dec(10))
				a.Deposit(dec(0))
				a.Deposit(dec(10))
			},
			amount:   5,
			approved: false,
		},
		{
			name: "two entries are never enough",
			setup: func(a *domain.Account) {
				a.Deposit(dec(1000))
				a.Deposit(dec(1000))
			},
			amount:   1,
			approved: false,
		},
		{
			name:     "empty history",
			setup:    func(a *domain.Account) {},
			amount:   1,
			approved: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := newTestAccount()
			tt.setup(acc)
			before := acc.Balance()
			historyBefore := acc.History()

			got := acc.SubmitForLoan(dec(tt.amount))

			assert.Equal(t, tt.approved, got)
			if tt.approved {
				assert.True(t, before.Add(dec(tt.amount)).Equal(acc.Balance()))
				assertHistory(t, append(historyBefore, dec(tt.amount)), acc.History())
			} else {
				assert.True(t, before.Equal(acc.Balance()))
				assertHistory(t, historyBefore, acc.History())
			}
		})
	}
}

func TestAccount_SendHistoryViaEmail(t *testing.T) {
	ctx := context.Background()
	wantSubject := "Account Transfer History 2026-10-19"

	tests := []struct {
		name    string
		sent    bool
		sendErr error
		want    bool
	}{
		{name: "sent", sent: true, want: true},
		{name: "not sent", sent: false, want: false},
		{name: "sender error", sent: true, sendErr: assert.AnError, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := newTestAccount()
			acc.Deposit(dec(100))
			acc.Deposit(dec(500))
			require.NoError(t, acc.ExpressTransfer(dec(0)))

			notifier := new(MockNotifier)
			notifier.On("Send", ctx, wantSubject, "Personal account history: [100, 500, 0, -1]", "person@example.com").
				Return(tt.sent, tt.sendErr).Once()

			got := acc.SendHistoryViaEmail(ctx, notifier, "person@example.com")

			assert.Equal(t, tt.want, got)
			notifier.AssertExpectations(t)
		})
	}
}

func TestAccount_SendHistoryViaEmail_NilNotifier(t *testing.T) {
	acc := newTestAccount()
	assert.False(t, acc.SendHistoryViaEmail(context.Background(), nil, "person@example.com"))
}

func TestAccount_CloneIsDetached(t *testing.T) {
	acc := newTestAccount()
	acc.Deposit(dec(100))

	clone := acc.Clone()
	clone.Deposit(dec(50))
	clone.FirstName = "Anna"
	acc.Deposit(dec(7))

	assert.True(t, acc.Identity().Equal(clone.Identity()))
	assert.Equal(t, "Jan", acc.FirstName)
	assert.True(t, dec(107).Equal(acc.Balance()))
	assertHistory(t, decs(100, 7), acc.History())
	assert.True(t, dec(150).Equal(clone.Balance()))
	assertHistory(t, decs(100, 50), clone.History())
}
