package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_demo_app/internal/apperrors"
	"github.com/SscSPs/bank_demo_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_demo_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_demo_app/internal/core/ports/services"
	"github.com/SscSPs/bank_demo_app/internal/dto"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accounts portsrepo.AccountRegistry[*domain.Account]
}

// NewAccountService creates a new personal account service with the provided options
func NewAccountService(accounts portsrepo.AccountRegistry[*domain.Account], options ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(options...),
		accounts:    accounts,
	}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	opts := []domain.AccountOption{domain.WithClock(s.Clock)}
	if req.PromoCode != nil {
		opts = append(opts, domain.WithPromoCode(*req.PromoCode))
	}

	account := domain.NewAccount(req.Name, req.Surname, req.Pesel, opts...)
	if !account.Identity().IsValid() {
		s.LogInfo(ctx, "Personal identity number has the wrong length, storing as invalid",
			slog.Int("length", len(req.Pesel)))
	}

	// Snapshot before registering so the response cannot race later mutations.
	resp := dto.ToAccountResponse(account)
	if err := s.accounts.Add(account); err != nil {
		s.LogWarn(ctx, err, "Failed to register account", slog.String("pesel", req.Pesel))
		return nil, fmt.Errorf("failed to register account %s: %w", req.Pesel, err)
	}

	s.Metrics.IncrementAccountCreated(kindPersonal)
	s.LogInfo(ctx, "Account created successfully",
		slog.String("pesel", resp.Pesel),
		slog.String("balance", resp.Balance.String()))
	return &resp, nil
}

func (s *accountService) GetAccount(ctx context.Context, pesel string) (*dto.AccountResponse, error) {
	var resp dto.AccountResponse
	err := s.accounts.Do(pesel, func(acc *domain.Account) error {
		resp = dto.ToAccountResponse(acc)
		return nil
	})
	if err != nil {
		s.logLookupFailure(ctx, err, "Failed to get account", pesel)
		return nil, err
	}
	return &resp, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]dto.AccountResponse, error) {
	resp := make([]dto.AccountResponse, 0, s.accounts.Count())
	s.accounts.Range(func(acc *domain.Account) {
		resp = append(resp, dto.ToAccountResponse(acc))
	})
	s.LogDebug(ctx, "Listed accounts", slog.Int("count", len(resp)))
	return resp, nil
}

func (s *accountService) CountAccounts(ctx context.Context) (int, error) {
	return s.accounts.Count(), nil
}

func (s *accountService) UpdateAccount(ctx context.Context, pesel string, req dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	var resp dto.AccountResponse
	err := s.accounts.Do(pesel, func(acc *domain.Account) error {
		if req.Name != nil {
			acc.FirstName = *req.Name
		}
		if req.Surname != nil {
			acc.LastName = *req.Surname
		}
		resp = dto.ToAccountResponse(acc)
		return nil
	})
	if err != nil {
		s.logLookupFailure(ctx, err, "Failed to update account", pesel)
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("pesel", pesel))
	return &resp, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, pesel string) error {
	if !s.accounts.DeleteByIdentity(pesel) {
		err := fmt.Errorf("account %s: %w", pesel, apperrors.ErrNotFound)
		s.logLookupFailure(ctx, err, "Failed to delete account", pesel)
		return err
	}
	s.LogInfo(ctx, "Account deleted successfully", slog.String("pesel", pesel))
	return nil
}

func (s *accountService) Transfer(ctx context.Context, pesel string, req dto.TransferRequest) (*dto.AccountResponse, error) {
	var resp dto.AccountResponse
	err := s.accounts.Do(pesel, func(acc *domain.Account) error {
		if err := applyTransfer(acc, req); err != nil {
			return err
		}
		resp = dto.ToAccountResponse(acc)
		return nil
	})
	s.Metrics.IncrementTransfer(kindPersonal, string(req.Type), transferOutcome(err))
	if err != nil {
		s.logLookupFailure(ctx, err, "Transfer rejected", pesel,
			slog.String("type", string(req.Type)),
			slog.String("amount", req.Amount.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer booked",
		slog.String("pesel", pesel),
		slog.String("type", string(req.Type)),
		slog.String("amount", req.Amount.String()))
	return &resp, nil
}

func (s *accountService) RequestLoan(ctx context.Context, pesel string, amount decimal.Decimal) (bool, error) {
	if !amount.IsPositive() {
		return false, fmt.Errorf("loan amount must be positive: %w", apperrors.ErrValidation)
	}

	var approved bool
	err := s.accounts.Do(pesel, func(acc *domain.Account) error {
		approved = acc.SubmitForLoan(amount)
		return nil
	})
	if err != nil {
		s.logLookupFailure(ctx, err, "Loan request failed", pesel)
		return false, err
	}

	s.Metrics.IncrementLoanDecision(kindPersonal, approved)
	s.LogInfo(ctx, "Loan evaluated",
		slog.String("pesel", pesel),
		slog.String("amount", amount.String()),
		slog.Bool("approved", approved))
	return approved, nil
}

func (s *accountService) EmailHistory(ctx context.Context, pesel string, address string) (bool, error) {
	// The send may block on a broker, so it works on a detached copy
	// instead of holding the registry lock.
	var snapshot *domain.Account
	err := s.accounts.Do(pesel, func(acc *domain.Account) error {
		snapshot = acc.Clone()
		return nil
	})
	if err != nil {
		s.logLookupFailure(ctx, err, "History email failed", pesel)
		return false, err
	}

	sent := snapshot.SendHistoryViaEmail(ctx, s.Notifier, address)
	s.Metrics.IncrementHistoryEmail(kindPersonal, sent)
	s.LogInfo(ctx, "History email processed", slog.String("pesel", pesel), slog.Bool("sent", sent))
	return sent, nil
}
