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

// businessAccountService implements the BusinessAccountSvcFacade interface
type businessAccountService struct {
	BaseService
	accounts portsrepo.AccountRegistry[*domain.BusinessAccount]
	verifier domain.CompanyVerifier
}

// NewBusinessAccountService creates a new company account service. verifier
// confirms companies with the external registry before they are registered.
func NewBusinessAccountService(accounts portsrepo.AccountRegistry[*domain.BusinessAccount], verifier domain.CompanyVerifier, options ...ServiceOption) portssvc.BusinessAccountSvcFacade {
	return &businessAccountService{
		BaseService: newBaseService(options...),
		accounts:    accounts,
		verifier:    verifier,
	}
}

var _ portssvc.BusinessAccountSvcFacade = (*businessAccountService)(nil)

func (s *businessAccountService) CreateBusinessAccount(ctx context.Context, req dto.CreateBusinessAccountRequest) (*dto.BusinessAccountResponse, error) {
	// The registry round-trip happens before the account registry lock is taken.
	account, err := domain.NewBusinessAccount(ctx, req.CompanyName, req.NIP, s.verifier, domain.WithClock(s.Clock))
	if err != nil {
		s.LogWarn(ctx, err, "Company registration rejected", slog.String("nip", req.NIP))
		return nil, err
	}

	resp := dto.ToBusinessAccountResponse(account)
	if err := s.accounts.Add(account); err != nil {
		s.LogWarn(ctx, err, "Failed to register business account", slog.String("nip", req.NIP))
		return nil, fmt.Errorf("failed to register business account %s: %w", req.NIP, err)
	}

	s.Metrics.IncrementAccountCreated(kindBusiness)
	s.LogInfo(ctx, "Business account created successfully", slog.String("nip", resp.NIP))
	return &resp, nil
}

func (s *businessAccountService) GetBusinessAccount(ctx context.Context, nip string) (*dto.BusinessAccountResponse, error) {
	var resp dto.BusinessAccountResponse
	err := s.accounts.Do(nip, func(acc *domain.BusinessAccount) error {
		resp = dto.ToBusinessAccountResponse(acc)
		return nil
	})
	if err != nil {
		s.logLookupFailure(ctx, err, "Failed to get business account", nip)
		return nil, err
	}
	return &resp, nil
}

func (s *businessAccountService) ListBusinessAccounts(ctx context.Context) ([]dto.BusinessAccountResponse, error) {
	resp := make([]dto.BusinessAccountResponse, 0, s.accounts.Count())
	s.accounts.Range(func(acc *domain.BusinessAccount) {
		resp = append(resp, dto.ToBusinessAccountResponse(acc))
	})
	return resp, nil
}

func (s *businessAccountService) CountBusinessAccounts(ctx context.Context) (int, error) {
	return s.accounts.Count(), nil
}

func (s *businessAccountService) UpdateBusinessAccount(ctx context.Context, nip string, req dto.UpdateBusinessAccountRequest) (*dto.BusinessAccountResponse, error) {
	var resp dto.BusinessAccountResponse
	err := s.accounts.Do(nip, func(acc *domain.BusinessAccount) error {
		if req.CompanyName != nil {
			acc.CompanyName = *req.CompanyName
		}
		resp = dto.ToBusinessAccountResponse(acc)
		return nil
	})
	if err != nil {
		s.logLookupFailure(ctx, err, "Failed to update business account", nip)
		return nil, err
	}
	s.LogInfo(ctx, "Business account updated successfully", slog.String("nip", nip))
	return &resp, nil
}

func (s *businessAccountService) DeleteBusinessAccount(ctx context.Context, nip string) error {
	if !s.accounts.DeleteByIdentity(nip) {
		err := fmt.Errorf("business account %s: %w", nip, apperrors.ErrNotFound)
		s.logLookupFailure(ctx, err, "Failed to delete business account", nip)
		return err
	}
	s.LogInfo(ctx, "Business account deleted successfully", slog.String("nip", nip))
	return nil
}

func (s *businessAccountService) Transfer(ctx context.Context, nip string, req dto.TransferRequest) (*dto.BusinessAccountResponse, error) {
	var resp dto.BusinessAccountResponse
	err := s.accounts.Do(nip, func(acc *domain.BusinessAccount) error {
		if err := applyTransfer(acc, req); err != nil {
			return err
		}
		resp = dto.ToBusinessAccountResponse(acc)
		return nil
	})
	s.Metrics.IncrementTransfer(kindBusiness, string(req.Type), transferOutcome(err))
	if err != nil {
		s.logLookupFailure(ctx, err, "Business transfer rejected", nip,
			slog.String("type", string(req.Type)),
			slog.String("amount", req.Amount.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Business transfer booked",
		slog.String("nip", nip),
		slog.String("type", string(req.Type)),
		slog.String("amount", req.Amount.String()))
	return &resp, nil
}

func (s *businessAccountService) TakeLoan(ctx context.Context, nip string, amount decimal.Decimal) (bool, error) {
	if !amount.IsPositive() {
		return false, fmt.Errorf("loan amount must be positive: %w", apperrors.ErrValidation)
	}

	var approved bool
	err := s.accounts.Do(nip, func(acc *domain.BusinessAccount) error {
		approved = acc.TakeLoan(amount)
		return nil
	})
	if err != nil {
		s.logLookupFailure(ctx, err, "Business loan request failed", nip)
		return false, err
	}

	s.Metrics.IncrementLoanDecision(kindBusiness, approved)
	s.LogInfo(ctx, "Business loan evaluated",
		slog.String("nip", nip),
		slog.String("amount", amount.String()),
		slog.Bool("approved", approved))
	return approved, nil
}

func (s *businessAccountService) EmailHistory(ctx context.Context, nip string, address string) (bool, error) {
	var snapshot *domain.BusinessAccount
	err := s.accounts.Do(nip, func(acc *domain.BusinessAccount) error {
		snapshot = acc.Clone()
		return nil
	})
	if err != nil {
		s.logLookupFailure(ctx, err, "Business history email failed", nip)
		return false, err
	}

	sent := snapshot.SendHistoryViaEmail(ctx, s.Notifier, address)
	s.Metrics.IncrementHistoryEmail(kindBusiness, sent)
	s.LogInfo(ctx, "Business history email processed", slog.String("nip", nip), slog.Bool("sent", sent))
	return sent, nil
}
