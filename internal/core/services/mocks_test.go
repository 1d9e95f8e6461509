package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockNotifier is a mock type for the domain.Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, subject, text, address string) (bool, error) {
	args := m.Called(ctx, subject, text, address)
	return args.Bool(0), args.Error(1)
}

// MockCompanyVerifier is a mock type for the domain.CompanyVerifier interface
type MockCompanyVerifier struct {
	mock.Mock
}

func (m *MockCompanyVerifier) VerifyCompany(ctx context.Context, taxNumber string, on time.Time) (bool, error) {
	args := m.Called(ctx, taxNumber, on)
	return args.Bool(0), args.Error(1)
}
