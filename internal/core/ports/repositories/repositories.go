package repositories

import "github.com/SscSPs/bank_demo_app/internal/core/domain"

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	PersonalAccounts AccountRegistry[*domain.Account]
	BusinessAccounts AccountRegistry[*domain.BusinessAccount]
}
