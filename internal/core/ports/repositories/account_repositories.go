package repositories

import "github.com/SscSPs/bank_demo_app/internal/core/domain"

// AccountReader defines read operations over registered accounts
type AccountReader[T domain.Identifiable] interface {
	// FindByIdentity retrieves the account with the given identity number.
	FindByIdentity(id string) (T, bool)

	// ListAll returns every account in insertion order.
	ListAll() []T

	// Count returns the number of registered accounts.
	Count() int
}

// AccountWriter defines write operations over registered accounts
type AccountWriter[T domain.Identifiable] interface {
	// Add registers a new account; duplicates are rejected.
	Add(account T) error

	// DeleteByIdentity removes an account and reports whether it existed.
	DeleteByIdentity(id string) bool
}

// AccountLocker runs callbacks atomically with respect to other registry operations
type AccountLocker[T domain.Identifiable] interface {
	// Do runs fn on one account under the registry lock.
	Do(id string, fn func(T) error) error

	// Range runs fn on every account under the registry lock.
	Range(fn func(T))
}

// AccountRegistry combines all account registry interfaces
type AccountRegistry[T domain.Identifiable] interface {
	AccountReader[T]
	AccountWriter[T]
	AccountLocker[T]
}
