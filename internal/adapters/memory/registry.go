package memory

import (
	"fmt"
	"sync"

	"github.com/SscSPs/bank_demo_app/internal/apperrors"
	"github.com/SscSPs/bank_demo_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_demo_app/internal/core/ports/repositories"
)

// AccountRegistry is an in-memory, insertion-ordered collection of accounts
// keyed by identity. A single mutex guards every operation, including the
// callbacks passed to Do and Range.
type AccountRegistry[T domain.Identifiable] struct {
	mu      sync.Mutex
	entries []T
}

// NewAccountRegistry creates an empty registry.
func NewAccountRegistry[T domain.Identifiable]() *AccountRegistry[T] {
	return &AccountRegistry[T]{}
}

// Ensure AccountRegistry implements the repository port.
var _ portsrepo.AccountRegistry[*domain.Account] = (*AccountRegistry[*domain.Account])(nil)
var _ portsrepo.AccountRegistry[*domain.BusinessAccount] = (*AccountRegistry[*domain.BusinessAccount])(nil)

// Add inserts account, failing with apperrors.ErrDuplicate when an entry with
// an equal identity already exists. Invalid identities never collide.
func (r *AccountRegistry[T]) Add(account T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := account.Identity()
	for _, e := range r.entries {
		if e.Identity().Equal(id) {
			return fmt.Errorf("%w: account with identity %s", apperrors.ErrDuplicate, id)
		}
	}
	r.entries = append(r.entries, account)
	return nil
}

// FindByIdentity returns the entry whose valid identity equals id.
func (r *AccountRegistry[T]) FindByIdentity(id string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return r.entries[i], true
}

// DeleteByIdentity removes the entry whose valid identity equals id and
// reports whether anything was removed.
func (r *AccountRegistry[T]) DeleteByIdentity(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	return true
}

// ListAll returns the current entries in insertion order.
func (r *AccountRegistry[T]) ListAll() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]T, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count returns the number of entries.
func (r *AccountRegistry[T]) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Do runs fn on the entry identified by id while holding the registry lock.
// It returns apperrors.ErrNotFound when no entry matches, otherwise fn's error.
func (r *AccountRegistry[T]) Do(id string, fn func(T) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: account with identity %s", apperrors.ErrNotFound, id)
	}
	return fn(r.entries[i])
}

// Range calls fn for every entry in insertion order while holding the lock.
func (r *AccountRegistry[T]) Range(fn func(T)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		fn(e)
	}
}

// indexOf must be called with r.mu held.
func (r *AccountRegistry[T]) indexOf(id string) int {
	for i, e := range r.entries {
		if e.Identity().Matches(id) {
			return i
		}
	}
	return -1
}
