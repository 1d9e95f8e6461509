package domain

import (
	"context"
	"time"
)

// CompanyVerifier confirms with an external business registry that a company
// was active on the given date. A non-nil error means the lookup itself
// failed; callers treat it the same as an inactive result.
type CompanyVerifier interface {
	VerifyCompany(ctx context.Context, taxNumber string, on time.Time) (bool, error)
}

// Notifier delivers a message to an address and reports whether it was sent.
type Notifier interface {
	Send(ctx context.Context, subject, text, address string) (bool, error)
}
