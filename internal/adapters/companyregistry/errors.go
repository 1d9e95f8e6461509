package companyregistry

import (
	"errors"
	"fmt"
)

// Category classifies why a registry lookup failed.
type Category string

const (
	// CategoryNetwork indicates the registry could not be reached.
	CategoryNetwork Category = "network"

	// CategoryTimeout indicates the registry took too long to respond.
	CategoryTimeout Category = "timeout"

	// CategoryBadStatus indicates the registry answered with a non-200 status.
	CategoryBadStatus Category = "bad_status"

	// CategoryParse indicates the registry answered with a body we could not decode.
	CategoryParse Category = "parse"
)

// LookupError describes a failed registry lookup.
type LookupError struct {
	Category   Category
	TaxNumber  string
	StatusCode int
	Underlying error
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("company registry lookup for %s [%s]", e.TaxNumber, e.Category)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Underlying != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Underlying)
	}
	return msg
}

func (e *LookupError) Unwrap() error {
	return e.Underlying
}

// CategoryOf extracts the failure category from err, or "" when err is not a *LookupError.
func CategoryOf(err error) Category {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Category
	}
	return ""
}
