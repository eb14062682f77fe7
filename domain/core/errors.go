package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors: always fatal for the affected domain, never defaulted
	ErrUnknownDomain   = errors.New("no domain profile registered")
	ErrUnpinnedTermSet = errors.New("interaction term version not pinned")
	ErrTermSetNotFound = errors.New("interaction term set not found")
	ErrUnknownLink     = errors.New("unknown link function")
	ErrProfileInvalid  = errors.New("invalid domain profile")
	// ErrTermSetDomainMismatch guards against pinning another domain's terms
	ErrTermSetDomainMismatch = errors.New("term set pinned for a different domain")

	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrReportNotFound = fmt.Errorf("%w: validation report", ErrNotFound)

	// Data errors: recovered locally with confidence flags
	ErrEmptyName          = errors.New("name has no alphabetic content")
	ErrMissingFundamental = errors.New("fundamental field absent")

	// Analysis errors
	ErrInsufficientData   = errors.New("insufficient observations for analysis")
	ErrAllFoldsDegenerate = errors.New("all folds degenerate")
	ErrDegenerateFold     = errors.New("fold has no outcome variation")

	// Determinism errors
	ErrSeedMismatch = errors.New("seed mismatch")
	ErrHashMismatch = errors.New("dataset fingerprint mismatch")
)

// Error constructors with context
func NewUnknownDomainError(domain DomainID) error {
	return fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
}

func NewInsufficientDataError(domain DomainID, have, need int) error {
	return fmt.Errorf("%w: domain %s has %d observations, need %d", ErrInsufficientData, domain, have, need)
}

func NewTermSetNotFoundError(version TermSetID) error {
	return fmt.Errorf("%w: version %s", ErrTermSetNotFound, version)
}

func NewReportNotFoundError(id ReportID) error {
	return fmt.Errorf("%w: id %s", ErrReportNotFound, id)
}

// Error checking helpers
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrUnknownDomain) ||
		errors.Is(err, ErrUnpinnedTermSet) ||
		errors.Is(err, ErrTermSetNotFound) ||
		errors.Is(err, ErrUnknownLink) ||
		errors.Is(err, ErrProfileInvalid) ||
		errors.Is(err, ErrTermSetDomainMismatch)
}

func IsDataError(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrMissingFundamental)
}

func IsInsufficientDataError(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsDegeneracyError(err error) bool {
	return errors.Is(err, ErrAllFoldsDegenerate) ||
		errors.Is(err, ErrDegenerateFold)
}
