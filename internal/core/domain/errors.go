package domain

import "errors"

var (
	// ErrCatalogMissing reports an unreachable catalog source. Fatal to the
	// session.
	ErrCatalogMissing = errors.New("domain: catalog source missing")

	// ErrCatalogEmpty reports a readable source with zero valid records
	// after filtering. Fatal to the session.
	ErrCatalogEmpty = errors.New("domain: no valid songs in catalog")
)
