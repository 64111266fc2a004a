package metadata

import "errors"

var (
	// ErrSourceUnavailable reports a transport failure or a non-2xx response.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrNoStructuredData reports a page without a usable structured-data block.
	ErrNoStructuredData = errors.New("no structured data")
)
