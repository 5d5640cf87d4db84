package catalog

import "errors"

// ErrEntryNotFound is returned when no active entry matches the id.
var ErrEntryNotFound = errors.New("catalog entry not found")
