package repositories

import "errors"

// ErrNotFound is wrapped by repository methods when a record does not exist,
// so services can distinguish missing data from store failures.
var ErrNotFound = errors.New("record not found")
