package repos

import "errors"

// ErrNotFound is returned by lookups whose target row does not exist.
// Handlers translate it to a 404.
var ErrNotFound = errors.New("record not found")
