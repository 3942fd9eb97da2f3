package repository

import "errors"

// ErrNotFound is returned by mutations whose WHERE clause matched no row,
// so handlers can distinguish a missing record from a database failure.
var ErrNotFound = errors.New("record not found")
