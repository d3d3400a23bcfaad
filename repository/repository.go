package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist. Implementations
// translate their driver's not-found condition into this sentinel so callers
// never depend on gorm error values.
var ErrNotFound = errors.New("record not found")
