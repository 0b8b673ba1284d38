package repository

import "errors"

// ErrNotFound is returned when the addressed record does not exist.
var ErrNotFound = errors.New("record not found")
