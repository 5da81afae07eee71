package repository

import "errors"

// Errors returned by every repository implementation regardless of backend.
// The mongo implementations translate driver errors into these so usecases
// never depend on a particular storage backend.
var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicateKey = errors.New("unique index violation")
)
