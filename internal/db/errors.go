package db

import "errors"

// Domain-level database error sentinels.
var (
	ErrRunNotFound = errors.New("run not found")
)
