package ir

import (
	"errors"
)

var (
	ErrNilValue     = errors.New("nil value")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrNotContainer = errors.New("not a container")
	ErrRange        = errors.New("integer out of range")
)
