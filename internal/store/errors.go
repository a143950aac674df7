package store

import "errors"

var (
	// ErrInvalidInput is returned by Add when the text is empty after trimming.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIDExhausted is returned when the id source keeps repeating ids this store already issued.
	ErrIDExhausted = errors.New("id source exhausted")
)
