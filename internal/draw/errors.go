package draw

import "errors"

var (
	// ErrInvalidDrawConfiguration means count, group count or segment count is
	// out of range for the collection. The draw is not executed.
	ErrInvalidDrawConfiguration = errors.New("invalid draw configuration")

	// ErrEmptyCollection means a draw was attempted on zero items.
	ErrEmptyCollection = errors.New("collection is empty")
)
