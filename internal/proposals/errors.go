package proposals

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnparseableModel = errors.New("model output is not valid JSON")
)
