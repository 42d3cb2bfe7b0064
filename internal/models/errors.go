package models

import "errors"

// Sentinel errors for the evaluation pipeline. ErrDataUnavailable and
// ErrPriceNotFound degrade only the row that raised them; ErrInvalidInput
// rejects the request before the pipeline runs. ErrInsufficientData is
// never surfaced as a row error; the affected metric is simply null.
var (
	ErrDataUnavailable  = errors.New("no market data available")
	ErrPriceNotFound    = errors.New("price not found in history")
	ErrInsufficientData = errors.New("insufficient data")
	ErrInvalidInput     = errors.New("invalid input")
)
