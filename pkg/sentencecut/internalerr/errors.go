package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrEmptyInput        = errors.New("input table has no data rows")
	ErrInvalidDictionary = errors.New("invalid keyword dictionary")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrTransform         = errors.New("transformation failed")
)
