package parser

import "errors"

var (
	// ErrUnrecognizedScheme means no known share-link prefix matched.
	ErrUnrecognizedScheme = errors.New("unrecognized scheme")
	// ErrUnsupportedScheme means the prefix is known but cannot be converted.
	ErrUnsupportedScheme    = errors.New("unsupported scheme")
	ErrMalformedAddress     = errors.New("malformed address")
	ErrInvalidEncoding      = errors.New("invalid encoding")
	ErrMissingRequiredField = errors.New("missing required field")
)
