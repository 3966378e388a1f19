package entry

import "errors"

var (
	ErrUnknownField = errors.New("unknown field")
	ErrZipDisabled  = errors.New("postal code field is disabled")
)
