package bcbp

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedHeader   = errors.New("malformed header")
	ErrNoLegsFound       = errors.New("no flight legs found")
	ErrInvalidDateCode   = errors.New("invalid day-of-year code")
	ErrUnsupportedFormat = errors.New("unsupported payload format")
)

// DecodeError ties a decode failure to the payload it came from.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Kind names the failure category of err for reporting and metrics.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrMalformedHeader):
		return "malformed_header"
	case errors.Is(err, ErrNoLegsFound):
		return "no_legs_found"
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported_format"
	default:
		return "unknown"
	}
}
