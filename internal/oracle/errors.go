package oracle

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks network or timeout failures talking to an oracle.
// Callers propagate it; the core never retries silently.
var ErrUnavailable = errors.New("oracle unavailable")

// ErrMalformedResponse marks an oracle reply that failed to parse as the
// expected structure. It is a hard failure of that stage; raw text is never
// passed through as if it were valid.
var ErrMalformedResponse = errors.New("malformed oracle response")

// UnsupportedProviderError is returned for an unknown provider name.
type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unknown oracle provider: %s (supported: openai)", e.Provider)
}

// unavailable wraps a transport error in ErrUnavailable.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}

// malformed wraps a parse failure in ErrMalformedResponse.
func malformed(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, op, err)
}
