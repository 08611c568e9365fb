package exception

import "github.com/yanun0323/errors"

// General errors
var (
	ErrNilInstance         = errors.New("nil instance")
	ErrTypeUnsupported     = errors.New("type unsupported")
	ErrArgumentUnsupported = errors.New("argument unsupported")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrDivisionByZero      = errors.New("numeric: division by zero")
)

// Normalization errors
var (
	// ErrMalformedResponse is returned when a record misses a field required to identify it.
	// It is fatal to that record only.
	ErrMalformedResponse = errors.New("normalize: malformed response")

	// ErrAmbiguousDerivation signals that a derived field cannot be reconstructed from the
	// available inputs. Normalizers resolve it by leaving the field undefined.
	ErrAmbiguousDerivation = errors.New("normalize: ambiguous derivation")

	ErrEmptyPayload = errors.New("normalize: empty payload")
)
