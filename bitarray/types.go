package bitarray

import (
	"errors"
	"fmt"
)

// Error taxonomy. Callers should match with errors.Is; the more specific
// errors below wrap one of these.
var (
	ErrInvalidArgument  = errors.New("bitarray: invalid argument")
	ErrIndexOutOfBounds = errors.New("bitarray: index out of bounds")
	ErrTypeMismatch     = errors.New("bitarray: type mismatch")
)

var (
	ErrBadSize     = fmt.Errorf("%w: size must be >0, and multiple of 8", ErrInvalidArgument)
	ErrNegativePos = fmt.Errorf("%w: negative positions are not supported", ErrIndexOutOfBounds)
)
