package bloom

import (
	"errors"
	"fmt"

	"github.com/forestrie/go-blooming/bitarray"
)

const (
	// DigestBits is the width of one SHA-512 invocation.
	DigestBits = 512

	// SaturationLimit is the fraction of set bits above which a filter is
	// considered full.
	SaturationLimit = 0.5

	// MaxBits is the exclusive upper bound on m.
	MaxBits uint64 = 1 << 32

	// lane16Limit is the exclusive upper bound on m for 16 bit lanes.
	lane16Limit uint64 = 1 << 16
)

// ErrInvalidArgument wraps bitarray.ErrInvalidArgument, so errors.Is matches
// either sentinel regardless of which layer rejected the argument.
var ErrInvalidArgument error = &layerError{
	msg:    "bloom: invalid argument",
	parent: bitarray.ErrInvalidArgument,
}

var (
	ErrNotSupported = errors.New("bloom: parameter combination not supported")

	ErrHugeFilter  = fmt.Errorf("%w: huge filters are unsupported, use multiple smaller ones", ErrInvalidArgument)
	ErrBadMBits    = fmt.Errorf("%w: m must be >0, and multiple of 8", ErrInvalidArgument)
	ErrBadK        = fmt.Errorf("%w: k must be >0", ErrInvalidArgument)
	ErrFilterBytes = fmt.Errorf("%w: filter byte length mismatch", ErrInvalidArgument)
	ErrBadParam    = fmt.Errorf("%w: parameter out of range", ErrInvalidArgument)
)

// layerError carries its own message and unwraps to the equivalent error of
// a lower layer.
type layerError struct {
	msg    string
	parent error
}

func (e *layerError) Error() string { return e.msg }
func (e *layerError) Unwrap() error { return e.parent }
