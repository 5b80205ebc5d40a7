package bloom

import (
	"fmt"
	"math"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// ln(1/2^ln2), the denominator shared by the m-from-n and n-from-m solutions.
var lnHalfPowLn2 = math.Log(1 / math.Pow(2, math.Ln2))

// Params is a calculator for filter dimensions. Each of the four values is
// optional; Resolve fills in the unknowns for the supported combinations.
//
//   - m = number of bits
//   - n = capacity of the filter
//   - k = number of hashes per key
//   - p = false-positive rate at capacity
type Params struct {
	m fn.Option[uint64]
	n fn.Option[uint64]
	k fn.Option[uint64]
	p fn.Option[float64]
}

// Resolved is a complete, consistent set of filter parameters.
type Resolved struct {
	M uint64
	N uint64
	K uint64
	P float64
}

// ParamOption sets one of the known values of a Params.
type ParamOption func(*Params)

// WithBits sets m, the number of bits.
func WithBits(m uint64) ParamOption { return func(p *Params) { p.SetBits(m) } }

// WithCapacity sets n, the number of keys the filter is designed for.
func WithCapacity(n uint64) ParamOption { return func(p *Params) { p.SetCapacity(n) } }

// WithHashes sets k, the number of hashes per key.
func WithHashes(k uint64) ParamOption { return func(p *Params) { p.SetHashes(k) } }

// WithFalsePositive sets p, see SetFalsePositive.
func WithFalsePositive(fp float64) ParamOption {
	return func(p *Params) { p.SetFalsePositive(fp) }
}

// NewParams returns a calculator with the known values set by opts.
func NewParams(opts ...ParamOption) *Params {
	p := &Params{}
	for _, o := range opts {
		o(p)
	}
	return p
}

// SetBits sets m.
func (p *Params) SetBits(m uint64) { p.m = fn.Some(m) }

// SetCapacity sets n.
func (p *Params) SetCapacity(n uint64) { p.n = fn.Some(n) }

// SetHashes sets k.
func (p *Params) SetHashes(k uint64) { p.k = fn.Some(k) }

// SetFalsePositive sets the false-positive rate. A value greater than 1 is
// read as "1 in fp" and stored as 1/fp.
func (p *Params) SetFalsePositive(fp float64) {
	if fp > 1 {
		fp = 1 / fp
	}
	p.p = fn.Some(fp)
}

// Bits, Capacity, Hashes and FalsePositive return the known values.
func (p *Params) Bits() fn.Option[uint64]           { return p.m }
func (p *Params) Capacity() fn.Option[uint64]       { return p.n }
func (p *Params) Hashes() fn.Option[uint64]         { return p.k }
func (p *Params) FalsePositive() fn.Option[float64] { return p.p }

// Resolve computes the unknown parameters. The supported combinations of
// known values are:
//
//	m, k, n -> p     the false-positive rate of an existing filter
//	n, p    -> m, k  what is needed for n keys at rate p
//	m, n    -> k, p  what m bits give for n keys
//	m, p    -> k, n  how many keys m bits hold at rate p
//
// Whenever k is derived it is rounded to an integer and p is recomputed from
// the rounded k, so the returned P can differ slightly from a requested rate.
// Any other combination fails with ErrNotSupported.
func (p *Params) Resolve() (Resolved, error) {
	m, n, k := p.m.UnwrapOr(0), p.n.UnwrapOr(0), p.k.UnwrapOr(0)
	fp := p.p.UnwrapOr(0)

	known := [4]bool{p.m.IsSome(), p.k.IsSome(), p.n.IsSome(), p.p.IsSome()}
	switch known {
	case [4]bool{true, true, true, false}:
		if err := checkPositive(m, n, k); err != nil {
			return Resolved{}, err
		}
		fp = falsePositiveRate(m, n, k)

	case [4]bool{false, false, true, true}:
		if err := checkPositive(n); err != nil {
			return Resolved{}, err
		}
		if err := checkRate(fp); err != nil {
			return Resolved{}, err
		}
		m = uint64(math.Ceil(float64(n) * math.Log(fp) / lnHalfPowLn2))
		k = optimalHashes(m, n)
		fp = falsePositiveRate(m, n, k)

	case [4]bool{true, false, true, false}:
		if err := checkPositive(m, n); err != nil {
			return Resolved{}, err
		}
		k = optimalHashes(m, n)
		fp = falsePositiveRate(m, n, k)

	case [4]bool{true, false, false, true}:
		if err := checkPositive(m); err != nil {
			return Resolved{}, err
		}
		if err := checkRate(fp); err != nil {
			return Resolved{}, err
		}
		n = uint64(math.Ceil(float64(m) * lnHalfPowLn2 / math.Log(fp)))
		k = optimalHashes(m, n)
		fp = falsePositiveRate(m, n, k)

	default:
		return Resolved{}, fmt.Errorf(
			"%w: known m=%t k=%t n=%t p=%t", ErrNotSupported,
			known[0], known[1], known[2], known[3])
	}

	return Resolved{M: m, N: n, K: k, P: fp}, nil
}

// BuildFilter resolves the parameters and returns an empty filter with m
// rounded up to a multiple of 8.
func (p *Params) BuildFilter(opts ...Option) (*Filter, error) {
	r, err := p.Resolve()
	if err != nil {
		return nil, err
	}
	m := (r.M + 7) &^ 7
	newOptions(opts...).debugf("bloom: resolved m=%d (%d) n=%d k=%d p=%g", m, r.M, r.N, r.K, r.P)
	return New(m, r.K, opts...)
}

// falsePositiveRate is (1 - e^(-k/r))^k with load factor r = m/n.
func falsePositiveRate(m, n, k uint64) float64 {
	r := float64(m) / float64(n)
	q := math.Exp(-float64(k) / r)
	return math.Pow(1-q, float64(k))
}

// optimalHashes is round(ln2 * m/n).
func optimalHashes(m, n uint64) uint64 {
	return uint64(math.Round(math.Ln2 * float64(m) / float64(n)))
}

func checkPositive(values ...uint64) error {
	for _, v := range values {
		if v == 0 {
			return fmt.Errorf("%w: m, n and k must be >0", ErrBadParam)
		}
	}
	return nil
}

func checkRate(fp float64) error {
	if !(fp > 0 && fp < 1) {
		return fmt.Errorf("%w: false-positive rate must be in (0, 1), got %g", ErrBadParam, fp)
	}
	return nil
}
