// Package bigint provides a nonnegative arbitrary-precision integer, Int,
// sufficient to represent element values and subset sums for any N the search
// engine is asked to handle — including N large enough that 2^(N-1) overflows
// a native machine word.
//
// Int is a thin, value-oriented wrapper around math/big.Int. It exists so the
// rest of this module (sumset, search) depends on a small, purpose-built
// surface — Add, AddUint64, Cmp, Sign, Hash, String — rather than the much
// larger math/big API.
//
// Errors:
//
//	ErrNegative - an operation would have produced (or was seeded with) a
//	              negative value, which this type does not represent.
package bigint

import (
	"errors"
	"math/big"
	"math/bits"
)

// ErrNegative indicates an attempted negative value; Int only holds nonnegative integers.
var ErrNegative = errors.New("bigint: negative value not representable")

// Int is a nonnegative arbitrary-precision integer.
//
// The zero value is a valid representation of 0 and is ready to use; callers
// never need to call a constructor before using an Int as a field or local.
type Int struct {
	v big.Int
}

// FromInt64 builds an Int from n. Returns ErrNegative if n < 0.
func FromInt64(n int64) (Int, error) {
	if n < 0 {
		return Int{}, ErrNegative
	}

	var out Int
	out.v.SetInt64(n)

	return out, nil
}

// FromUint64 builds an Int from n. Never fails: uint64 is always nonnegative.
func FromUint64(n uint64) Int {
	var out Int
	out.v.SetUint64(n)

	return out
}

// Add returns a new Int equal to a + b. Neither operand is mutated.
func Add(a, b Int) Int {
	var out Int
	out.v.Add(&a.v, &b.v)

	return out
}

// AddUint64 returns a new Int equal to a + n. a is not mutated.
func AddUint64(a Int, n uint64) Int {
	var delta big.Int
	delta.SetUint64(n)

	var out Int
	out.v.Add(&a.v, &delta)

	return out
}

// One returns the Int value 1.
func One() Int { return FromUint64(1) }

// Lsh returns a << n (a multiplied by 2^n), used to derive the engine's
// default initial bound 2^(N-1)+1 without overflowing a native word for large N.
func Lsh(a Int, n uint) Int {
	var out Int
	out.v.Lsh(&a.v, n)

	return out
}

// Cmp returns -1, 0, or +1 as a is less than, equal to, or greater than b.
func Cmp(a, b Int) int {
	return a.v.Cmp(&b.v)
}

// Sign returns -1, 0, or +1 depending on the sign of a. For a well-formed Int
// (one never seeded with a negative value) this is either 0 or +1.
func (a Int) Sign() int {
	return a.v.Sign()
}

// IsZero reports whether a is exactly zero.
func (a Int) IsZero() bool {
	return a.v.Sign() == 0
}

// String renders a in base 10.
func (a Int) String() string {
	return a.v.String()
}

// Uint64 returns a's value as a uint64, truncating silently if a does not fit
// (callers that need the exact arbitrary-precision value must use String or
// the exported big.Int accessor, Big).
func (a Int) Uint64() uint64 {
	return a.v.Uint64()
}

// Big exposes the underlying *big.Int for callers (e.g. resultstore) that need
// to format or parse against other big.Int-based code. The returned pointer
// must not be mutated; callers that need a mutable copy should set a new
// big.Int from it.
func (a *Int) Big() *big.Int {
	return &a.v
}

// SetString parses s (base 10) into a new Int. Returns ErrNegative for a
// syntactically valid negative number, and a generic parse error otherwise.
func SetString(s string) (Int, error) {
	var v big.Int
	parsed, ok := v.SetString(s, 10)
	if !ok {
		return Int{}, errors.New("bigint: invalid decimal string")
	}
	if parsed.Sign() < 0 {
		return Int{}, ErrNegative
	}

	return Int{v: *parsed}, nil
}

// Hash returns a 64-bit digest of a, suitable as a key into the hand-rolled
// hash set used by sumset.IndexedOracle. The mixer combines the low-order
// limbs of the underlying big.Int with rotations, per the collision-resistance
// requirement in the oracle's design: average bucket depth must stay O(1)
// across millions of insert/remove cycles.
func (a Int) Hash() uint64 {
	words := a.v.Bits()
	if len(words) == 0 {
		return fnvOffset
	}

	var h uint64 = fnvOffset
	for i, w := range words {
		limb := uint64(w)
		rot := uint(i%7) * 9
		mixed := bits.RotateLeft64(limb, int(rot))
		h ^= mixed
		h *= fnvPrime
	}

	return h
}

const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)
