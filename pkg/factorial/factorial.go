// Package factorial provides a small value object computing n! with a
// cached result. It exists as a teaching example of value semantics and
// once-only computation; nothing else in the application depends on it.
package factorial

import (
	"errors"
	"fmt"
	"math/big"
	"sync"
)

// ErrNegative is returned when constructing a Factorial for n < 0.
var ErrNegative = errors.New("factorial is not defined for negative numbers")

// Factorial computes the factorial of a non-negative integer. The result is
// computed once on first use and cached; a Factorial is safe for concurrent
// use after construction.
type Factorial struct {
	n      int64
	once   sync.Once
	result *big.Int
}

// New validates n and returns a Factorial for it.
func New(n int64) (*Factorial, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegative, n)
	}
	return &Factorial{n: n}, nil
}

// Number returns the integer whose factorial is computed. Two Factorials are
// interchangeable exactly when their numbers are equal, so Number also serves
// as a map key.
func (f *Factorial) Number() int64 {
	return f.n
}

// Value computes n! iteratively, caching the result after the first call.
// The returned value is shared; callers must not mutate it.
func (f *Factorial) Value() *big.Int {
	f.once.Do(func() {
		result := big.NewInt(1)
		for i := int64(2); i <= f.n; i++ {
			result.Mul(result, big.NewInt(i))
		}
		f.result = result
	})
	return f.result
}

// ViaMulRange computes n! through big.Int's product-over-range primitive.
// It always recomputes and is provided for comparison with Value.
func (f *Factorial) ViaMulRange() *big.Int {
	if f.n < 2 {
		return big.NewInt(1)
	}
	return new(big.Int).MulRange(1, f.n)
}

// Equal reports whether two Factorials represent the factorial of the same
// number.
func (f *Factorial) Equal(other *Factorial) bool {
	if other == nil {
		return false
	}
	return f.n == other.n
}

// String implements fmt.Stringer.
func (f *Factorial) String() string {
	return fmt.Sprintf("Factorial(%d)", f.n)
}
