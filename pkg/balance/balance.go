// Package balance provides the fixed-point token amount type used across
// the SDK. All arithmetic happens on the integer rao representation; the
// float tao view exists only for construction and display.
package balance

import (
	"fmt"
	"math"
)

// RaoPerTao is the number of rao in one tao.
const RaoPerTao = 1_000_000_000

// Balance is an immutable token amount denominated in rao. The zero value
// is a zero balance. Negative amounts are permitted so that deltas and fees
// can be expressed, but real on-chain balances are non-negative.
type Balance struct {
	Rao int64
}

// FromRao wraps a raw rao amount.
func FromRao(rao int64) Balance {
	return Balance{Rao: rao}
}

// FromTao converts a human-unit tao amount to rao, truncating toward zero.
// Chain amounts are integral rao; any sub-rao fraction is discarded.
func FromTao(tao float64) Balance {
	return Balance{Rao: int64(math.Trunc(tao * RaoPerTao))}
}

// Tao returns the fractional tao view of the amount.
func (b Balance) Tao() float64 {
	return float64(b.Rao) / RaoPerTao
}

// Add returns b + o.
func (b Balance) Add(o Balance) Balance {
	return Balance{Rao: b.Rao + o.Rao}
}

// Sub returns b - o.
func (b Balance) Sub(o Balance) Balance {
	return Balance{Rao: b.Rao - o.Rao}
}

// Cmp compares two balances by rao: -1 if b < o, 0 if equal, 1 if b > o.
func (b Balance) Cmp(o Balance) int {
	switch {
	case b.Rao < o.Rao:
		return -1
	case b.Rao > o.Rao:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether the amount is exactly zero rao.
func (b Balance) IsZero() bool {
	return b.Rao == 0
}

// String renders the tao view with the root unit, e.g. "τ1.500000000".
func (b Balance) String() string {
	return fmt.Sprintf("%s%.9f", GetUnit(0), b.Tao())
}

// Sum adds a list of balances. An empty list sums to zero.
func Sum(bs []Balance) Balance {
	var total Balance
	for _, b := range bs {
		total = total.Add(b)
	}
	return total
}
