// Package finance holds the financial value objects and the amortization
// calculator used by offer normalization and ranking.
package finance

import (
	"fmt"
	"math"
)

// rateEpsilon is the tolerance for rate equality. Rates arrive as floats from
// institution payloads, so exact comparison is meaningless.
const rateEpsilon = 1e-6

// InterestRate is a non-negative monthly interest rate expressed as a
// fraction (0.02 = 2% a.m.).
type InterestRate struct {
	monthly float64
}

// NewInterestRate validates and creates a monthly InterestRate.
func NewInterestRate(monthly float64) (InterestRate, error) {
	if monthly < 0 {
		return InterestRate{}, fmt.Errorf("interest rate cannot be negative: %f", monthly)
	}
	return InterestRate{monthly: monthly}, nil
}

// Monthly returns the monthly rate as a fraction.
func (r InterestRate) Monthly() float64 {
	return r.monthly
}

// Annual returns the compounded annual rate: (1+r)^12 - 1.
func (r InterestRate) Annual() float64 {
	return math.Pow(1+r.monthly, 12) - 1
}

// Compound returns (1+r)^periods. Fails on negative periods.
func (r InterestRate) Compound(periods int) (float64, error) {
	if periods < 0 {
		return 0, fmt.Errorf("compound periods cannot be negative: %d", periods)
	}
	return math.Pow(1+r.monthly, float64(periods)), nil
}

// IsZero reports whether the rate is zero within tolerance.
func (r InterestRate) IsZero() bool {
	return r.monthly < rateEpsilon
}

// Equal reports whether two rates are equal within the 1e-6 tolerance.
func (r InterestRate) Equal(other InterestRate) bool {
	return math.Abs(r.monthly-other.monthly) < rateEpsilon
}

// String formats the rate as a monthly percentage, e.g. "2.00% a.m.".
func (r InterestRate) String() string {
	return fmt.Sprintf("%.2f%% a.m.", r.monthly*100)
}
