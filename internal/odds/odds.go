// Package odds provides pure conversions between American odds, decimal
// odds, and implied probability. No state, no error paths: inputs are
// validated upstream by the slip parser.
package odds

import "math"

// Point pairs an American price with its implied probability.
type Point struct {
	American    int
	ImpliedProb float64
}

// NewPoint builds a Point from an American price.
func NewPoint(american int) Point {
	return Point{American: american, ImpliedProb: ImpliedProbability(american)}
}

// ImpliedProbability converts American odds to implied win probability.
// Positive odds: 100/(odds+100). Negative odds: |odds|/(|odds|+100).
func ImpliedProbability(american int) float64 {
	if american > 0 {
		return 100.0 / (float64(american) + 100.0)
	}
	a := math.Abs(float64(american))
	return a / (a + 100.0)
}

// ProbabilityToAmerican converts implied probability back to American odds,
// rounding to the nearest integer. Probabilities at or above 0.5 map to
// negative (favorite) prices.
func ProbabilityToAmerican(p float64) int {
	if p >= 0.5 {
		return int(math.Round(-100.0 * p / (1.0 - p)))
	}
	return int(math.Round(100.0 * (1.0 - p) / p))
}

// AmericanToDecimal converts American odds to decimal odds.
func AmericanToDecimal(american int) float64 {
	if american > 0 {
		return float64(american)/100.0 + 1.0
	}
	return 100.0/math.Abs(float64(american)) + 1.0
}

// DecimalToAmerican converts decimal odds to American, rounding to the
// nearest integer. Decimal odds at or below 2.0 map to negative prices.
func DecimalToAmerican(dec float64) int {
	if dec >= 2.0 {
		return int(math.Round((dec - 1.0) * 100.0))
	}
	return int(math.Round(-100.0 / (dec - 1.0)))
}

// DecimalToProbability converts decimal odds to implied probability.
func DecimalToProbability(dec float64) float64 {
	return 1.0 / dec
}

// ProbabilityToDecimal converts implied probability to decimal odds.
func ProbabilityToDecimal(p float64) float64 {
	return 1.0 / p
}
