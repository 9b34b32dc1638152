// Package score derives a category's 0-10 visibility level from its
// parameter scores.
package score

import (
	"math/big"

	"github.com/jbonatakis/skinwell/internal/category"
	"github.com/jbonatakis/skinwell/internal/severity"
)

// EmptyLevel is the aggregate of a category with no parameters.
const EmptyLevel = 5

// Normalize maps a parameter onto [0,1]. Scores are clamped into
// [1,MaxScale]; a scale with fewer than two points carries no signal and
// normalizes to 0.
func Normalize(p category.ParameterScore) *big.Rat {
	if p.MaxScale < 2 {
		return new(big.Rat)
	}
	s := p.Score
	if s < 1 {
		s = 1
	}
	if s > p.MaxScale {
		s = p.MaxScale
	}
	return big.NewRat(int64(s-1), int64(p.MaxScale-1))
}

// Aggregate averages the normalized parameter scores, scales the mean onto
// 0..10 and rounds half up. The sum is exact, so the result depends only on
// the multiset of scores and never on their order.
func Aggregate(params []category.ParameterScore) int {
	if len(params) == 0 {
		return EmptyLevel
	}
	sum := new(big.Rat)
	for _, p := range params {
		sum.Add(sum, Normalize(p))
	}
	scaled := new(big.Rat).Mul(sum, big.NewRat(int64(severity.MaxLevel), int64(len(params))))
	return severity.Clamp(roundHalfUp(scaled))
}

// Fraction returns the unrounded 0..10 value, for display next to the level.
func Fraction(params []category.ParameterScore) float64 {
	if len(params) == 0 {
		return EmptyLevel
	}
	sum := new(big.Rat)
	for _, p := range params {
		sum.Add(sum, Normalize(p))
	}
	f, _ := new(big.Rat).Mul(sum, big.NewRat(int64(severity.MaxLevel), int64(len(params)))).Float64()
	return f
}

func roundHalfUp(r *big.Rat) int {
	// floor(r + 1/2) for non-negative r.
	shifted := new(big.Rat).Add(r, big.NewRat(1, 2))
	q := new(big.Int).Quo(shifted.Num(), shifted.Denom())
	return int(q.Int64())
}
