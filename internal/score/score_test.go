package score

import (
	"math/rand"
	"testing"

	"github.com/jbonatakis/skinwell/internal/category"
)

func params(maxScale int, scores ...int) []category.ParameterScore {
	out := make([]category.ParameterScore, len(scores))
	for i, s := range scores {
		out[i] = category.ParameterScore{Key: string(rune('a' + i)), Score: s, MaxScale: maxScale}
	}
	return out
}

func TestAggregateEmptyIsNeutral(t *testing.T) {
	if got := Aggregate(nil); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := Aggregate([]category.ParameterScore{}); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}

func TestAggregateExtremes(t *testing.T) {
	if got := Aggregate(params(4, 1, 1, 1)); got != 0 {
		t.Fatalf("expected 0 for all-minimum scores, got %d", got)
	}
	if got := Aggregate(params(4, 4, 4, 4)); got != 10 {
		t.Fatalf("expected 10 for all-maximum scores, got %d", got)
	}
}

func TestAggregateThreeParameters(t *testing.T) {
	// ((2/3) + 0 + (1/3)) / 3 * 10 = 3.33
	in := params(4, 3, 1, 2)
	got := Aggregate(in)
	if got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	for i := 0; i < 5; i++ {
		if again := Aggregate(in); again != got {
			t.Fatalf("aggregate not deterministic: %d then %d", got, again)
		}
	}
}

func TestAggregateRoundsHalfUp(t *testing.T) {
	// two params on a 3-point scale: (1/2 + 0)/2 * 10 = 2.5
	if got := Aggregate(params(3, 2, 1)); got != 3 {
		t.Fatalf("expected 2.5 to round to 3, got %d", got)
	}
}

func TestAggregatePermutationInvariant(t *testing.T) {
	in := []category.ParameterScore{
		{Key: "a", Score: 2, MaxScale: 4},
		{Key: "b", Score: 3, MaxScale: 5},
		{Key: "c", Score: 1, MaxScale: 3},
		{Key: "d", Score: 7, MaxScale: 7},
		{Key: "e", Score: 2, MaxScale: 6},
	}
	want := Aggregate(in)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		shuffled := append([]category.ParameterScore(nil), in...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := Aggregate(shuffled); got != want {
			t.Fatalf("permutation changed aggregate: want %d, got %d", want, got)
		}
	}
}

func TestAggregateClampsOutOfRangeScores(t *testing.T) {
	in := []category.ParameterScore{{Key: "a", Score: 9, MaxScale: 4}, {Key: "b", Score: -2, MaxScale: 4}}
	if got := Aggregate(in); got != 5 {
		t.Fatalf("expected clamped scores to average to 5, got %d", got)
	}
}

func TestNormalizeDegenerateScale(t *testing.T) {
	if Normalize(category.ParameterScore{Score: 1, MaxScale: 1}).Sign() != 0 {
		t.Fatalf("expected zero for single-point scale")
	}
}

func TestFraction(t *testing.T) {
	got := Fraction(params(4, 3, 1, 2))
	if got < 3.33 || got > 3.34 {
		t.Fatalf("expected ~3.33, got %f", got)
	}
}
