package category

import (
	"errors"
	"fmt"
)

var ErrUnknownCategory = errors.New("unknown category")

// Category is one fixed dimension of the chart. Order is its display slot
// (1..N) and never changes with the category's level.
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
	Order int    `json:"order" yaml:"order"`
}

// ParameterScore is a fine-grained sub-assessment scoped to one category.
// Baseline is the originally assessed score and is never rewritten once set.
type ParameterScore struct {
	Key         string `json:"key" yaml:"key"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
	Score       int    `json:"score" yaml:"score"`
	MaxScale    int    `json:"maxScale" yaml:"maxScale"`
	Baseline    *int   `json:"baseline,omitempty" yaml:"baseline,omitempty"`
}

// Assessment pairs a category with its aggregate visibility level.
type Assessment struct {
	CategoryID string           `json:"categoryId"`
	Level      int              `json:"level"`
	Parameters []ParameterScore `json:"parameters,omitempty"`
}

func (p ParameterScore) Validate() error {
	if p.Key == "" {
		return errors.New("parameter key is required")
	}
	if p.MaxScale < 2 {
		return fmt.Errorf("parameter %s: maxScale %d must be at least 2", p.Key, p.MaxScale)
	}
	if p.Score < 1 || p.Score > p.MaxScale {
		return fmt.Errorf("parameter %s: score %d outside [1,%d]", p.Key, p.Score, p.MaxScale)
	}
	return nil
}

// CloneParameters returns a deep copy, including baseline pointers.
func CloneParameters(in []ParameterScore) []ParameterScore {
	if in == nil {
		return nil
	}
	out := make([]ParameterScore, len(in))
	for i, p := range in {
		out[i] = p
		if p.Baseline != nil {
			b := *p.Baseline
			out[i].Baseline = &b
		}
	}
	return out
}

func (a Assessment) Clone() Assessment {
	a.Parameters = CloneParameters(a.Parameters)
	return a
}

func CloneAssessments(in []Assessment) []Assessment {
	out := make([]Assessment, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}
