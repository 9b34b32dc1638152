package category

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

// defaultScore is the starting score for template parameters: the lowest
// point of the scale, i.e. "Not visible".
const defaultScore = 1

var templates = mustParseTemplates(templatesYAML)

func mustParseTemplates(b []byte) map[string][]ParameterScore {
	out, err := ParseTemplates(b)
	if err != nil {
		panic(err)
	}
	return out
}

// ParseTemplates decodes a category-keyed YAML document of parameter
// templates. Every key must name a registered category.
func ParseTemplates(b []byte) (map[string][]ParameterScore, error) {
	var raw map[string][]ParameterScore
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse parameter templates: %w", err)
	}
	for id, params := range raw {
		if _, err := Lookup(id); err != nil {
			return nil, fmt.Errorf("parameter templates: %w", err)
		}
		seen := map[string]bool{}
		for i := range params {
			if params[i].Score == 0 {
				params[i].Score = defaultScore
			}
			if err := params[i].Validate(); err != nil {
				return nil, fmt.Errorf("parameter templates: %s: %w", id, err)
			}
			if seen[params[i].Key] {
				return nil, fmt.Errorf("parameter templates: %s: duplicate key %q", id, params[i].Key)
			}
			seen[params[i].Key] = true
		}
		raw[id] = params
	}
	return raw, nil
}

// DefaultParameters returns a fresh copy of the template for a category with
// each baseline set to its starting score.
func DefaultParameters(id string) []ParameterScore {
	MustLookup(id)
	params := CloneParameters(templates[id])
	for i := range params {
		b := params[i].Score
		params[i].Baseline = &b
	}
	return params
}
