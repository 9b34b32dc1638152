package category

import (
	"strings"
	"testing"
)

func TestEveryCategoryHasTemplate(t *testing.T) {
	for _, c := range Registry() {
		params := DefaultParameters(c.ID)
		if len(params) == 0 {
			t.Fatalf("category %s has no default parameters", c.ID)
		}
		for _, p := range params {
			if p.Score != defaultScore {
				t.Fatalf("%s/%s: expected default score %d, got %d", c.ID, p.Key, defaultScore, p.Score)
			}
			if p.Baseline == nil || *p.Baseline != p.Score {
				t.Fatalf("%s/%s: expected baseline equal to starting score", c.ID, p.Key)
			}
		}
	}
}

func TestDefaultParametersReturnsCopies(t *testing.T) {
	a := DefaultParameters("redness")
	a[0].Score = 4
	b := DefaultParameters("redness")
	if b[0].Score != defaultScore {
		t.Fatalf("template mutated through returned slice")
	}
}

func TestParseTemplatesRejectsUnknownCategory(t *testing.T) {
	_, err := ParseTemplates([]byte("freckles:\n  - key: a\n    label: A\n    maxScale: 4\n"))
	if err == nil || !strings.Contains(err.Error(), "unknown category") {
		t.Fatalf("expected unknown category error, got %v", err)
	}
}

func TestParseTemplatesRejectsDuplicateKeys(t *testing.T) {
	doc := "pores:\n  - key: a\n    maxScale: 4\n  - key: a\n    maxScale: 4\n"
	_, err := ParseTemplates([]byte(doc))
	if err == nil || !strings.Contains(err.Error(), "duplicate key") {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}

func TestParseTemplatesRejectsBadScale(t *testing.T) {
	doc := "pores:\n  - key: a\n    maxScale: 1\n"
	if _, err := ParseTemplates([]byte(doc)); err == nil {
		t.Fatalf("expected error for maxScale 1")
	}
}
