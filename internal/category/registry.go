// Package category holds the compiled-in category registry, the parameter
// types scored inside each category, and their default templates.
package category

import "fmt"

// registry is the display order of the chart. It is static configuration:
// nothing may re-sort it by level.
var registry = []Category{
	{ID: "redness", Name: "Visible Redness", Color: "#e57373", Order: 1},
	{ID: "texture", Name: "Texture", Color: "#ffb74d", Order: 2},
	{ID: "pores", Name: "Pores", Color: "#ffd54f", Order: 3},
	{ID: "fine-lines", Name: "Fine Lines", Color: "#aed581", Order: 4},
	{ID: "wrinkles", Name: "Wrinkles", Color: "#4db6ac", Order: 5},
	{ID: "pigmentation", Name: "Pigmentation", Color: "#4fc3f7", Order: 6},
	{ID: "blemishes", Name: "Blemishes", Color: "#7986cb", Order: 7},
	{ID: "hydration", Name: "Hydration", Color: "#9575cd", Order: 8},
	{ID: "firmness", Name: "Firmness", Color: "#f06292", Order: 9},
	{ID: "under-eye", Name: "Under-Eye", Color: "#a1887f", Order: 10},
}

var indexByID = func() map[string]int {
	m := make(map[string]int, len(registry))
	for i, c := range registry {
		m[c.ID] = i
	}
	return m
}()

// Registry returns a copy of all categories in display order.
func Registry() []Category {
	return append([]Category(nil), registry...)
}

func Count() int {
	return len(registry)
}

func IDs() []string {
	ids := make([]string, len(registry))
	for i, c := range registry {
		ids[i] = c.ID
	}
	return ids
}

func Lookup(id string) (Category, error) {
	i, ok := indexByID[id]
	if !ok {
		return Category{}, fmt.Errorf("%w: %q", ErrUnknownCategory, id)
	}
	return registry[i], nil
}

// MustLookup panics for ids outside the registry; passing one is a caller bug.
func MustLookup(id string) Category {
	c, err := Lookup(id)
	if err != nil {
		panic(err)
	}
	return c
}

// Index returns the zero-based display slot of id, or -1.
func Index(id string) int {
	i, ok := indexByID[id]
	if !ok {
		return -1
	}
	return i
}

func At(index int) Category {
	return registry[index]
}
