// Package severity maps visibility levels onto labeled, colored bands.
package severity

import "fmt"

// MinLevel and MaxLevel bound every aggregate level.
const (
	MinLevel = 0
	MaxLevel = 10
)

// Band is the label and color shown for a range of levels.
type Band struct {
	Label string
	Color string
}

var (
	BandOptimal          = Band{Label: "Optimal", Color: "#22c55e"}
	BandNeedsImprovement = Band{Label: "Needs Improvement", Color: "#a3e635"}
	BandAttentionNeeded  = Band{Label: "Attention Needed", Color: "#f59e0b"}
	BandFocusArea        = Band{Label: "Focus Area", Color: "#ef4444"}
)

// Bands lists the bands from lowest to highest level.
func Bands() []Band {
	return []Band{BandOptimal, BandNeedsImprovement, BandAttentionNeeded, BandFocusArea}
}

// BandFor returns the band a level falls into. Callers pass levels that were
// already clamped; out-of-range values fall into the nearest edge band.
func BandFor(level int) Band {
	switch {
	case level <= 0:
		return BandOptimal
	case level < 4:
		return BandNeedsImprovement
	case level < 7:
		return BandAttentionNeeded
	default:
		return BandFocusArea
	}
}

// Clamp pins level into [MinLevel,MaxLevel].
func Clamp(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// Valid reports whether level lies within [MinLevel,MaxLevel].
func Valid(level int) bool {
	return level >= MinLevel && level <= MaxLevel
}

// MustLevel panics when level is outside [0,10].
func MustLevel(level int) int {
	if !Valid(level) {
		panic(fmt.Sprintf("severity: level %d outside [%d,%d]", level, MinLevel, MaxLevel))
	}
	return level
}

// Summary formats a level the way chart labels show it, e.g. "Attention Needed 5/10".
func Summary(level int) string {
	return fmt.Sprintf("%s %d/%d", BandFor(level).Label, level, MaxLevel)
}
