package severity

import "math"

// optionLabels is the vocabulary for parameter-level scores. It describes how
// visible a single parameter is and is never applied to the 0-10 aggregate.
var optionLabels = []string{
	"Not visible",
	"Very subtle",
	"Mildly visible",
	"Clearly visible",
	"Prominent",
}

// OptionLabel maps a parameter score in 1..maxScale onto the option
// vocabulary, spreading the scale proportionally across the five labels.
func OptionLabel(score, maxScale int) string {
	if maxScale < 2 {
		return optionLabels[0]
	}
	if score < 1 {
		score = 1
	}
	if score > maxScale {
		score = maxScale
	}
	pos := float64(score-1) / float64(maxScale-1) * float64(len(optionLabels)-1)
	return optionLabels[int(math.Round(pos))]
}
