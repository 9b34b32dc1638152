package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionHintsFollowSelection(t *testing.T) {
	m := loadedModel(t, newFakeStore(), 4)
	hints := actionHints(m)
	assert.NotContains(t, hints, "[+/-]adjust")
	assert.Contains(t, hints, "[n]ew")

	m, _ = press(t, m, "right")
	hints = actionHints(m)
	assert.Contains(t, hints, "[+/-]adjust")
	assert.Contains(t, hints, "[d]etails")
}

func TestStatusText(t *testing.T) {
	m := loadedModel(t, newFakeStore(), 4)
	assert.Equal(t, "Ada", statusText(m))

	m, _ = press(t, m, "right")
	assert.Equal(t, "Visible Redness: Attention Needed 4/10", statusText(m))

	m, _ = press(t, m, "d")
	assert.Equal(t, "no changes", statusText(m))
	m, _ = press(t, m, "right")
	assert.Equal(t, "unsaved changes", statusText(m))
}

func TestBottomBarShowsSaving(t *testing.T) {
	m := loadedModel(t, newFakeStore(), 4)
	m.pending = 1
	assert.Contains(t, RenderBottomBar(m), "saving...")
}

func TestLayoutBar(t *testing.T) {
	bar := layoutBar("left", "right", 20)
	assert.Equal(t, 20, len(bar))
	assert.True(t, strings.HasPrefix(bar, "left"))
	assert.True(t, strings.HasSuffix(bar, "right"))

	bar = layoutBar("a very long list of hints", "status", 16)
	assert.Equal(t, 16, len([]rune(bar)))
	assert.True(t, strings.HasSuffix(bar, "status"))

	assert.Equal(t, "sta", layoutBar("hints", "status", 3))
	assert.Equal(t, "", truncate("abc", 0))
	assert.Equal(t, "ab", truncate("abc", 2))
}
