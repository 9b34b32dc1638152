package chart

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jbonatakis/skinwell/internal/polar"
	"github.com/jbonatakis/skinwell/internal/surface"
)

// cellAspect is how many chart units a terminal row spans per column unit;
// cells are roughly twice as tall as they are wide.
const cellAspect = 2.0

// Grid maps terminal cells onto the chart view box.
type Grid struct {
	Cols  int
	Rows  int
	Scale float64 // chart units per column
	offX  float64
	offY  float64
}

// Fit sizes a grid of cols x rows so the whole view box is visible and
// centered without distorting circles.
func Fit(cols, rows int) Grid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	scale := polar.ViewWidth / float64(cols)
	if s := polar.ViewHeight / (float64(rows) * cellAspect); s > scale {
		scale = s
	}
	return Grid{
		Cols:  cols,
		Rows:  rows,
		Scale: scale,
		offX:  (float64(cols)*scale - polar.ViewWidth) / 2,
		offY:  (float64(rows)*scale*cellAspect - polar.ViewHeight) / 2,
	}
}

// CellCenter returns the chart point under the middle of a cell.
func (g Grid) CellCenter(col, row int) polar.Point {
	return polar.Point{
		X: (float64(col)+0.5)*g.Scale - g.offX,
		Y: (float64(row)+0.5)*g.Scale*cellAspect - g.offY,
	}
}

// Cell returns the cell containing a chart point.
func (g Grid) Cell(pt polar.Point) (col, row int) {
	col = int(math.Floor((pt.X + g.offX) / g.Scale))
	row = int(math.Floor((pt.Y + g.offY) / (g.Scale * cellAspect)))
	return col, row
}

type cell struct {
	r     rune
	style lipgloss.Style
	key   string
}

// Frame is a rasterized scene. Labels records which category's label text
// occupies a cell, so terminal clicks on the text select its category even
// where the text overhangs the chart-space pill.
type Frame struct {
	Lines  []string
	labels map[[2]int]string
}

func (f Frame) String() string {
	return strings.Join(f.Lines, "\n")
}

// LabelAt returns the category whose label covers the cell, if any.
func (f Frame) LabelAt(col, row int) (string, bool) {
	id, ok := f.labels[[2]int{col, row}]
	return id, ok
}

// Raster draws the scene into the grid. Wedges are filled by sampling each
// cell center against the flattened outlines.
func Raster(sc surface.Scene, g Grid) Frame {
	cells := make([][]cell, g.Rows)
	for row := range cells {
		cells[row] = make([]cell, g.Cols)
		for col := range cells[row] {
			cells[row][col] = cell{r: ' '}
		}
	}

	type outline struct {
		seg surface.SegmentView
		bg  []polar.Point
		fg  []polar.Point
	}
	outlines := make([]outline, len(sc.Segments))
	for i, seg := range sc.Segments {
		outlines[i] = outline{seg: seg, bg: seg.Geometry.Background.Outline(), fg: seg.Geometry.Foreground.Outline()}
	}
	var details []polar.Point
	if sc.Controls != nil {
		details = sc.Controls.Geometry.Details.Outline()
	}

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			pt := g.CellCenter(col, row)
			if c := sc.Controls; c != nil {
				switch {
				case c.Geometry.Increment.Contains(pt):
					cells[row][col] = buttonCell('+', c.CanIncrement)
					continue
				case c.Geometry.Decrement.Contains(pt):
					cells[row][col] = buttonCell('-', c.CanDecrement)
					continue
				case polar.Contains(details, pt):
					cells[row][col] = cell{r: '▓', style: detailsStyle, key: "details"}
					continue
				}
			}
			for _, o := range outlines {
				if polar.Contains(o.fg, pt) {
					cells[row][col] = foregroundCell(o.seg)
					break
				}
				if polar.Contains(o.bg, pt) {
					cells[row][col] = cell{
						r:     '░',
						style: lipgloss.NewStyle().Foreground(lipgloss.Color(o.seg.Category.Color)).Faint(true),
						key:   "bg:" + o.seg.Category.ID,
					}
					break
				}
			}
		}
	}

	labels := map[[2]int]string{}
	for _, seg := range sc.Segments {
		col, row := g.Cell(seg.Geometry.Label.Point)
		placeText(cells, labels, seg, seg.Title, col, row-1, seg.Geometry.Label.Align, titleStyle(seg))
		placeText(cells, labels, seg, seg.Subtitle, col, row, seg.Geometry.Label.Align,
			lipgloss.NewStyle().Foreground(lipgloss.Color(seg.Band.Color)))
	}

	lines := make([]string, g.Rows)
	for row := range cells {
		lines[row] = renderRow(cells[row])
	}
	return Frame{Lines: lines, labels: labels}
}

var (
	detailsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	buttonStyle  = lipgloss.NewStyle().Bold(true).Reverse(true)
	disabledBtn  = lipgloss.NewStyle().Faint(true)
)

func buttonCell(r rune, enabled bool) cell {
	if !enabled {
		return cell{r: r, style: disabledBtn, key: "btn-off"}
	}
	return cell{r: r, style: buttonStyle, key: "btn"}
}

func foregroundCell(seg surface.SegmentView) cell {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(seg.Category.Color))
	key := "fg:" + seg.Category.ID
	if seg.Active {
		style = style.Bold(true)
		key += ":active"
	}
	return cell{r: '█', style: style, key: key}
}

func titleStyle(seg surface.SegmentView) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	if seg.Active {
		style = style.Underline(true).Foreground(lipgloss.Color(seg.Category.Color))
	}
	return style
}

func placeText(cells [][]cell, labels map[[2]int]string, seg surface.SegmentView, text string, col, row int, align polar.Align, style lipgloss.Style) {
	if row < 0 || row >= len(cells) {
		return
	}
	runes := []rune(text)
	start := col
	switch align {
	case polar.AlignEnd:
		start = col - len(runes) + 1
	case polar.AlignMiddle:
		start = col - len(runes)/2
	}
	key := "label:" + seg.Category.ID + ":" + text
	for i, r := range runes {
		c := start + i
		if c < 0 || c >= len(cells[row]) {
			continue
		}
		cells[row][c] = cell{r: r, style: style, key: key}
		labels[[2]int{c, row}] = seg.Category.ID
	}
}

// renderRow styles runs of identical cells together to keep escape
// sequences down.
func renderRow(row []cell) string {
	var b strings.Builder
	i := 0
	for i < len(row) {
		j := i
		var run strings.Builder
		for j < len(row) && row[j].key == row[i].key {
			run.WriteRune(row[j].r)
			j++
		}
		if row[i].key == "" {
			b.WriteString(run.String())
		} else {
			b.WriteString(row[i].style.Render(run.String()))
		}
		i = j
	}
	return b.String()
}
